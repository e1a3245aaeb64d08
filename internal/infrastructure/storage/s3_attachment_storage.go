package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/infrastructure/config"
	"eventos_inscricoes/internal/infrastructure/database"
	"eventos_inscricoes/internal/usecase/interfaces"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ConnectS3 creates an S3 client sharing the AWS settings of DynamoDB.
// S3_ENDPOINT switches to path-style addressing for local emulators.
func ConnectS3(ctx context.Context, cfg config.AWSConfig) (*s3.Client, error) {
	awsCfg, err := database.NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3AttachmentStorage stores checkout attachments as objects of one bucket.
type S3AttachmentStorage struct {
	client s3API
	bucket string
}

var _ interfaces.IAttachmentStorage = (*S3AttachmentStorage)(nil)

func NewS3AttachmentStorage(client s3API, bucket string) *S3AttachmentStorage {
	return &S3AttachmentStorage{client: client, bucket: bucket}
}

func (s *S3AttachmentStorage) Save(ctx context.Context, path string, body io.Reader, size int64, contentType string, metadata map[string]string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.WithFields(log.Fields{"bucket": s.bucket, "path": path}).WithError(err).Error("[attachment][storage] put failed")
		return fmt.Errorf("put object %s: %w", path, err)
	}
	log.WithFields(log.Fields{"bucket": s.bucket, "path": path, "size": size}).Debug("[attachment][storage] stored")
	return nil
}

func (s *S3AttachmentStorage) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}
