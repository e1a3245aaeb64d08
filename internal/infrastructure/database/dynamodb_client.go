package database

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/infrastructure/config"
)

// ConnectDynamoDB creates a DynamoDB client from the AWS section of the config.
//
// Local-friendly settings:
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY default to "local"
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
func ConnectDynamoDB(ctx context.Context, cfg config.AWSConfig) (*dynamodb.Client, error) {
	awsCfg, err := NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DynamoDBEndpoint != "" {
		log.WithField("endpoint", cfg.DynamoDBEndpoint).Info("[dynamodb][infra] using custom endpoint")
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

// NewAWSConfig loads the shared aws.Config used by the DynamoDB and S3 clients.
func NewAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	// Local DynamoDB and S3 emulators do not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(
		valueOrDefault(cfg.AccessKeyID, "local"),
		valueOrDefault(cfg.SecretAccessKey, "local"),
		"",
	)

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(valueOrDefault(cfg.Region, "us-east-1")),
		awsconfig.WithCredentialsProvider(creds),
	}

	if cfg.DynamoDBEndpoint != "" {
		endpoint := cfg.DynamoDBEndpoint
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}

func valueOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
