package interfaces

import (
	"context"
	"io"
)

// IAttachmentStorage abstracts the object store holding payment attachments.
type IAttachmentStorage interface {
	Save(ctx context.Context, path string, body io.Reader, size int64, contentType string, metadata map[string]string) error
	Delete(ctx context.Context, path string) error
}
