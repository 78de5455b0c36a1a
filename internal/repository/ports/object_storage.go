package ports

import (
	"context"
	"io"
)

// ObjectStorage stores uploaded files and returns the URL clients use to
// fetch them.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error)
	Delete(ctx context.Context, objectName string) error
}
