package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
)

// Storage writes uploads below a directory that the HTTP server also serves
// statically. Returned URLs are relative, e.g. "upload/images/product_1.png".
type Storage struct {
	root         string
	publicPrefix string
}

var _ ports.ObjectStorage = (*Storage)(nil)

func NewStorage(root, publicPrefix string) (*Storage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("local storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Storage{root: root, publicPrefix: strings.Trim(publicPrefix, "/")}, nil
}

func (s *Storage) Root() string {
	return s.root
}

func (s *Storage) Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	target, err := s.resolve(objectName)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", err
	}
	written, err := io.Copy(tmp, reader)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	clean := path.Clean("/" + objectName)[1:]
	if s.publicPrefix == "" {
		return clean, nil
	}
	return s.publicPrefix + "/" + clean, nil
}

func (s *Storage) Delete(ctx context.Context, objectName string) error {
	target, err := s.resolve(objectName)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve keeps object names inside root.
func (s *Storage) resolve(objectName string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(objectName))
	if clean == "/" {
		return "", errors.New("object name is required")
	}
	return filepath.Join(s.root, filepath.FromSlash(clean[1:])), nil
}
