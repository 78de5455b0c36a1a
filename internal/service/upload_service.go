package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/media"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
)

const DefaultUploadMaxBytes int64 = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true, ".heif": true,
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService struct {
	storage  ports.ObjectStorage
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(storage ports.ObjectStorage, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &UploadService{storage: storage, maxBytes: maxBytes, now: time.Now}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadProductImage validates the file and stores it under images/. It
// returns the URL the client should save on the product.
func (s *UploadService) UploadProductImage(ctx context.Context, upload ImageUpload) (string, error) {
	if upload.Body == nil {
		return "", ErrImageRequired
	}
	if upload.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	contentType := media.NormalizeContentType(upload.ContentType, upload.FileName)
	typeExt, typeOK := allowedImageTypes[contentType]
	if !typeOK && !allowedImageExts[ext] {
		return "", ErrImageUnsupportedType
	}
	if !allowedImageExts[ext] {
		ext = typeExt
	}
	if ext == "" {
		ext = ".jpg"
	}

	body := upload.Body
	if media.CanInspect(contentType) {
		info, replay, err := media.Inspect(body, media.DefaultMaxDimension)
		if err != nil {
			return "", ErrImageUnsupportedType.Wrap(err)
		}
		if _, ok := allowedImageTypes[info.ContentType]; !ok {
			return "", ErrImageUnsupportedType
		}
		contentType = info.ContentType
		body = replay
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = "image/jpeg"
	}

	limited := &limitedReader{r: body, remaining: s.maxBytes}
	objectName := fmt.Sprintf("images/product_%d_%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
	url, err := s.storage.Upload(ctx, objectName, contentType, limited, upload.Size)
	if err != nil {
		if errors.Is(err, errImageOverflow) {
			_ = s.storage.Delete(ctx, objectName)
			return "", ErrImageTooLarge
		}
		return "", domain.Internal("Failed to upload image", err)
	}
	zerolog.Ctx(ctx).Info().Str("object", objectName).Str("content_type", contentType).Msg("image uploaded")
	return url, nil
}

var errImageOverflow = errors.New("image exceeds upload limit")

// limitedReader fails instead of truncating once more than remaining bytes
// are read, so a lying Content-Length cannot bypass the limit.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errImageOverflow
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errImageOverflow
	}
	return n, err
}
