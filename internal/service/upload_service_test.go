package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadProductImage(t *testing.T) {
	storage := &fakeObjectStorage{}
	svc := NewUploadService(storage, 0)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	data := pngBytes(t)

	url, err := svc.UploadProductImage(context.Background(), ImageUpload{
		FileName:    "cover.PNG",
		ContentType: "application/octet-stream",
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(storage.objectName, "images/product_1700000000123_") || !strings.HasSuffix(storage.objectName, ".png") {
		t.Fatalf("unexpected object name %q", storage.objectName)
	}
	if url != "upload/"+storage.objectName {
		t.Fatalf("unexpected url %q", url)
	}
	if storage.contentType != "image/png" {
		t.Fatalf("unexpected content type %q", storage.contentType)
	}
	if !bytes.Equal(storage.body, data) {
		t.Fatalf("stored bytes differ from upload")
	}
}

func TestUploadProductImageRejects(t *testing.T) {
	data := pngBytes(t)
	cases := []struct {
		name   string
		upload ImageUpload
		want   error
	}{
		{"missing body", ImageUpload{FileName: "a.png"}, ErrImageRequired},
		{"too large", ImageUpload{FileName: "a.png", Size: 6 << 20, Body: bytes.NewReader(data)}, ErrImageTooLarge},
		{"text file", ImageUpload{FileName: "notes.txt", ContentType: "text/plain", Size: 5, Body: strings.NewReader("hello")}, ErrImageUnsupportedType},
		{"fake png", ImageUpload{FileName: "a.png", ContentType: "image/png", Size: 9, Body: strings.NewReader("not a png")}, ErrImageUnsupportedType},
		{"gif", ImageUpload{FileName: "a.gif", ContentType: "image/gif", Size: 3, Body: strings.NewReader("GIF")}, ErrImageUnsupportedType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := &fakeObjectStorage{}
			svc := NewUploadService(storage, 0)
			if _, err := svc.UploadProductImage(context.Background(), tc.upload); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if storage.objectName != "" {
				t.Fatalf("nothing should be stored, got %q", storage.objectName)
			}
		})
	}
}

func TestUploadProductImageUnderstatedSize(t *testing.T) {
	data := pngBytes(t)
	storage := &fakeObjectStorage{}
	svc := NewUploadService(storage, int64(len(data)-1))

	_, err := svc.UploadProductImage(context.Background(), ImageUpload{
		FileName: "a.png",
		Size:     10,
		Body:     bytes.NewReader(data),
	})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
	if len(storage.deleted) != 1 {
		t.Fatalf("partial object should be deleted")
	}
}

func TestUploadProductImageStorageFailure(t *testing.T) {
	data := pngBytes(t)
	storage := &fakeObjectStorage{uploadErr: errBoom}
	svc := NewUploadService(storage, 0)
	_, err := svc.UploadProductImage(context.Background(), ImageUpload{FileName: "a.png", Size: int64(len(data)), Body: bytes.NewReader(data)})
	if domain.KindOf(err) != domain.KindInternal || !errors.Is(err, errBoom) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
