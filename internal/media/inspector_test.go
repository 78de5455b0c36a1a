package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInspectPNGKeepsStreamIntact(t *testing.T) {
	data := pngBytes(t, 4, 3)
	info, rest, err := Inspect(bytes.NewReader(data), 0)
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if info.Format != "png" || info.ContentType != "image/png" || info.Width != 4 || info.Height != 3 {
		t.Fatalf("unexpected info %+v", info)
	}
	replayed, err := io.ReadAll(rest)
	if err != nil {
		t.Fatalf("read rest: %v", err)
	}
	if !bytes.Equal(replayed, data) {
		t.Fatalf("expected the full payload to be replayed")
	}
}

func TestInspectRejectsNonImage(t *testing.T) {
	_, _, err := Inspect(strings.NewReader("definitely not an image"), 0)
	if !errors.Is(err, ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestInspectRejectsOversizedDimensions(t *testing.T) {
	if _, _, err := Inspect(bytes.NewReader(pngBytes(t, 20, 2)), 10); err == nil {
		t.Fatalf("expected dimension limit error")
	}
}

func TestNormalizeContentType(t *testing.T) {
	cases := []struct {
		value, file, want string
	}{
		{"image/JPG", "a.bin", "image/jpeg"},
		{"image/png; charset=binary", "a", "image/png"},
		{"", "cover.HEIC", "image/heic"},
		{"application/octet-stream", "cover.webp", "image/webp"},
		{"", "notes", ""},
	}
	for _, tc := range cases {
		if got := NormalizeContentType(tc.value, tc.file); got != tc.want {
			t.Fatalf("NormalizeContentType(%q, %q) = %q, want %q", tc.value, tc.file, got, tc.want)
		}
	}
}
