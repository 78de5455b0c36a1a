package media

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

const DefaultMaxDimension = 10000

var ErrUndecodable = errors.New("media: image header could not be decoded")

// Info describes an image without decoding its pixels.
type Info struct {
	Format      string
	ContentType string
	Width       int
	Height      int
}

// decodable lists the content types whose headers Go can parse. HEIC/HEIF are
// accepted by extension or declared type only.
var decodable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func CanInspect(contentType string) bool {
	return decodable[contentType]
}

// Inspect reads only the image header from r and returns a reader that
// replays the consumed bytes followed by the rest of r.
func Inspect(r io.Reader, maxDimension int) (*Info, io.Reader, error) {
	if r == nil {
		return nil, nil, fmt.Errorf("media: empty reader")
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	buffered := bufio.NewReaderSize(r, 64*1024)
	header, err := buffered.Peek(32 * 1024)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, fmt.Errorf("media: read header: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(header))
	if err != nil {
		return nil, buffered, ErrUndecodable
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, buffered, fmt.Errorf("media: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, buffered, fmt.Errorf("media: image %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxDimension)
	}
	return &Info{
		Format:      format,
		ContentType: "image/" + format,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, buffered, nil
}

// NormalizeContentType prefers the declared type and falls back to the file
// extension.
func NormalizeContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" || ct == "image/pjpeg" {
		return "image/jpeg"
	}
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName)))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(strings.SplitN(mt, ";", 2)[0])
		}
	}
	return ct
}
