// Package upload validates, transcodes and stores files on local disk.
//
// Files sent in the "uploadFile" field must be spreadsheets and are stored
// unchanged under excel/. Every other field must be an image; raster images
// are fitted inside MaxWidth x MaxHeight and re-encoded, SVG is kept as is.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
	"github.com/venuehub/booking-api/internal/pkg/metrics"
)

const (
	SpreadsheetField = "uploadFile"

	DefaultMaxBytes = 10 << 20
	MaxWidth        = 1200
	MaxHeight       = 800
	JPEGQuality     = 85
)

var (
	spreadsheetTypes = []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
	}
	imageTypes = []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/tiff",
		"image/bmp",
		"image/svg+xml",
	}
)

// Store is a ports.FileStore writing under a root directory.
type Store struct {
	root     string
	maxBytes int64
	log      zerolog.Logger
	now      func() time.Time
}

func NewStore(root string, maxBytes int64, log zerolog.Logger) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{root: root, maxBytes: maxBytes, log: log, now: time.Now}
}

// Save reads body, checks its size and sniffed type against the allow-list
// for field, and writes the result under <root>/<image|excel>/<dir>/.
func (s *Store) Save(ctx context.Context, field, dir, filename string, body io.Reader) (*ports.StoredFile, error) {
	start := time.Now()
	defer func() { metrics.UploadDuration.Observe(time.Since(start).Seconds()) }()

	kind := "image"
	if field == SpreadsheetField {
		kind = "spreadsheet"
	}
	stored, err := s.save(ctx, kind, dir, body)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(kind, "rejected").Inc()
		s.log.Debug().Err(err).Str("field", field).Str("filename", filename).Msg("upload rejected")
		return nil, err
	}
	metrics.UploadsTotal.WithLabelValues(kind, "stored").Inc()
	return stored, nil
}

func (s *Store) save(ctx context.Context, kind, dir string, body io.Reader) (*ports.StoredFile, error) {
	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mt := mimetype.Detect(data)
	if kind == "spreadsheet" {
		if !mimetype.EqualsAny(mt.String(), spreadsheetTypes...) {
			return nil, fmt.Errorf("%w: only Excel files are allowed", domain.ErrUnsupportedFile)
		}
		return s.write("excel", dir, mt.Extension(), data, mt.String(), 0, 0)
	}

	if !mimetype.EqualsAny(mt.String(), imageTypes...) {
		return nil, fmt.Errorf("%w: only image files are allowed", domain.ErrUnsupportedFile)
	}
	if mt.Is("image/svg+xml") {
		return s.write("image", dir, ".svg", data, mt.String(), 0, 0)
	}

	out, ext, contentType, bounds, err := transcode(data)
	if err != nil {
		return nil, err
	}
	return s.write("image", dir, ext, out, contentType, bounds.Dx(), bounds.Dy())
}

// transcode fits the image inside MaxWidth x MaxHeight without enlarging.
// Opaque results become JPEG, anything with transparency becomes PNG.
func transcode(data []byte) ([]byte, string, string, image.Rectangle, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", "", image.Rectangle{}, fmt.Errorf("%w: unreadable image", domain.ErrUnsupportedFile)
	}
	fitted := imaging.Fit(src, MaxWidth, MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if fitted.Opaque() {
		if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
			return nil, "", "", image.Rectangle{}, fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), ".jpg", "image/jpeg", fitted.Bounds(), nil
	}
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return nil, "", "", image.Rectangle{}, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), ".png", "image/png", fitted.Bounds(), nil
}

func (s *Store) write(kindDir, dir, ext string, data []byte, contentType string, w, h int) (*ports.StoredFile, error) {
	rel := path.Join(kindDir, path.Clean("/" + filepath.ToSlash(dir))[1:], s.fileName(ext))
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	return &ports.StoredFile{
		Path:        rel,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       w,
		Height:      h,
	}, nil
}

// fileName is <unix millis>_<random>.<ext>.
func (s *Store) fileName(ext string) string {
	return fmt.Sprintf("%d_%s%s", s.now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:6], ext)
}

// Remove deletes a file previously returned by Save. Paths escaping the root
// are refused; a missing file is not an error.
func (s *Store) Remove(rel string) error {
	clean := path.Clean("/" + filepath.ToSlash(rel))[1:]
	if clean == "" || clean != filepath.ToSlash(rel) {
		return fmt.Errorf("remove upload: invalid path %q", rel)
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
