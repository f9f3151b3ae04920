package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/booking-api/internal/core/domain"
)

func pngBytes(t *testing.T, w, h int, alpha uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: alpha})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestStore(t *testing.T, maxBytes int64) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	return NewStore(root, maxBytes, zerolog.Nop()), root
}

func decodeStored(t *testing.T, root, rel string) (image.Config, string) {
	t.Helper()
	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return cfg, format
}

func TestStore_OpaqueImageBecomesFittedJPEG(t *testing.T) {
	s, root := newTestStore(t, 0)

	stored, err := s.Save(context.Background(), "images", "venues/v1", "hall.png", bytes.NewReader(pngBytes(t, 2400, 1600, 255)))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(stored.Path, "image/venues/v1/"))
	require.True(t, strings.HasSuffix(stored.Path, ".jpg"))
	require.Equal(t, "image/jpeg", stored.ContentType)
	require.Equal(t, 1200, stored.Width)
	require.Equal(t, 800, stored.Height)

	cfg, format := decodeStored(t, root, stored.Path)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 1200, cfg.Width)
	require.Equal(t, 800, cfg.Height)
}

func TestStore_TransparentImageStaysPNG(t *testing.T) {
	s, root := newTestStore(t, 0)

	stored, err := s.Save(context.Background(), "images", "venues/v1", "logo.png", bytes.NewReader(pngBytes(t, 300, 200, 128)))
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(stored.Path, ".png"))
	cfg, format := decodeStored(t, root, stored.Path)
	require.Equal(t, "png", format)
	require.Equal(t, 300, cfg.Width, "small images are never enlarged")
}

func TestStore_SVGStoredUntouched(t *testing.T) {
	s, root := newTestStore(t, 0)
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)

	stored, err := s.Save(context.Background(), "images", "venues/v1", "icon.svg", bytes.NewReader(svg))
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(stored.Path, ".svg"))
	got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored.Path)))
	require.NoError(t, err)
	require.Equal(t, svg, got)
}

func TestStore_RejectsDisallowedTypes(t *testing.T) {
	s, _ := newTestStore(t, 0)

	_, err := s.Save(context.Background(), "images", "venues/v1", "notes.txt", strings.NewReader("just some text"))
	require.ErrorIs(t, err, domain.ErrUnsupportedFile)

	_, err = s.Save(context.Background(), SpreadsheetField, "imports", "hall.png", bytes.NewReader(pngBytes(t, 10, 10, 255)))
	require.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestStore_RejectsOversizeBody(t *testing.T) {
	s, root := newTestStore(t, 1024)

	_, err := s.Save(context.Background(), "images", "venues/v1", "big.png", bytes.NewReader(make([]byte, 2048)))
	require.ErrorIs(t, err, domain.ErrFileTooLarge)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStore_RejectsCorruptImage(t *testing.T) {
	s, _ := newTestStore(t, 0)
	data := pngBytes(t, 50, 50, 255)

	_, err := s.Save(context.Background(), "images", "venues/v1", "broken.png", bytes.NewReader(data[:60]))
	require.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestStore_DirCannotEscapeRoot(t *testing.T) {
	s, _ := newTestStore(t, 0)

	stored, err := s.Save(context.Background(), "images", "../../etc", "x.png", bytes.NewReader(pngBytes(t, 4, 4, 255)))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stored.Path, "image/etc/"))
}

func TestStore_Remove(t *testing.T) {
	s, root := newTestStore(t, 0)
	stored, err := s.Save(context.Background(), "images", "venues/v1", "a.png", bytes.NewReader(pngBytes(t, 4, 4, 255)))
	require.NoError(t, err)

	require.NoError(t, s.Remove(stored.Path))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(stored.Path)))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, s.Remove(stored.Path), "missing file is not an error")
	require.Error(t, s.Remove("../outside.txt"))
}
