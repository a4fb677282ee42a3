package render

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"
)

// Save writes the last frame. The format follows the extension: .png or
// .webp.
func (s *Surface) Save(path string) error {
	return SaveImage(path, s.frame)
}

func SaveImage(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".webp" {
		return errors.Errorf("render: unsupported snapshot format %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "render: snapshot")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "render: snapshot")
		}
	}()
	if ext == ".webp" {
		return errors.Wrap(nativewebp.Encode(f, img, nil), "render: encode webp")
	}
	return errors.Wrap(png.Encode(f, img), "render: encode png")
}
