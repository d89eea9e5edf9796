package image

import (
	"fmt"
	goimage "image"
	"image/jpeg"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Strip decodes src and writes it to dst as a JPEG without any EXIF segment.
// The image is written to a temporary file beside dst and renamed into place,
// so dst is never left half-written.
func (h *Handler) Strip(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := goimage.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".exiftool-*.jpg")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: h.quality}); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode JPEG: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return err
	}

	h.log.Debug("stripped EXIF",
		zap.String("src", src),
		zap.String("source_format", format),
		zap.String("dst", dst),
		zap.Int("quality", h.quality),
	)
	return nil
}
