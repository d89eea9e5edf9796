// Package image reads and strips EXIF metadata of raster images and describes
// them as container tracks.
package image

import (
	"errors"
	"fmt"
	goimage "image"
	"image/color"
	_ "image/gif"
	_ "image/png"
	"os"

	"github.com/ankit-chaubey/exiftool/core"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultQuality is the JPEG quality used when stripping.
const DefaultQuality = 75

var (
	// ErrNoEXIF means the image is of an EXIF-bearing format but carries none.
	ErrNoEXIF = errors.New("no EXIF data found in the file")
	// ErrNotImage means the file could not be identified as a raster image.
	ErrNotImage = errors.New("cannot identify image file")
)

// UnsupportedFormatError is returned when EXIF is requested from an image
// format that cannot hold it.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("EXIF data is not supported for %s files", e.Format)
}

// Handler reads, strips and describes images.
type Handler struct {
	log     *zap.Logger
	quality int
}

// New returns a Handler. A quality outside 1..100 falls back to DefaultQuality.
func New(log *zap.Logger, quality int) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Handler{log: log, quality: quality}
}

// Supports implements core.TrackSource.
func (h *Handler) Supports(id core.FormatID) bool {
	switch id {
	case core.FmtJPEG, core.FmtPNG, core.FmtGIF, core.FmtTIFF, core.FmtBMP, core.FmtWebP:
		return true
	}
	return false
}

// Tracks implements core.TrackSource with a single Image track read from the
// image header.
func (h *Handler) Tracks(path string, id core.FormatID) ([]core.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := goimage.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s header: %w", id.Name(), err)
	}

	t := core.NewTrack(core.TrackImage)
	t.Fields.Set("format", id.Name())
	t.Fields.SetInt("width", int64(cfg.Width))
	t.Fields.SetInt("height", int64(cfg.Height))
	t.Fields.SetNonEmpty("color_space", colorSpace(cfg.ColorModel))
	t.Fields.Set("compression_mode", compressionMode(id))
	h.log.Debug("image track", zap.String("path", path), zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	return []core.Track{t}, nil
}

func colorSpace(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "Palette"
	}
	switch m {
	case color.YCbCrModel, color.NYCbCrAModel:
		return "YUV"
	case color.GrayModel, color.Gray16Model:
		return "Y"
	case color.CMYKModel:
		return "CMYK"
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "RGBA"
	}
	return ""
}

func compressionMode(id core.FormatID) string {
	switch id {
	case core.FmtJPEG, core.FmtWebP:
		return "Lossy"
	}
	return "Lossless"
}
