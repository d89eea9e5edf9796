package image

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ankit-chaubey/exiftool/core"
	"github.com/ankit-chaubey/exiftool/core/jpg"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"go.uber.org/zap"
)

// Pointer tags linking IFD0 and the Exif IFD to their sub-IFDs.
const (
	tagExifPointer    uint16 = 0x8769
	tagGPSPointer     uint16 = 0x8825
	tagInteropPointer uint16 = 0xA005
)

// ReadEXIF decodes the EXIF block of a JPEG or TIFF file into its sections.
//
// It returns *UnsupportedFormatError for other image formats, ErrNoEXIF when
// the image carries no EXIF block and an error wrapping ErrNotImage when the
// file is not an image at all.
func (h *Handler) ReadEXIF(path string) (core.Sections, error) {
	id, err := core.SniffFile(path)
	if err != nil {
		return nil, err
	}
	if !id.IsImage() {
		return nil, fmt.Errorf("%w %q", ErrNotImage, path)
	}
	if id != core.FmtJPEG && id != core.FmtTIFF {
		return nil, &UnsupportedFormatError{Format: id.Name()}
	}

	raw, err := readRawEXIF(path, id)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoEXIF
	}
	h.log.Debug("found EXIF block", zap.String("path", path), zap.Int("bytes", len(raw)))

	return h.decodeSections(raw)
}

// readRawEXIF returns the TIFF-structured EXIF bytes. For TIFF files that is
// the whole file.
func readRawEXIF(path string, id core.FormatID) ([]byte, error) {
	if id == core.FmtTIFF {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := jpg.ExtractEXIF(f)
	if err != nil {
		return nil, fmt.Errorf("scan JPEG segments: %w", err)
	}
	return raw, nil
}

func (h *Handler) decodeSections(raw []byte) (core.Sections, error) {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			return nil, fmt.Errorf("decode EXIF: %w", err)
		}
		h.log.Debug("non-critical EXIF decode error", zap.Error(err))
	}
	if x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return nil, fmt.Errorf("decode EXIF: no IFD found")
	}

	order := x.Tiff.Order
	ifd0 := x.Tiff.Dirs[0]

	exifDir, err := subDir(raw, order, ifd0, tagExifPointer)
	if err != nil {
		return nil, err
	}
	gpsDir, err := subDir(raw, order, ifd0, tagGPSPointer)
	if err != nil {
		return nil, err
	}
	interopDir, err := subDir(raw, order, exifDir, tagInteropPointer)
	if err != nil {
		return nil, err
	}
	var ifd1 *tiff.Dir
	if len(x.Tiff.Dirs) > 1 {
		ifd1 = x.Tiff.Dirs[1]
	}

	thumb := core.Section{Name: core.SectionThumbnail, Kind: core.SectionEmpty}
	if data := thumbnail(x); len(data) > 0 {
		thumb = core.Section{Name: core.SectionThumbnail, Kind: core.SectionBinary, Data: data}
	}

	return core.Sections{
		tagSection(core.Section0th, ifd0),
		tagSection(core.SectionExif, exifDir),
		tagSection(core.SectionGPS, gpsDir),
		tagSection(core.SectionInterop, interopDir),
		tagSection(core.Section1st, ifd1),
		thumb,
	}, nil
}

// thumbnail returns the JPEG thumbnail IFD1 points at, or nil when the
// pointer is missing or runs past the block.
func thumbnail(x *exif.Exif) []byte {
	startTag, err := x.Get(exif.ThumbJPEGInterchangeFormat)
	if err != nil {
		return nil
	}
	lenTag, err := x.Get(exif.ThumbJPEGInterchangeFormatLength)
	if err != nil {
		return nil
	}
	start, err := startTag.Int(0)
	if err != nil {
		return nil
	}
	n, err := lenTag.Int(0)
	if err != nil {
		return nil
	}
	if start < 0 || n <= 0 || start > len(x.Raw)-n {
		return nil
	}
	return x.Raw[start : start+n]
}

// subDir follows the pointer tag ptr of parent to the IFD it references.
// A missing parent or pointer yields a nil Dir.
func subDir(raw []byte, order binary.ByteOrder, parent *tiff.Dir, ptr uint16) (*tiff.Dir, error) {
	tag := findTag(parent, ptr)
	if tag == nil {
		return nil, nil
	}
	off, err := tag.Int64(0)
	if err != nil {
		return nil, fmt.Errorf("IFD pointer 0x%04X: %w", ptr, err)
	}
	if off <= 0 || off >= int64(len(raw)) {
		return nil, fmt.Errorf("IFD pointer 0x%04X: offset %d out of range", ptr, off)
	}

	r := bytes.NewReader(raw)
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	d, _, err := tiff.DecodeDir(r, order)
	if err != nil {
		return nil, fmt.Errorf("decode IFD at offset %d: %w", off, err)
	}
	return d, nil
}

func findTag(d *tiff.Dir, id uint16) *tiff.Tag {
	if d == nil {
		return nil
	}
	for _, t := range d.Tags {
		if t.Id == id {
			return t
		}
	}
	return nil
}

func tagSection(name string, d *tiff.Dir) core.Section {
	if d == nil || len(d.Tags) == 0 {
		return core.Section{Name: name, Kind: core.SectionEmpty}
	}
	entries := make([]core.TagEntry, 0, len(d.Tags))
	for _, t := range d.Tags {
		entries = append(entries, core.TagEntry{ID: t.Id, Value: tagValue(t)})
	}
	return core.Section{Name: name, Kind: core.SectionTags, Tags: entries}
}

// tagValue converts a TIFF tag to a scalar, a tuple or raw bytes. Counts
// greater than one become slices.
func tagValue(t *tiff.Tag) any {
	n := int(t.Count)
	switch t.Format() {
	case tiff.StringVal:
		if s, err := t.StringVal(); err == nil {
			return strings.TrimRight(s, "\x00")
		}
	case tiff.IntVal:
		vals := make([]int, 0, n)
		for i := 0; i < n; i++ {
			v, err := t.Int(i)
			if err != nil {
				return t.Val
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	case tiff.RatVal:
		vals := make([]core.Rational, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := t.Rat2(i)
			if err != nil {
				return t.Val
			}
			vals = append(vals, core.Rational{Num: num, Den: den})
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	case tiff.FloatVal:
		vals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			v, err := t.Float(i)
			if err != nil {
				return t.Val
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	}
	return t.Val
}
