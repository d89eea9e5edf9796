// Package jpg walks the marker segments of a JPEG stream.
package jpg

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	jseg "github.com/garyhouston/jpegsegs"
)

// ExifHeader prefixes the APP1 payload that carries EXIF.
var ExifHeader = []byte("Exif\x00\x00")

// ErrNotJPEG is returned when the stream does not start with SOI.
var ErrNotJPEG = errors.New("not a JPEG stream")

// ReadSegment returns the payload of the first segment with the given marker
// whose data starts with prefix, with the prefix removed. A nil slice and nil
// error mean the header segments were scanned without a match.
func ReadSegment(r io.ReadSeeker, marker jseg.Marker, prefix []byte) (data []byte, err error) {
	scanner, err := jseg.NewScanner(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJPEG, err)
	}

	// the scanner slices its buffer by the declared segment length
	defer func() {
		if p := recover(); p != nil {
			data, err = nil, fmt.Errorf("malformed JPEG segment: %v", p)
		}
	}()

	for {
		m, seg, err := scanner.Scan()
		if err != nil {
			return nil, fmt.Errorf("read segment: %w", err)
		}
		switch {
		case m == jseg.SOS || m == jseg.EOI:
			return nil, nil
		case m != marker || !bytes.HasPrefix(seg, prefix):
			continue
		}
		// seg is only valid until the next Scan
		return bytes.Clone(seg[len(prefix):]), nil
	}
}

// ExtractEXIF returns the TIFF-structured EXIF block of a JPEG stream, or nil
// when the stream has no EXIF APP1 segment.
func ExtractEXIF(r io.ReadSeeker) ([]byte, error) {
	return ReadSegment(r, jseg.APP1, ExifHeader)
}
