// Package fixture builds small media files for tests: a TIFF-structured EXIF
// block, JPEG and PNG images, a tag-only FLAC stream, an ID3v2-tagged MP3 and
// an MP4 movie.
package fixture

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Values stored in the EXIF block built by EXIF.
const (
	Make             = "Canon"
	Orientation      = 6
	ISO              = 200
	DateTimeOriginal = "2024:01:02 03:04:05"
	UnknownTagID     = 0xC0DE
	UnknownTagValue  = 42
)

// Thumbnail is the blob referenced by IFD1 of the EXIF block.
var Thumbnail = []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04, 0x00, 0x00, 0xFF, 0xD9}

type entry struct {
	id    uint16
	typ   uint16
	count uint32
	val   []byte
}

var order = binary.LittleEndian

func u16(v uint16) []byte {
	b := make([]byte, 2)
	order.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	order.PutUint32(b, v)
	return b
}

func ascii(id uint16, s string) entry {
	b := append([]byte(s), 0)
	return entry{id: id, typ: 2, count: uint32(len(b)), val: b}
}

func short(id uint16, v uint16) entry { return entry{id: id, typ: 3, count: 1, val: u16(v)} }

func long(id uint16, v uint32) entry { return entry{id: id, typ: 4, count: 1, val: u32(v)} }

// encodeIFD lays out an IFD starting at absolute offset base, with values
// longer than four bytes placed right after it.
func encodeIFD(base int, entries []entry, next uint32) []byte {
	dataOff := base + 2 + 12*len(entries) + 4
	var head, data bytes.Buffer
	head.Write(u16(uint16(len(entries))))
	for _, e := range entries {
		head.Write(u16(e.id))
		head.Write(u16(e.typ))
		head.Write(u32(e.count))
		if len(e.val) <= 4 {
			v := make([]byte, 4)
			copy(v, e.val)
			head.Write(v)
			continue
		}
		head.Write(u32(uint32(dataOff + data.Len())))
		data.Write(e.val)
		if data.Len()%2 == 1 {
			data.WriteByte(0)
		}
	}
	head.Write(u32(next))
	return append(head.Bytes(), data.Bytes()...)
}

// EXIF returns a little-endian TIFF block with IFD0 (Make, Orientation, an
// unknown tag and the Exif pointer), an Exif IFD (ISOSpeedRatings,
// DateTimeOriginal) and an IFD1 pointing at Thumbnail.
func EXIF() []byte {
	ifd0 := []entry{
		ascii(0x010F, Make),
		short(0x0112, Orientation),
		long(0x8769, 0),
		short(UnknownTagID, UnknownTagValue),
	}
	exifIFD := []entry{
		short(0x8827, ISO),
		ascii(0x9003, DateTimeOriginal),
	}
	ifd1 := []entry{
		long(0x0201, 0),
		long(0x0202, uint32(len(Thumbnail))),
	}

	ifd0Off := 8
	exifOff := ifd0Off + len(encodeIFD(0, ifd0, 0))
	ifd1Off := exifOff + len(encodeIFD(0, exifIFD, 0))
	thumbOff := ifd1Off + len(encodeIFD(0, ifd1, 0))

	ifd0[2] = long(0x8769, uint32(exifOff))
	ifd1[0] = long(0x0201, uint32(thumbOff))

	out := []byte("II*\x00")
	out = append(out, u32(uint32(ifd0Off))...)
	out = append(out, encodeIFD(ifd0Off, ifd0, uint32(ifd1Off))...)
	out = append(out, encodeIFD(exifOff, exifIFD, 0)...)
	out = append(out, encodeIFD(ifd1Off, ifd1, 0)...)
	out = append(out, Thumbnail...)
	return out
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

// JPEG returns a 16x8 JPEG. A non-empty exif block is inserted as an APP1
// segment right after SOI.
func JPEG(t testing.TB, exif []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}
	if len(exif) == 0 {
		return buf.Bytes()
	}

	payload := append([]byte("Exif\x00\x00"), exif...)
	seg := []byte{0xFF, 0xE1, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))

	raw := buf.Bytes()
	out := append([]byte{}, raw[:2]...)
	out = append(out, seg...)
	out = append(out, payload...)
	return append(out, raw[2:]...)
}

// PNG returns a 16x8 PNG.
func PNG(t testing.TB) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// FLAC returns a FLAC stream of metadata blocks only: STREAMINFO with the
// given rate, channels, bit depth and sample count, then a Vorbis comment
// block carrying vendor and the KEY=value comments.
func FLAC(rate, channels, bits int, samples int64, vendor string, comments ...string) []byte {
	info := make([]byte, 34)
	binary.BigEndian.PutUint16(info[0:], 4096)
	binary.BigEndian.PutUint16(info[2:], 4096)
	// bytes 4..9: min/max frame size left at zero (unknown)
	packed := uint64(rate)<<44 | uint64(channels-1)<<41 | uint64(bits-1)<<36 | uint64(samples)&(1<<36-1)
	binary.BigEndian.PutUint64(info[10:], packed)

	var vc bytes.Buffer
	vc.Write(u32(uint32(len(vendor))))
	vc.WriteString(vendor)
	vc.Write(u32(uint32(len(comments))))
	for _, c := range comments {
		vc.Write(u32(uint32(len(c))))
		vc.WriteString(c)
	}

	out := []byte("fLaC")
	out = append(out, blockHeader(false, 0, len(info))...)
	out = append(out, info...)
	out = append(out, blockHeader(true, 4, vc.Len())...)
	return append(out, vc.Bytes()...)
}

func blockHeader(last bool, typ byte, n int) []byte {
	if last {
		typ |= 0x80
	}
	return []byte{typ, byte(n >> 16), byte(n >> 8), byte(n)}
}

// Write stores data under name in a fresh temporary directory and returns
// the path.
func Write(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
