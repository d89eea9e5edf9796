package core

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FormatID enumerates every recognised format.
type FormatID string

const (
	FmtJPEG FormatID = "jpeg"
	FmtPNG  FormatID = "png"
	FmtGIF  FormatID = "gif"
	FmtWebP FormatID = "webp"
	FmtTIFF FormatID = "tiff"
	FmtBMP  FormatID = "bmp"
	FmtHEIC FormatID = "heic"

	FmtMP3  FormatID = "mp3"
	FmtFLAC FormatID = "flac"
	FmtOGG  FormatID = "ogg"
	FmtM4A  FormatID = "m4a"
	FmtWAV  FormatID = "wav"
	FmtAIFF FormatID = "aiff"

	FmtMP4 FormatID = "mp4"
	FmtMOV FormatID = "mov"
	FmtMKV FormatID = "mkv"
	FmtAVI FormatID = "avi"
	FmtFLV FormatID = "flv"

	FmtPDF FormatID = "pdf"
	FmtZIP FormatID = "zip"

	FmtUnknown FormatID = "unknown"
)

// FormatInfo describes a format for display.
type FormatInfo struct {
	Name      string // "JPEG"
	MediaType string // "image" | "audio" | "video" | "document" | "unknown"
	MIMEType  string
}

var formatInfo = map[FormatID]FormatInfo{
	FmtJPEG: {"JPEG", "image", "image/jpeg"},
	FmtPNG:  {"PNG", "image", "image/png"},
	FmtGIF:  {"GIF", "image", "image/gif"},
	FmtWebP: {"WEBP", "image", "image/webp"},
	FmtTIFF: {"TIFF", "image", "image/tiff"},
	FmtBMP:  {"BMP", "image", "image/bmp"},
	FmtHEIC: {"HEIF", "image", "image/heic"},

	FmtMP3:  {"MPEG Audio", "audio", "audio/mpeg"},
	FmtFLAC: {"FLAC", "audio", "audio/flac"},
	FmtOGG:  {"Ogg", "audio", "audio/ogg"},
	FmtM4A:  {"MPEG-4", "audio", "audio/mp4"},
	FmtWAV:  {"Wave", "audio", "audio/vnd.wave"},
	FmtAIFF: {"AIFF", "audio", "audio/aiff"},

	FmtMP4: {"MPEG-4", "video", "video/mp4"},
	FmtMOV: {"QuickTime", "video", "video/quicktime"},
	FmtMKV: {"Matroska", "video", "video/x-matroska"},
	FmtAVI: {"AVI", "video", "video/vnd.avi"},
	FmtFLV: {"Flash Video", "video", "video/x-flv"},

	FmtPDF: {"PDF", "document", "application/pdf"},
	FmtZIP: {"ZIP", "document", "application/zip"},
}

// Info returns the display information for the format.
func (id FormatID) Info() FormatInfo {
	if info, ok := formatInfo[id]; ok {
		return info
	}
	return FormatInfo{Name: "Unknown", MediaType: "unknown"}
}

// Name returns the display name, e.g. "JPEG".
func (id FormatID) Name() string { return id.Info().Name }

// IsImage reports whether the format is a raster image container.
func (id FormatID) IsImage() bool { return id.Info().MediaType == "image" }

// extMap maps lowercase extensions to format IDs.
var extMap = map[string]FormatID{
	".jpg":  FmtJPEG,
	".jpeg": FmtJPEG,
	".png":  FmtPNG,
	".gif":  FmtGIF,
	".webp": FmtWebP,
	".tiff": FmtTIFF,
	".tif":  FmtTIFF,
	".bmp":  FmtBMP,
	".heic": FmtHEIC,
	".heif": FmtHEIC,

	".mp3":  FmtMP3,
	".flac": FmtFLAC,
	".ogg":  FmtOGG,
	".oga":  FmtOGG,
	".opus": FmtOGG,
	".m4a":  FmtM4A,
	".wav":  FmtWAV,
	".aif":  FmtAIFF,
	".aiff": FmtAIFF,

	".mp4":  FmtMP4,
	".m4v":  FmtMP4,
	".mov":  FmtMOV,
	".qt":   FmtMOV,
	".mkv":  FmtMKV,
	".webm": FmtMKV,
	".avi":  FmtAVI,
	".flv":  FmtFLV,

	".pdf": FmtPDF,
	".zip": FmtZIP,
}

// sniffLen is how many leading bytes Sniff needs to see.
const sniffLen = 32

// SniffFile reads the head of path and identifies it by magic bytes only.
func SniffFile(path string) (FormatID, error) {
	head, err := readHead(path)
	if err != nil {
		return FmtUnknown, err
	}
	return Sniff(head), nil
}

// DetectFormat returns the FormatID for the given file, first by reading
// magic bytes and falling back to extension.
func DetectFormat(path string) (FormatID, error) {
	head, err := readHead(path)
	if err != nil {
		return FmtUnknown, err
	}
	if id := Sniff(head); id != FmtUnknown {
		return id, nil
	}
	if id, ok := extMap[strings.ToLower(filepath.Ext(path))]; ok {
		return id, nil
	}
	return FmtUnknown, nil
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// Sniff identifies a format from the first bytes of a file.
func Sniff(b []byte) FormatID {
	if len(b) < 4 {
		return FmtUnknown
	}
	switch {
	// JPEG: FF D8 FF
	case b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return FmtJPEG
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(b, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return FmtPNG
	// GIF: GIF87a or GIF89a
	case bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a")):
		return FmtGIF
	// WebP: RIFF????WEBP
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return FmtWebP
	// TIFF: 49 49 2A 00 (little-endian) or 4D 4D 00 2A (big-endian)
	case bytes.HasPrefix(b, []byte{0x49, 0x49, 0x2A, 0x00}) ||
		bytes.HasPrefix(b, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return FmtTIFF
	case isBMP(b):
		return FmtBMP
	// MP3: ID3 tag or frame sync
	case bytes.HasPrefix(b, []byte("ID3")):
		return FmtMP3
	case b[0] == 0xFF && (b[1]&0xE0 == 0xE0):
		return FmtMP3
	case bytes.HasPrefix(b, []byte("fLaC")):
		return FmtFLAC
	case bytes.HasPrefix(b, []byte("OggS")):
		return FmtOGG
	// WAV: RIFF????WAVE
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WAVE")):
		return FmtWAV
	// AIFF: FORM????AIFF or AIFC
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("FORM")) &&
		(bytes.Equal(b[8:12], []byte("AIFF")) || bytes.Equal(b[8:12], []byte("AIFC"))):
		return FmtAIFF
	// ISO-BMFF: ftyp box at offset 4
	case len(b) >= 8 && bytes.Equal(b[4:8], []byte("ftyp")):
		return sniffISOBMFF(b)
	// MKV/WebM: EBML header 0x1A45DFA3
	case binary.BigEndian.Uint32(b[0:4]) == 0x1A45DFA3:
		return FmtMKV
	// AVI: RIFF????AVI
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("AVI ")):
		return FmtAVI
	case bytes.HasPrefix(b, []byte("FLV")):
		return FmtFLV
	case bytes.HasPrefix(b, []byte("%PDF")):
		return FmtPDF
	case bytes.HasPrefix(b, []byte("PK\x03\x04")):
		return FmtZIP
	}
	return FmtUnknown
}

// isBMP checks the "BM" file header: reserved words zero and a known
// DIB header size at offset 14.
func isBMP(b []byte) bool {
	if len(b) < 18 || b[0] != 'B' || b[1] != 'M' {
		return false
	}
	if binary.LittleEndian.Uint32(b[6:10]) != 0 {
		return false
	}
	switch binary.LittleEndian.Uint32(b[14:18]) {
	case 12, 16, 40, 52, 56, 64, 108, 124:
		return true
	}
	return false
}

func sniffISOBMFF(b []byte) FormatID {
	if len(b) < 12 {
		return FmtMP4
	}
	switch string(b[8:12]) {
	case "M4A ", "M4B ":
		return FmtM4A
	case "qt  ":
		return FmtMOV
	case "heic", "heix", "mif1", "msf1":
		return FmtHEIC
	default:
		return FmtMP4
	}
}
