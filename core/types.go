// Package core defines the shared types, the format registry and the console
// printer for exiftool.
package core

import "github.com/ankit-chaubey/exiftool/core/tags"

// SectionKind tells the renderer what a Section carries.
type SectionKind int

const (
	SectionEmpty  SectionKind = iota // nothing decoded for this section
	SectionBinary                    // raw bytes (e.g. an embedded thumbnail)
	SectionTags                      // tag id → value pairs
)

// EXIF section names, in the order they are decoded and displayed.
const (
	Section0th       = tags.IFD0
	SectionExif      = tags.Exif
	SectionGPS       = tags.GPS
	SectionInterop   = tags.Interop
	Section1st       = tags.IFD1
	SectionThumbnail = tags.Thumbnail
)

// SectionNames lists every EXIF section a successful decode produces.
var SectionNames = []string{
	Section0th, SectionExif, SectionGPS, SectionInterop, Section1st, SectionThumbnail,
}

// TagEntry is a single decoded EXIF tag.
type TagEntry struct {
	ID    uint16
	Value any // string, int, []int, Rational, []Rational, float64, []float64 or []byte
}

// Section is one EXIF IFD (or the thumbnail blob) of a decoded block.
type Section struct {
	Name string
	Kind SectionKind
	Tags []TagEntry // set when Kind == SectionTags
	Data []byte     // set when Kind == SectionBinary
}

// IsEmpty reports whether the section holds nothing worth showing.
func (s Section) IsEmpty() bool {
	switch s.Kind {
	case SectionBinary:
		return len(s.Data) == 0
	case SectionTags:
		return len(s.Tags) == 0
	default:
		return true
	}
}

// Sections is the ordered tag mapping produced by the EXIF reader.
type Sections []Section

// Get returns the named section, if present.
func (ss Sections) Get(name string) (Section, bool) {
	for _, s := range ss {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// AllEmpty reports whether no section carries data.
func (ss Sections) AllEmpty() bool {
	for _, s := range ss {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Rational is an unsigned or signed TIFF rational.
type Rational struct {
	Num int64
	Den int64
}

// TrackKind is the type of a logical stream inside a media container.
type TrackKind string

const (
	TrackGeneral TrackKind = "General"
	TrackVideo   TrackKind = "Video"
	TrackAudio   TrackKind = "Audio"
	TrackImage   TrackKind = "Image"
	TrackOther   TrackKind = "Other"
)

// Track holds the fields of one stream. Its first field is always track_type.
type Track struct {
	Kind   TrackKind
	Fields *Fields
}

// NewTrack returns a track with its track_type field already set.
func NewTrack(kind TrackKind) Track {
	f := NewFields()
	f.Set("track_type", string(kind))
	return Track{Kind: kind, Fields: f}
}

// TrackSource is implemented by every package that can describe the streams
// of a file for the container metadata reader.
type TrackSource interface {
	// Supports reports whether the source understands the given format.
	Supports(id FormatID) bool
	// Tracks reads path and returns the tracks it found, in file order.
	Tracks(path string, id FormatID) ([]Track, error)
}
