// Package tags maps EXIF tag identifiers to their names, per section.
package tags

import (
	"errors"
	"fmt"
	"sync"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// Section names of a decoded EXIF block.
const (
	IFD0      = "0th"
	Exif      = "Exif"
	GPS       = "GPS"
	Interop   = "Interop"
	IFD1      = "1st"
	Thumbnail = "thumbnail"
)

// ErrUnknownTag is returned by Lookup for an identifier the section lacks.
var ErrUnknownTag = errors.New("unknown tag")

var identities = map[string]*exifcommon.IfdIdentity{
	IFD0:    exifcommon.IfdStandardIfdIdentity,
	IFD1:    exifcommon.Ifd1StandardIfdIdentity,
	Exif:    exifcommon.IfdExifStandardIfdIdentity,
	GPS:     exifcommon.IfdGpsInfoStandardIfdIdentity,
	Interop: exifcommon.IfdExifIopStandardIfdIdentity,
}

// loadIndex fills the standard tag index once. TagIndex loads itself lazily
// on first use, but that path is not safe for concurrent callers.
var loadIndex = sync.OnceValues(func() (*exif.TagIndex, error) {
	ti := exif.NewTagIndex()
	if err := exif.LoadStandardTags(ti); err != nil {
		return nil, fmt.Errorf("load EXIF tag index: %w", err)
	}
	return ti, nil
})

// Lookup resolves a tag identifier within a section.
func Lookup(section string, id uint16) (string, error) {
	ii, ok := identities[section]
	if !ok {
		return "", fmt.Errorf("%w: %s/0x%04X", ErrUnknownTag, section, id)
	}
	ti, err := loadIndex()
	if err != nil {
		return "", err
	}
	it, err := ti.Get(ii, id)
	if errors.Is(err, exif.ErrTagNotFound) {
		return "", fmt.Errorf("%w: %s/0x%04X", ErrUnknownTag, section, id)
	}
	if err != nil {
		return "", fmt.Errorf("lookup %s/0x%04X: %w", section, id, err)
	}
	return it.Name, nil
}
