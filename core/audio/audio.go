// Package audio describes audio files as container tracks: tags through
// dhowden/tag, ID3v2 details through bogem/id3v2 and FLAC stream information
// through go-flac.
package audio

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ankit-chaubey/exiftool/core"
	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.uber.org/zap"
)

// Handler implements core.TrackSource for audio formats.
type Handler struct {
	log *zap.Logger
}

// New returns an audio Handler.
func New(log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{log: log}
}

func (h *Handler) Supports(id core.FormatID) bool {
	switch id {
	case core.FmtMP3, core.FmtFLAC, core.FmtOGG, core.FmtM4A:
		return true
	}
	return false
}

// Tracks returns a General track holding the file's tags, followed by an
// Audio track for formats whose stream header is understood.
func (h *Handler) Tracks(path string, id core.FormatID) ([]core.Track, error) {
	general, err := readTags(path)
	if err != nil {
		return nil, err
	}
	tracks := []core.Track{general}

	switch id {
	case core.FmtMP3:
		if err := readID3v2(path, general.Fields); err != nil {
			return nil, err
		}
	case core.FmtFLAC:
		stream, err := readFLAC(path, general.Fields)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, stream)
	}

	h.log.Debug("audio tracks", zap.String("path", path), zap.Int("tracks", len(tracks)))
	return tracks, nil
}

// readTags uses the dhowden/tag library to read the common tag fields. A file
// without tags yields a General track with no tag fields.
func readTags(path string) (core.Track, error) {
	t := core.NewTrack(core.TrackGeneral)

	f, err := os.Open(path)
	if err != nil {
		return t, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("could not read tags: %w", err)
	}

	fl := t.Fields
	fl.SetNonEmpty("tag_format", string(m.Format()))
	fl.SetNonEmpty("title", m.Title())
	fl.SetNonEmpty("performer", m.Artist())
	fl.SetNonEmpty("album", m.Album())
	fl.SetNonEmpty("album_performer", m.AlbumArtist())
	fl.SetNonEmpty("composer", m.Composer())
	fl.SetNonEmpty("genre", m.Genre())
	fl.SetNonEmpty("comment", m.Comment())
	if y := m.Year(); y != 0 {
		fl.SetInt("recorded_date", int64(y))
	}
	setPosition(fl, "track_name_position", "track_name_total", m.Track)
	setPosition(fl, "part_position", "part_total", m.Disc)
	fl.SetNonEmpty("lyrics", m.Lyrics())
	if p := m.Picture(); p != nil {
		fl.Set("cover", "Yes")
		fl.SetNonEmpty("cover_mime", p.MIMEType)
	}
	return t, nil
}

func setPosition(fl *core.Fields, posKey, totalKey string, get func() (int, int)) {
	pos, total := get()
	if pos != 0 {
		fl.SetInt(posKey, int64(pos))
	}
	if total != 0 {
		fl.SetInt(totalKey, int64(total))
	}
}

// readID3v2 adds the tag version, frame count and encoder of an MP3's ID3v2
// tag to the General fields.
func readID3v2(path string, fl *core.Fields) error {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("could not open MP3: %w", err)
	}
	defer t.Close()

	if !t.HasFrames() {
		return nil
	}
	fl.Set("tag_format", "ID3v2."+strconv.Itoa(int(t.Version())))
	fl.SetInt("tag_frame_count", int64(t.Count()))
	fl.SetNonEmpty("writing_library", t.GetTextFrame("TSSE").Text)
	return nil
}
