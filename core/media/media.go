// Package media reads container-level metadata: a General track built from
// the file itself plus the tracks reported by every TrackSource that supports
// the file's format, flattened last-track-wins.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankit-chaubey/exiftool/core"
	"go.uber.org/zap"
)

const modTimeLayout = "UTC 2006-01-02 15:04:05"

// Reader collects tracks from its sources.
type Reader struct {
	log     *zap.Logger
	sources []core.TrackSource
}

// New returns a Reader querying sources in the given order.
func New(log *zap.Logger, sources ...core.TrackSource) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{log: log, sources: sources}
}

// Read returns the merged fields of every track in path. On failure the
// returned mapping is empty, never nil.
func (r *Reader) Read(path string) (*core.Fields, error) {
	tracks, err := r.Tracks(path)
	if err != nil {
		return core.NewFields(), err
	}
	return core.MergeTracks(tracks), nil
}

// Tracks returns the General track followed by the sources' tracks.
func (r *Reader) Tracks(path string) ([]core.Track, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	id, err := core.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	tracks := []core.Track{generalTrack(path, info, id)}
	for _, src := range r.sources {
		if !src.Supports(id) {
			continue
		}
		ts, err := src.Tracks(path, id)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, ts...)
	}

	r.log.Debug("container tracks",
		zap.String("path", path),
		zap.String("format", string(id)),
		zap.Int("tracks", len(tracks)),
	)
	return tracks, nil
}

func generalTrack(path string, info os.FileInfo, id core.FormatID) core.Track {
	t := core.NewTrack(core.TrackGeneral)
	fl := t.Fields

	complete := path
	if abs, err := filepath.Abs(path); err == nil {
		complete = abs
	}
	ext := filepath.Ext(complete)

	fl.Set("complete_name", complete)
	fl.Set("folder_name", filepath.Dir(complete))
	fl.Set("file_name", strings.TrimSuffix(filepath.Base(complete), ext))
	fl.SetNonEmpty("file_extension", strings.TrimPrefix(ext, "."))
	if id != core.FmtUnknown {
		fl.Set("format", id.Name())
		fl.SetNonEmpty("internet_media_type", id.Info().MIMEType)
	}
	fl.SetInt("file_size", info.Size())
	fl.Set("file_last_modification_date", info.ModTime().UTC().Format(modTimeLayout))
	return t
}
