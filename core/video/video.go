// Package video describes ISO base media files (MP4, MOV, M4A) as container
// tracks using abema/go-mp4.
package video

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abema/go-mp4"
	"github.com/ankit-chaubey/exiftool/core"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Handler implements core.TrackSource for ISO-BMFF formats.
type Handler struct {
	log *zap.Logger
}

// New returns a video Handler.
func New(log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{log: log}
}

var supported = []core.FormatID{core.FmtMP4, core.FmtMOV, core.FmtM4A}

func (h *Handler) Supports(id core.FormatID) bool {
	return slices.Contains(supported, id)
}

// Tracks probes the movie header and returns a General track followed by one
// track per trak box.
func (h *Handler) Tracks(path string, id core.FormatID) ([]core.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := mp4.Probe(f)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", id.Name(), err)
	}

	general := core.NewTrack(core.TrackGeneral)
	general.Fields.Set("format", id.Name())
	general.Fields.SetNonEmpty("codec_id", brand(info.MajorBrand))
	var compat []string
	for _, b := range info.CompatibleBrands {
		if s := brand(b); s != "" && !slices.Contains(compat, s) {
			compat = append(compat, s)
		}
	}
	general.Fields.SetNonEmpty("codec_id_compatible", strings.Join(compat, "/"))
	if info.Timescale > 0 {
		general.Fields.SetInt("duration", durationMillis(info.Duration, info.Timescale))
	}
	general.Fields.Set("is_streamable", yesNo(info.FastStart))

	tracks := []core.Track{general}
	for _, tr := range info.Tracks {
		tracks = append(tracks, probeTrack(tr))
	}

	h.log.Debug("probed ISO-BMFF", zap.String("path", path), zap.Int("tracks", len(info.Tracks)))
	return tracks, nil
}

func probeTrack(tr *mp4.Track) core.Track {
	var t core.Track
	switch tr.Codec {
	case mp4.CodecAVC1:
		t = core.NewTrack(core.TrackVideo)
		t.Fields.Set("format", "AVC")
		if avc := tr.AVC; avc != nil {
			t.Fields.SetNonEmpty("format_profile", avcProfile(int(avc.Profile)))
			t.Fields.Set("format_level", avcLevel(int(avc.Level)))
			t.Fields.SetInt("width", int64(avc.Width))
			t.Fields.SetInt("height", int64(avc.Height))
		}
	case mp4.CodecMP4A:
		t = core.NewTrack(core.TrackAudio)
		t.Fields.Set("format", "AAC")
		if a := tr.MP4A; a != nil {
			t.Fields.Set("codec_id", fmt.Sprintf("mp4a-%X-%d", a.OTI, a.AudOTI))
			t.Fields.SetInt("channel_s", int64(a.ChannelCount))
		}
	default:
		t = core.NewTrack(core.TrackOther)
	}

	t.Fields.SetInt("track_id", int64(tr.TrackID))
	frames := len(tr.Samples)
	t.Fields.SetInt("frame_count", int64(frames))
	if tr.Timescale == 0 {
		return t
	}
	ms := durationMillis(tr.Duration, tr.Timescale)
	t.Fields.SetInt("duration", ms)
	if t.Kind == core.TrackVideo && ms > 0 && frames > 0 {
		t.Fields.Set("frame_rate", strconv.FormatFloat(float64(frames)*1000/float64(ms), 'f', 3, 64))
	}
	return t
}

func durationMillis(d uint64, timescale uint32) int64 {
	return int64(d * 1000 / uint64(timescale))
}

// brand renders a four-character code without its padding.
func brand(b [4]byte) string {
	return strings.TrimRight(string(b[:]), " \x00")
}

func avcProfile(p int) string {
	switch p {
	case 66:
		return "Baseline"
	case 77:
		return "Main"
	case 88:
		return "Extended"
	case 100:
		return "High"
	case 110:
		return "High 10"
	case 122:
		return "High 4:2:2"
	case 244:
		return "High 4:4:4 Predictive"
	}
	return ""
}

func avcLevel(l int) string {
	return strconv.Itoa(l/10) + "." + strconv.Itoa(l%10)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
