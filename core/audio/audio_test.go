package audio

import (
	"testing"

	"github.com/ankit-chaubey/exiftool/core"
	"github.com/ankit-chaubey/exiftool/core/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func get(t *testing.T, f *core.Fields, key string) string {
	t.Helper()
	v, ok := f.Get(key)
	require.True(t, ok, "missing field %q", key)
	return v
}

func TestSupports(t *testing.T) {
	h := New(zap.NewNop())
	for _, id := range []core.FormatID{core.FmtMP3, core.FmtFLAC, core.FmtOGG, core.FmtM4A} {
		assert.True(t, h.Supports(id), id)
	}
	for _, id := range []core.FormatID{core.FmtJPEG, core.FmtMP4, core.FmtWAV} {
		assert.False(t, h.Supports(id), id)
	}
}

func TestTracksFLAC(t *testing.T) {
	data := fixture.FLAC(44100, 2, 16, 441000, "reference libFLAC 1.4.3",
		"TITLE=Morning", "ARTIST=Someone", "TRACKNUMBER=3")
	path := fixture.Write(t, "song.flac", data)

	tracks, err := New(nil).Tracks(path, core.FmtFLAC)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	general := tracks[0]
	assert.Equal(t, core.TrackGeneral, general.Kind)
	assert.Equal(t, "Morning", get(t, general.Fields, "title"))
	assert.Equal(t, "Someone", get(t, general.Fields, "performer"))
	assert.Equal(t, "3", get(t, general.Fields, "track_name_position"))
	assert.Equal(t, "reference libFLAC 1.4.3", get(t, general.Fields, "writing_library"))
	_, hasCover := general.Fields.Get("cover")
	assert.False(t, hasCover)

	stream := tracks[1]
	assert.Equal(t, core.TrackAudio, stream.Kind)
	assert.Equal(t, "Audio", get(t, stream.Fields, "track_type"))
	assert.Equal(t, "FLAC", get(t, stream.Fields, "format"))
	assert.Equal(t, "44100", get(t, stream.Fields, "sampling_rate"))
	assert.Equal(t, "2", get(t, stream.Fields, "channel_s"))
	assert.Equal(t, "16", get(t, stream.Fields, "bit_depth"))
	assert.Equal(t, "441000", get(t, stream.Fields, "samples_count"))
	assert.Equal(t, "10000", get(t, stream.Fields, "duration"))
}

func TestTracksMP3(t *testing.T) {
	path := fixture.Write(t, "song.mp3", fixture.MP3(t))

	tracks, err := New(nil).Tracks(path, core.FmtMP3)
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	general := tracks[0].Fields
	assert.Equal(t, fixture.MP3Title, get(t, general, "title"))
	assert.Equal(t, fixture.MP3Artist, get(t, general, "performer"))
	assert.Equal(t, "ID3v2.4", get(t, general, "tag_format"))
	assert.Equal(t, "3", get(t, general, "tag_frame_count"))
	assert.Equal(t, fixture.MP3Encoder, get(t, general, "writing_library"))
}

func TestReadID3v2WithoutFrames(t *testing.T) {
	// frame sync only, no tag
	path := fixture.Write(t, "bare.mp3", append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 413)...))

	f := core.NewFields()
	require.NoError(t, readID3v2(path, f))
	assert.Zero(t, f.Len())
}

func TestTracksUnreadable(t *testing.T) {
	path := fixture.Write(t, "broken.flac", []byte("fLaC\x00"))
	_, err := New(nil).Tracks(path, core.FmtFLAC)
	assert.Error(t, err)
}

func TestSetPosition(t *testing.T) {
	f := core.NewFields()
	setPosition(f, "pos", "total", func() (int, int) { return 2, 0 })
	assert.Equal(t, []string{"pos"}, f.Keys())

	f = core.NewFields()
	setPosition(f, "pos", "total", func() (int, int) { return 0, 0 })
	assert.Zero(t, f.Len())
}
