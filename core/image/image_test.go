package image

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ankit-chaubey/exiftool/core"
	"github.com/ankit-chaubey/exiftool/core/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClampsQuality(t *testing.T) {
	assert.Equal(t, DefaultQuality, New(nil, 0).quality)
	assert.Equal(t, DefaultQuality, New(nil, 101).quality)
	assert.Equal(t, 90, New(nil, 90).quality)
}

func TestSupports(t *testing.T) {
	h := newHandler()
	for _, id := range []core.FormatID{core.FmtJPEG, core.FmtPNG, core.FmtGIF, core.FmtTIFF, core.FmtBMP, core.FmtWebP} {
		assert.True(t, h.Supports(id), id)
	}
	for _, id := range []core.FormatID{core.FmtHEIC, core.FmtMP3, core.FmtUnknown} {
		assert.False(t, h.Supports(id), id)
	}
}

func TestTracks(t *testing.T) {
	cases := map[string]struct {
		data        []byte
		id          core.FormatID
		format      string
		compression string
	}{
		"jpeg": {fixture.JPEG(t, fixture.EXIF()), core.FmtJPEG, "JPEG", "Lossy"},
		"png":  {fixture.PNG(t), core.FmtPNG, "PNG", "Lossless"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			path := fixture.Write(t, name, c.data)

			tracks, err := newHandler().Tracks(path, c.id)
			require.NoError(t, err)
			require.Len(t, tracks, 1)

			tr := tracks[0]
			assert.Equal(t, core.TrackImage, tr.Kind)
			assert.Equal(t, []string{"track_type", "format", "width", "height", "color_space", "compression_mode"}, tr.Fields.Keys())
			for key, want := range map[string]string{
				"format":           c.format,
				"width":            "16",
				"height":           "8",
				"compression_mode": c.compression,
			} {
				got, _ := tr.Fields.Get(key)
				assert.Equal(t, want, got, key)
			}
		})
	}
}

func TestTracksNotImage(t *testing.T) {
	path := fixture.Write(t, "fake.png", []byte("not a png"))
	_, err := newHandler().Tracks(path, core.FmtPNG)
	assert.Error(t, err)
}

func TestStrip(t *testing.T) {
	src := fixture.Write(t, "photo.jpg", fixture.JPEG(t, fixture.EXIF()))
	dst := filepath.Join(t.TempDir(), "clean.jpg")

	h := newHandler()
	require.NoError(t, h.Strip(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	_, err = h.ReadEXIF(dst)
	assert.ErrorIs(t, err, ErrNoEXIF)

	tracks, err := h.Tracks(dst, core.FmtJPEG)
	require.NoError(t, err)
	w, _ := tracks[0].Fields.Get("width")
	assert.Equal(t, "16", w)
}

func TestStripPNGToJPEG(t *testing.T) {
	src := fixture.Write(t, "logo.png", fixture.PNG(t))
	dst := filepath.Join(t.TempDir(), "logo.jpg")

	require.NoError(t, newHandler().Strip(src, dst))

	id, err := core.SniffFile(dst)
	require.NoError(t, err)
	assert.Equal(t, core.FmtJPEG, id)
}

func TestStripNotImage(t *testing.T) {
	src := fixture.Write(t, "notes.txt", []byte("plain text"))
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.jpg")

	require.Error(t, newHandler().Strip(src, dst))
	assert.NoFileExists(t, dst)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStripMissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.jpg")
	err := newHandler().Strip(filepath.Join(t.TempDir(), "missing.jpg"), dst)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, dst)
}
