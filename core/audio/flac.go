package audio

import (
	"fmt"
	"os"

	"github.com/ankit-chaubey/exiftool/core"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// readFLAC returns the Audio track described by STREAMINFO. The Vorbis
// comment vendor and the front cover (or first picture) go to the General
// fields. Only the metadata blocks are read; audio frames are never touched.
func readFLAC(path string, general *core.Fields) (core.Track, error) {
	r, err := os.Open(path)
	if err != nil {
		return core.Track{}, err
	}
	defer r.Close()

	f, err := flac.ParseMetadata(r)
	if err != nil {
		return core.Track{}, fmt.Errorf("parse FLAC metadata: %w", err)
	}

	si, err := f.GetStreamInfo()
	if err != nil {
		return core.Track{}, fmt.Errorf("FLAC STREAMINFO: %w", err)
	}

	t := core.NewTrack(core.TrackAudio)
	t.Fields.Set("format", "FLAC")
	t.Fields.SetInt("sampling_rate", int64(si.SampleRate))
	t.Fields.SetInt("channel_s", int64(si.ChannelCount))
	t.Fields.SetInt("bit_depth", int64(si.BitDepth))
	t.Fields.SetInt("samples_count", int64(si.SampleCount))
	if si.SampleRate > 0 {
		t.Fields.SetInt("duration", int64(si.SampleCount)*1000/int64(si.SampleRate))
	}

	var cover *flacpicture.MetadataBlockPicture
	for _, block := range f.Meta {
		switch block.Type {
		case flac.VorbisComment:
			c, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				continue
			}
			general.SetNonEmpty("writing_library", c.Vendor)
		case flac.Picture:
			p, err := flacpicture.ParseFromMetaDataBlock(*block)
			if err != nil {
				continue
			}
			if cover == nil || p.PictureType == flacpicture.PictureTypeFrontCover {
				cover = p
			}
		}
	}

	if cover != nil {
		general.Set("cover", "Yes")
		general.SetNonEmpty("cover_mime", cover.MIME)
		general.SetInt("cover_type", int64(cover.PictureType))
		general.SetInt("cover_width", int64(cover.Width))
		general.SetInt("cover_height", int64(cover.Height))
	}
	return t, nil
}
