package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abema/go-mp4"
)

// Values stored in the movie built by MP4.
const (
	MP4Width      = 320
	MP4Height     = 240
	MP4Frames     = 50
	MP4DurationMS = 2000
)

// MP4 writes an isom movie under name in a fresh temporary directory and
// returns the path. Track 1 is Baseline AVC at level 3.1 with MP4Frames
// samples spanning MP4DurationMS; track 2 has no sample entry. With
// fastStart the moov box precedes mdat.
func MP4(t testing.TB, name string, fastStart bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	b := &boxWriter{t: t, w: mp4.NewWriter(f)}
	b.leaf(mp4.BoxTypeFtyp(), &mp4.Ftyp{
		MajorBrand: mp4.BrandISOM(),
		CompatibleBrands: []mp4.CompatibleBrandElem{
			{CompatibleBrand: mp4.BrandISOM()},
			{CompatibleBrand: mp4.BrandAVC1()},
		},
	})
	if !fastStart {
		b.mdat()
	}

	b.start(mp4.BoxTypeMoov())
	b.leaf(mp4.BoxTypeMvhd(), &mp4.Mvhd{
		Timescale:   1000,
		DurationV0:  MP4DurationMS,
		Rate:        0x00010000,
		Volume:      0x0100,
		NextTrackID: 3,
	})
	b.trak(1, func() {
		b.start(mp4.BoxTypeAvc1())
		b.marshal(&mp4.VisualSampleEntry{
			SampleEntry: mp4.SampleEntry{
				AnyTypeBox:         mp4.AnyTypeBox{Type: mp4.BoxTypeAvc1()},
				DataReferenceIndex: 1,
			},
			Width:  MP4Width,
			Height: MP4Height,
			Depth:  0x0018,
		})
		b.leaf(mp4.BoxTypeAvcC(), &mp4.AVCDecoderConfiguration{
			AnyTypeBox:           mp4.AnyTypeBox{Type: mp4.BoxTypeAvcC()},
			ConfigurationVersion: 1,
			Profile:              66,
			Level:                31,
			LengthSizeMinusOne:   3,
		})
		b.end()
	})
	b.trak(2, nil)
	b.end()

	if fastStart {
		b.mdat()
	}
	return path
}

type boxWriter struct {
	t testing.TB
	w *mp4.Writer
}

func (b *boxWriter) start(typ mp4.BoxType) {
	b.t.Helper()
	if _, err := b.w.StartBox(&mp4.BoxInfo{Type: typ}); err != nil {
		b.t.Fatal(err)
	}
}

func (b *boxWriter) end() {
	b.t.Helper()
	if _, err := b.w.EndBox(); err != nil {
		b.t.Fatal(err)
	}
}

func (b *boxWriter) marshal(box mp4.IImmutableBox) {
	b.t.Helper()
	if _, err := mp4.Marshal(b.w, box, mp4.Context{}); err != nil {
		b.t.Fatal(err)
	}
}

func (b *boxWriter) leaf(typ mp4.BoxType, box mp4.IImmutableBox) {
	b.t.Helper()
	b.start(typ)
	b.marshal(box)
	b.end()
}

// trak writes a track whose sample table holds MP4Frames samples in one
// chunk. entry writes the sample entries inside stsd, if any.
func (b *boxWriter) trak(id uint32, entry func()) {
	b.t.Helper()
	b.start(mp4.BoxTypeTrak())
	b.leaf(mp4.BoxTypeTkhd(), &mp4.Tkhd{TrackID: id})
	b.start(mp4.BoxTypeMdia())
	b.leaf(mp4.BoxTypeMdhd(), &mp4.Mdhd{
		Timescale:  600,
		DurationV0: 600 * MP4DurationMS / 1000,
		Language:   [3]byte{'u' - 0x60, 'n' - 0x60, 'd' - 0x60},
	})
	b.start(mp4.BoxTypeMinf())
	b.start(mp4.BoxTypeStbl())

	b.start(mp4.BoxTypeStsd())
	if entry != nil {
		b.marshal(&mp4.Stsd{EntryCount: 1})
		entry()
	} else {
		b.marshal(&mp4.Stsd{})
	}
	b.end()

	b.leaf(mp4.BoxTypeStts(), &mp4.Stts{
		EntryCount: 1,
		Entries:    []mp4.SttsEntry{{SampleCount: MP4Frames, SampleDelta: 600 * MP4DurationMS / 1000 / MP4Frames}},
	})
	b.leaf(mp4.BoxTypeStsc(), &mp4.Stsc{
		EntryCount: 1,
		Entries:    []mp4.StscEntry{{FirstChunk: 1, SamplesPerChunk: MP4Frames, SampleDescriptionIndex: 1}},
	})
	b.leaf(mp4.BoxTypeStco(), &mp4.Stco{EntryCount: 1, ChunkOffset: []uint32{0}})

	b.end() // stbl
	b.end() // minf
	b.end() // mdia
	b.end() // trak
}

func (b *boxWriter) mdat() {
	b.t.Helper()
	b.start(mp4.BoxTypeMdat())
	if _, err := b.w.Write(make([]byte, 16)); err != nil {
		b.t.Fatal(err)
	}
	b.end()
}
