package fixture

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// Values stored in the ID3v2 tag built by MP3.
const (
	MP3Title   = "Evening"
	MP3Artist  = "Someone Else"
	MP3Encoder = "LAME3.100"
)

// MP3 returns an ID3v2.4 tag with title, artist and encoder frames followed
// by a single silent MPEG-1 Layer III frame.
func MP3(t testing.TB) []byte {
	t.Helper()
	tag := id3v2.NewEmptyTag()
	tag.SetTitle(MP3Title)
	tag.SetArtist(MP3Artist)
	tag.AddTextFrame("TSSE", tag.DefaultEncoding(), MP3Encoder)

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	// 128 kbit/s, 44.1 kHz, no padding: 417 bytes
	frame := make([]byte, 417)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
	buf.Write(frame)
	return buf.Bytes()
}
