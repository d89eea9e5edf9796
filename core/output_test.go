package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPrinter() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf, false), &buf
}

// tableRows returns the body lines of a rendered table that mention s.
func tableRows(out, s string) []string {
	var rows []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") && strings.Contains(line, s) {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestPrintFieldsEmpty(t *testing.T) {
	p, buf := newTestPrinter()
	p.PrintFields(NewFields(), "Detailed Metadata (MediaInfo)")
	assert.Equal(t, "No Detailed Metadata (MediaInfo) metadata found.\n", buf.String())
}

func TestPrintFieldsTable(t *testing.T) {
	p, buf := newTestPrinter()
	f := NewFields()
	f.Set("track_type", "Image")
	f.Set("width", "16")

	p.PrintFields(f, "Detailed Metadata (MediaInfo)")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Detailed Metadata (MediaInfo)\n"))
	assert.Len(t, tableRows(out, "Key"), 1)
	assert.Len(t, tableRows(out, "track_type"), 1)
	assert.Len(t, tableRows(out, "width"), 1)
	assert.Less(t, strings.Index(out, "track_type"), strings.Index(out, "width"))
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintEXIFNothing(t *testing.T) {
	for name, ss := range map[string]Sections{
		"nil": nil,
		"all empty": {
			{Name: Section0th, Kind: SectionEmpty},
			{Name: SectionThumbnail, Kind: SectionBinary},
		},
	} {
		t.Run(name, func(t *testing.T) {
			p, buf := newTestPrinter()
			p.PrintEXIF(ss)
			assert.Equal(t, "No EXIF metadata found in the file.\n", buf.String())
		})
	}
}

func TestPrintEXIF(t *testing.T) {
	ss := Sections{
		{Name: Section0th, Kind: SectionTags, Tags: []TagEntry{
			{ID: 0x010F, Value: "Canon"},
			{ID: 0xC0DE, Value: 42},
			{ID: 0x0112, Value: 6},
		}},
		{Name: SectionExif, Kind: SectionTags, Tags: []TagEntry{
			{ID: 0x829A, Value: Rational{Num: 1, Den: 250}},
		}},
		{Name: SectionGPS, Kind: SectionEmpty},
		{Name: SectionThumbnail, Kind: SectionBinary, Data: []byte{0xFF, 0xD8}},
	}

	p, buf := newTestPrinter()
	p.PrintEXIF(ss)
	out := buf.String()

	assert.Contains(t, out, "Unknown tag: 49374\n")
	assert.Contains(t, out, "No data for GPS\n")
	assert.Contains(t, out, "thumbnail contains binary data (e.g., thumbnail), skipping...\n")
	assert.Contains(t, out, "EXIF Data\n")

	assert.Len(t, tableRows(out, "Make"), 1)
	assert.Len(t, tableRows(out, "Canon"), 1)
	assert.Len(t, tableRows(out, "Orientation"), 1)
	assert.Len(t, tableRows(out, "ExposureTime"), 1)
	assert.Len(t, tableRows(out, "1/250"), 1)
	assert.Empty(t, tableRows(out, "42"))
}

func TestPrinterMessages(t *testing.T) {
	p, buf := newTestPrinter()
	p.Info("Extracting metadata for: %s", "a.jpg")
	p.Success("Saved without EXIF data: %s", "output.jpg")
	p.Warn("careful")
	p.Error("broken: %d", 3)

	assert.Equal(t,
		"Extracting metadata for: a.jpg\nSaved without EXIF data: output.jpg\ncareful\nbroken: 3\n",
		buf.String())
}
