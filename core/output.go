package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/ankit-chaubey/exiftool/core/tags"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Printer handles all display output for the CLI.
type Printer struct {
	w      io.Writer
	colors bool

	info    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	title   *color.Color
}

// NewPrinter creates a Printer writing to w. With colors false every message
// and table is written as plain text; otherwise styling still backs off when
// NO_COLOR is set or stdout is not a terminal.
func NewPrinter(w io.Writer, colors bool) *Printer {
	p := &Printer{
		w:       w,
		colors:  colors,
		info:    color.New(color.FgBlue, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		title:   color.New(color.Bold, color.Italic),
	}
	if !colors {
		for _, c := range []*color.Color{p.info, p.success, p.warn, p.fail, p.title} {
			c.DisableColor()
		}
	}
	return p
}

// Info prints a progress line.
func (p *Printer) Info(format string, a ...any) { p.line(p.info, format, a...) }

// Success prints a completion line.
func (p *Printer) Success(format string, a ...any) { p.line(p.success, format, a...) }

// Warn prints a non-fatal condition.
func (p *Printer) Warn(format string, a ...any) { p.line(p.warn, format, a...) }

// Error prints a failure that was absorbed.
func (p *Printer) Error(format string, a ...any) { p.line(p.fail, format, a...) }

func (p *Printer) line(c *color.Color, format string, a ...any) {
	c.Fprintln(p.w, fmt.Sprintf(format, a...))
}

// PrintFields renders a flat mapping as a Key/Value table.
func (p *Printer) PrintFields(f *Fields, title string) {
	if f.Len() == 0 {
		p.Warn("No %s metadata found.", title)
		return
	}

	t := p.newTable(title, "Key", "Value")
	f.Each(func(k, v string) {
		t.Append([]string{k, v})
	})
	t.Render()
}

// PrintEXIF renders every tag section of a decoded EXIF block as one
// Tag/Value table. Binary and empty sections are reported and skipped, and a
// tag missing from the name table is reported and left out.
func (p *Printer) PrintEXIF(ss Sections) {
	if len(ss) == 0 || ss.AllEmpty() {
		p.Warn("No EXIF metadata found in the file.")
		return
	}

	var rows [][]string
	for _, s := range ss {
		switch {
		case s.Kind == SectionBinary && len(s.Data) > 0:
			p.Warn("%s contains binary data (e.g., thumbnail), skipping...", s.Name)
			continue
		case s.IsEmpty():
			p.Warn("No data for %s", s.Name)
			continue
		}

		for _, tag := range s.Tags {
			name, err := tags.Lookup(s.Name, tag.ID)
			if err != nil {
				if errors.Is(err, tags.ErrUnknownTag) {
					p.Error("Unknown tag: %d", tag.ID)
				} else {
					p.Error("Tag %d: %v", tag.ID, err)
				}
				continue
			}
			rows = append(rows, []string{name, FormatValue(tag.Value)})
		}
	}

	t := p.newTable("EXIF Data", "Tag", "Value")
	t.AppendBulk(rows)
	t.Render()
}

func (p *Printer) newTable(title, keyHeader, valueHeader string) *tablewriter.Table {
	p.title.Fprintln(p.w, title)

	t := tablewriter.NewWriter(p.w)
	t.SetHeader([]string{keyHeader, valueHeader})
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	if p.colors && !color.NoColor {
		t.SetHeaderColor(
			tablewriter.Colors{tablewriter.Bold},
			tablewriter.Colors{tablewriter.Bold},
		)
		t.SetColumnColor(
			tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
			tablewriter.Colors{tablewriter.FgGreenColor},
		)
	}
	return t
}
