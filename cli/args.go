package main

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

const usage = "Usage: exiftool <image_path> [--strip] [--output=<output_path>]"

// invocation is a parsed command line.
type invocation struct {
	path   string
	strip  bool
	output string
}

// parseArgs parses the arguments after the program name. Unknown flags are
// ignored and a repeated --output keeps its last value.
func parseArgs(args []string, defaultOut string) (invocation, error) {
	fs := flag.NewFlagSet("exiftool", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var inv invocation
	fs.BoolVar(&inv.strip, "strip", false, "write a copy of the image without EXIF data")
	fs.StringVar(&inv.output, "output", defaultOut, "destination of --strip")

	if err := fs.Parse(knownArgs(fs, args)); err != nil {
		return inv, err
	}
	if fs.NArg() > 0 {
		inv.path = fs.Arg(0)
	}
	return inv, nil
}

// knownArgs drops flags fs does not define, so an unknown flag never consumes
// the positional after it as its value. Help flags are kept for pflag to
// report, and everything from "--" on is passed through.
func knownArgs(fs *flag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		switch {
		case a == "--":
			return append(out, args[i:]...)
		case len(a) < 2 || a[0] != '-':
			out = append(out, a)
		case strings.HasPrefix(a, "--"):
			name, _, _ := strings.Cut(a[2:], "=")
			if name == "help" || fs.Lookup(name) != nil {
				out = append(out, a)
			}
		case a == "-h":
			out = append(out, a)
		}
	}
	return out
}
