package main

import (
	"errors"
	"os"

	"github.com/ankit-chaubey/exiftool/core"
	"github.com/ankit-chaubey/exiftool/core/audio"
	"github.com/ankit-chaubey/exiftool/core/image"
	"github.com/ankit-chaubey/exiftool/core/media"
	"github.com/ankit-chaubey/exiftool/core/video"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const mediaTitle = "Detailed Metadata (MediaInfo)"

func main() {
	envErr := godotenv.Load(".env", ".env.local")
	cfg := loadConfig(os.Getenv)

	log := newLogger(cfg.Debug)
	defer log.Sync()
	if envErr != nil {
		log.Debug("env files not loaded", zap.Error(envErr))
	}
	for _, w := range cfg.warnings {
		log.Warn(w)
	}

	newApp(cfg, log, core.NewPrinter(os.Stdout, true)).run(os.Args[1:])
}

type app struct {
	cfg    config
	log    *zap.Logger
	out    *core.Printer
	images *image.Handler
	media  *media.Reader
}

func newApp(cfg config, log *zap.Logger, out *core.Printer) *app {
	images := image.New(log, cfg.Quality)
	return &app{
		cfg:    cfg,
		log:    log,
		out:    out,
		images: images,
		media:  media.New(log, audio.New(log), video.New(log), images),
	}
}

// run executes one invocation. Every failure is reported on the printer and
// run always returns normally.
func (a *app) run(args []string) {
	inv, err := parseArgs(args, a.cfg.DefaultOutput)
	if err != nil {
		a.log.Debug("argument parsing failed", zap.Error(err))
		a.out.Error(usage)
		return
	}
	if inv.path == "" {
		a.out.Error(usage)
		return
	}
	if _, err := os.Stat(inv.path); err != nil {
		a.out.Error("File does not exist.")
		return
	}

	if inv.strip {
		a.strip(inv.path, inv.output)
		return
	}

	a.out.Info("Extracting metadata for: %s", inv.path)

	if sections := a.readEXIF(inv.path); sections != nil {
		a.out.PrintEXIF(sections)
	}

	fields, err := a.media.Read(inv.path)
	if err != nil {
		a.out.Error("Error extracting container metadata: %v", err)
	}
	if fields.Len() > 0 {
		a.out.PrintFields(fields, mediaTitle)
	}
}

func (a *app) strip(src, dst string) {
	if err := a.images.Strip(src, dst); err != nil {
		a.out.Error("Error removing EXIF data: %v", err)
		return
	}
	a.out.Success("Saved without EXIF data: %s", dst)
}

// readEXIF reports why no sections are available, if so, and returns nil.
func (a *app) readEXIF(path string) core.Sections {
	sections, err := a.images.ReadEXIF(path)
	if err == nil {
		return sections
	}

	var unsupported *image.UnsupportedFormatError
	switch {
	case errors.As(err, &unsupported):
		a.out.Warn("%s.", unsupported.Error())
	case errors.Is(err, image.ErrNoEXIF):
		a.out.Warn("No EXIF data found in the file.")
	default:
		a.out.Error("Error reading EXIF data: %v", err)
	}
	return nil
}
