package main

import (
	"strconv"

	"github.com/ankit-chaubey/exiftool/core/image"
	"go.uber.org/zap"
)

const defaultOutput = "output.jpg"

// config holds settings read from the environment (and .env files).
type config struct {
	DefaultOutput string // EXIFTOOL_OUTPUT
	Quality       int    // EXIFTOOL_JPEG_QUALITY
	Debug         bool   // EXIFTOOL_DEBUG

	// problems found while reading, logged once a logger exists
	warnings []string
}

func loadConfig(getenv func(string) string) config {
	cfg := config{
		DefaultOutput: defaultOutput,
		Quality:       image.DefaultQuality,
	}

	if v := getenv("EXIFTOOL_OUTPUT"); v != "" {
		cfg.DefaultOutput = v
	}
	if v := getenv("EXIFTOOL_JPEG_QUALITY"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q < 1 || q > 100 {
			cfg.warnings = append(cfg.warnings, "ignoring EXIFTOOL_JPEG_QUALITY="+v)
		} else {
			cfg.Quality = q
		}
	}
	if v := getenv("EXIFTOOL_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			cfg.warnings = append(cfg.warnings, "ignoring EXIFTOOL_DEBUG="+v)
		}
		cfg.Debug = debug
	}
	return cfg
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
