package main

import (
	"testing"

	"github.com/ankit-chaubey/exiftool/core/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig(noEnv)
	assert.Equal(t, defaultOutput, cfg.DefaultOutput)
	assert.Equal(t, image.DefaultQuality, cfg.Quality)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.warnings)
}

func TestLoadConfigFromEnv(t *testing.T) {
	cfg := loadConfig(envOf(map[string]string{
		"EXIFTOOL_OUTPUT":       "clean.jpg",
		"EXIFTOOL_JPEG_QUALITY": "92",
		"EXIFTOOL_DEBUG":        "true",
	}))
	assert.Equal(t, "clean.jpg", cfg.DefaultOutput)
	assert.Equal(t, 92, cfg.Quality)
	assert.True(t, cfg.Debug)
	assert.Empty(t, cfg.warnings)
}

func TestLoadConfigInvalid(t *testing.T) {
	cfg := loadConfig(envOf(map[string]string{
		"EXIFTOOL_JPEG_QUALITY": "200",
		"EXIFTOOL_DEBUG":        "loud",
	}))
	assert.Equal(t, image.DefaultQuality, cfg.Quality)
	assert.False(t, cfg.Debug)
	assert.Len(t, cfg.warnings, 2)
}

func TestParseArgs(t *testing.T) {
	cases := map[string]struct {
		args []string
		want invocation
	}{
		"path only":        {[]string{"a.jpg"}, invocation{path: "a.jpg", output: "output.jpg"}},
		"strip":            {[]string{"a.jpg", "--strip"}, invocation{path: "a.jpg", strip: true, output: "output.jpg"}},
		"flags first":      {[]string{"--strip", "--output=b.jpg", "a.jpg"}, invocation{path: "a.jpg", strip: true, output: "b.jpg"}},
		"last output wins": {[]string{"a.jpg", "--output=x.jpg", "--output=y.jpg"}, invocation{path: "a.jpg", output: "y.jpg"}},
		"first positional": {[]string{"a.jpg", "b.jpg"}, invocation{path: "a.jpg", output: "output.jpg"}},
		"unknown flag":     {[]string{"a.jpg", "--verbose"}, invocation{path: "a.jpg", output: "output.jpg"}},
		"unknown short":    {[]string{"-v", "a.jpg", "--strip"}, invocation{path: "a.jpg", strip: true, output: "output.jpg"}},
		"unknown long":     {[]string{"--verbose", "a.jpg"}, invocation{path: "a.jpg", output: "output.jpg"}},
		"unknown valued":   {[]string{"--level=3", "a.jpg"}, invocation{path: "a.jpg", output: "output.jpg"}},
		"output spaced":    {[]string{"-q", "--output", "b.jpg", "a.jpg"}, invocation{path: "a.jpg", output: "b.jpg"}},
		"after dashes":     {[]string{"--strip", "--", "-odd.jpg"}, invocation{path: "-odd.jpg", strip: true, output: "output.jpg"}},
		"empty":            {nil, invocation{output: "output.jpg"}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := parseArgs(c.args, defaultOutput)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"-h", "a.jpg"}, {"-v", "--help"}} {
		_, err := parseArgs(args, defaultOutput)
		assert.Error(t, err, args)
	}
}

func TestParseArgsDefaultOutputFromConfig(t *testing.T) {
	got, err := parseArgs([]string{"a.jpg", "--strip"}, "clean.jpg")
	require.NoError(t, err)
	assert.Equal(t, "clean.jpg", got.output)
}
