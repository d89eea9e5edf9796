package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Canon", "Canon"},
		{"int", 6, "6"},
		{"tuple", []int{2, 2, 0, 0}, "(2, 2, 0, 0)"},
		{"rational", Rational{Num: 72, Den: 1}, "72/1"},
		{"rationals", []Rational{{1, 2}, {3, 4}}, "(1/2, 3/4)"},
		{"float", 1.5, "1.5"},
		{"floats", []float64{0.25, 2}, "(0.25, 2)"},
		{"printable bytes", []byte("0230"), "0230"},
		{"padded bytes", []byte("ASCII\x00\x00\x00"), "ASCII"},
		{"binary bytes", []byte{0x01, 0x02, 0x03}, "0x010203"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FormatValue(c.in))
		})
	}
}

func TestFormatValueTruncatesLongBinary(t *testing.T) {
	b := make([]byte, 200)
	b[0] = 0x01
	got := FormatValue(b)
	assert.True(t, strings.HasPrefix(got, "0x01"))
	assert.True(t, strings.HasSuffix(got, "... (200 bytes)"))
}
