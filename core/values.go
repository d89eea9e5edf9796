package core

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// maxBinaryDisplay caps how many bytes of an opaque value are shown.
const maxBinaryDisplay = 64

// String renders the rational as num/den.
func (r Rational) String() string {
	return strconv.FormatInt(r.Num, 10) + "/" + strconv.FormatInt(r.Den, 10)
}

// FormatValue coerces a decoded tag value to display text.
func FormatValue(v any) string {
	switch vt := v.(type) {
	case nil:
		return ""
	case string:
		return vt
	case []byte:
		return formatBytes(vt)
	case int:
		return strconv.Itoa(vt)
	case []int:
		parts := make([]string, len(vt))
		for i, n := range vt {
			parts[i] = strconv.Itoa(n)
		}
		return tuple(parts)
	case float64:
		return strconv.FormatFloat(vt, 'g', -1, 64)
	case []float64:
		parts := make([]string, len(vt))
		for i, n := range vt {
			parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
		}
		return tuple(parts)
	case Rational:
		return vt.String()
	case []Rational:
		parts := make([]string, len(vt))
		for i, r := range vt {
			parts[i] = r.String()
		}
		return tuple(parts)
	default:
		return fmt.Sprint(v)
	}
}

func tuple(parts []string) string {
	return "(" + strings.Join(parts, ", ") + ")"
}

// formatBytes shows printable byte strings as text and anything else as hex.
func formatBytes(b []byte) string {
	trimmed := strings.TrimRight(string(b), "\x00 ")
	if trimmed != "" && isPrintable(trimmed) {
		return trimmed
	}
	if len(b) > maxBinaryDisplay {
		return "0x" + hex.EncodeToString(b[:maxBinaryDisplay]) + fmt.Sprintf("... (%d bytes)", len(b))
	}
	return "0x" + hex.EncodeToString(b)
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
