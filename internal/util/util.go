// Package util provides common formatting helpers shared by the programs.
package util

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatFloat renders f the way a calculator readout shows it: whole numbers
// keep one decimal ("10.0"), other values use the shortest exact form, and
// magnitudes of 1e16 and up or below 1e-4 switch to exponent form
// ("1.884955592153876e+24").
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f != 0 {
		e := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(e[strings.LastIndexByte(e, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return e
		}
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SanitizeFileName replaces characters that are awkward in file names.
func SanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, `\`, "_")
	return s
}

// ExportFileName builds "<name>_<yyyymmdd_hhmmss>.json[.gz]".
func ExportFileName(name string, at time.Time, compressed bool) string {
	base := SanitizeFileName(name) + "_" + at.Format("20060102_150405") + ".json"
	if compressed {
		return base + ".gz"
	}
	return base
}
