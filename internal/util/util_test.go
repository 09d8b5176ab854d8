package util

import (
	"testing"
	"time"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"zero", 0, "0.0"},
		{"whole number", 10, "10.0"},
		{"negative whole", -3, "-3.0"},
		{"fraction", 2.5, "2.5"},
		{"long fraction", 1234.5678, "1234.5678"},
		{"small fraction", 0.125, "0.125"},
		{"largest fixed whole", 9999999999999998, "9999999999999998.0"},
		{"exponent from 1e16", 1e16, "1e+16"},
		{"large turbine output", 1.884955592153876e24, "1.884955592153876e+24"},
		{"large negative", -2.5e20, "-2.5e+20"},
		{"smallest fixed fraction", 0.0001, "0.0001"},
		{"tiny fraction", 0.00001, "1e-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatFloat(tt.input)
			if result != tt.expected {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain", "tomato", "tomato"},
		{"spaces", "sweet corn", "sweet_corn"},
		{"colons and slashes", "a:b/c\\d", "a_b_c_d"},
		{"trimmed", "  kale ", "kale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeFileName(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 30, 5, 0, time.UTC)

	if got := ExportFileName("population", at, true); got != "population_20250601_093005.json.gz" {
		t.Errorf("compressed: got %q", got)
	}
	if got := ExportFileName("sweet corn", at, false); got != "sweet_corn_20250601_093005.json" {
		t.Errorf("uncompressed: got %q", got)
	}
}
