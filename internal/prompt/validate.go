// Package prompt implements the bounded numeric input used by every program:
// single-attempt validators plus a Prompter that re-asks until a value passes.
package prompt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind classifies why a raw input was rejected.
type Kind int

const (
	NotNumber Kind = iota
	OutOfRange
)

var (
	ErrNotNumber  = errors.New("not a number")
	ErrOutOfRange = errors.New("value out of range")
)

// ValidationError is returned by the Parse* functions. Message is the text
// shown to the user before re-prompting.
type ValidationError struct {
	Kind    Kind
	Input   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers match on ErrNotNumber / ErrOutOfRange.
func (e *ValidationError) Unwrap() error {
	if e.Kind == NotNumber {
		return ErrNotNumber
	}
	return ErrOutOfRange
}

// ParseInt parses raw as a base-10 integer in [min, max].
func ParseInt(raw string, min, max int) (int, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Kind: NotNumber, Input: raw, Message: "Invalid input. Enter a whole number."}
	}
	if v < min || v > max {
		return 0, &ValidationError{
			Kind:    OutOfRange,
			Input:   raw,
			Message: fmt.Sprintf("Enter a value between %d and %d.", min, max),
		}
	}
	return v, nil
}

// ParsePositiveInt parses raw as an integer greater than zero.
func ParsePositiveInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Kind: NotNumber, Input: raw, Message: "Invalid input. Please enter an integer."}
	}
	if v <= 0 {
		return 0, &ValidationError{Kind: OutOfRange, Input: raw, Message: "Error: value must be a positive integer."}
	}
	return v, nil
}

// ParseFloat parses raw as a finite float in [min, max].
func ParseFloat(raw string, min, max float64) (float64, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Kind: NotNumber, Input: raw, Message: "Invalid input. Please enter a number."}
	}
	if v < min || v > max {
		return 0, &ValidationError{
			Kind:    OutOfRange,
			Input:   raw,
			Message: fmt.Sprintf("Error: value must be between %s and %s", formatBound(min), formatBound(max)),
		}
	}
	return v, nil
}

// ParseNonNegativeFloat parses raw as a finite float >= 0.
func ParseNonNegativeFloat(raw string) (float64, error) {
	v, err := ParseFloat(raw, 0, math.MaxFloat64)
	var verr *ValidationError
	if errors.As(err, &verr) && verr.Kind == OutOfRange {
		verr.Message = "Error: value must not be negative."
	}
	return v, err
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
