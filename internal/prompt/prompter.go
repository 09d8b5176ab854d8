package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned when the input stream ends before a valid value
// was read.
var ErrInputClosed = errors.New("input closed")

// Prompter reads answers line by line from in and writes prompts and
// validation messages to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Line prints label and returns the next input line without its line ending.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
			return strings.TrimRight(line, "\r"), nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Int re-prompts until the answer is an integer in [min, max].
func (p *Prompter) Int(label string, min, max int) (int, error) {
	return ask(p, label, func(raw string) (int, error) {
		return ParseInt(raw, min, max)
	})
}

// PositiveInt re-prompts until the answer is an integer greater than zero.
func (p *Prompter) PositiveInt(label string) (int, error) {
	return ask(p, label, ParsePositiveInt)
}

// Float re-prompts until the answer is a number in [min, max].
func (p *Prompter) Float(label string, min, max float64) (float64, error) {
	return ask(p, label, func(raw string) (float64, error) {
		return ParseFloat(raw, min, max)
	})
}

// NonNegativeFloat re-prompts until the answer is a number >= 0.
func (p *Prompter) NonNegativeFloat(label string) (float64, error) {
	return ask(p, label, ParseNonNegativeFloat)
}

// ask loops until parse accepts a line. Only stream failures end the loop.
func ask[T any](p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			var zero T
			return zero, err
		}

		v, err := parse(raw)
		if err == nil {
			return v, nil
		}

		var verr *ValidationError
		if !errors.As(err, &verr) {
			var zero T
			return zero, err
		}
		fmt.Fprintln(p.out, verr.Message)
	}
}
