package beam

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InvalidInputMessage is the single user-facing message for every rejected input.
const InvalidInputMessage = "Invalid input! Ensure L > 0, P > 0, and 0 ≤ a ≤ L."

// ErrInvalidInput is matched by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// InputError records which input was rejected. The cause is kept for logs only;
// Error always returns InvalidInputMessage.
type InputError struct {
	Field string // "length", "load" or "position"
	Text  string // raw text when the value came from text input
	Err   error
}

func (e *InputError) Error() string {
	return InvalidInputMessage
}

// Cause describes the underlying reason for diagnostics.
func (e *InputError) Cause() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s=%q: %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("%s=%q", e.Field, e.Text)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Input describes a simply supported beam with a single point load
type Input struct {
	L float64 // Span between supports (m)
	P float64 // Point load magnitude (N)
	A float64 // Load position measured from the left support (m)
}

// Validate checks L > 0, P > 0 and 0 ≤ a ≤ L
func (s Input) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"length", s.L},
		{"load", s.P},
		{"position", s.A},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InputError{Field: f.name, Text: formatValue(f.value), Err: errors.New("not a finite number")}
		}
	}

	switch {
	case s.L <= 0:
		return &InputError{Field: "length", Text: formatValue(s.L), Err: errors.New("must be greater than zero")}
	case s.P <= 0:
		return &InputError{Field: "load", Text: formatValue(s.P), Err: errors.New("must be greater than zero")}
	case s.A < 0:
		return &InputError{Field: "position", Text: formatValue(s.A), Err: errors.New("must not be negative")}
	case s.A > s.L:
		return &InputError{Field: "position", Text: formatValue(s.A), Err: errors.New("must not exceed the span")}
	}
	return nil
}

// ParseInput parses the three raw text inputs and validates the result.
func ParseInput(lengthText, loadText, positionText string) (Input, error) {
	l, err := parseNumber("length", lengthText)
	if err != nil {
		return Input{}, err
	}
	p, err := parseNumber("load", loadText)
	if err != nil {
		return Input{}, err
	}
	a, err := parseNumber("position", positionText)
	if err != nil {
		return Input{}, err
	}

	s := Input{L: l, P: p, A: a}
	if err := s.Validate(); err != nil {
		return Input{}, err
	}
	return s, nil
}

func parseNumber(field, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, &InputError{Field: field, Text: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputError{Field: field, Text: text, Err: errors.New("not a finite number")}
	}
	return v, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
