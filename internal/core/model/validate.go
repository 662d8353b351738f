package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 120
)

var (
	// ErrOutOfRange reports a duration outside [MinDurationMinutes, MaxDurationMinutes].
	ErrOutOfRange = errors.New("out of range")
	// ErrNotANumber reports input that is not an integer.
	ErrNotANumber = errors.New("not a number")
)

// ValidationError describes rejected user input.
type ValidationError struct {
	Field  string
	Input  string
	Reason error
}

func (err *ValidationError) Error() string {
	if err.Field == "" {
		return fmt.Sprintf("invalid duration %q: %v", err.Input, err.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %v", err.Field, err.Input, err.Reason)
}

func (err *ValidationError) Unwrap() error {
	return err.Reason
}

// ValidateDuration parses a whole number of minutes and returns it in seconds.
func ValidateDuration(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	minutes, err := strconv.Atoi(trimmed)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &ValidationError{Input: input, Reason: ErrOutOfRange}
	}
	if err != nil {
		return 0, &ValidationError{Input: input, Reason: ErrNotANumber}
	}
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return 0, &ValidationError{Input: input, Reason: ErrOutOfRange}
	}
	return minutes * 60, nil
}

// ValidDurationSeconds reports whether a stored duration could have come from ValidateDuration.
func ValidDurationSeconds(seconds int) bool {
	return seconds%60 == 0 &&
		seconds >= MinDurationMinutes*60 &&
		seconds <= MaxDurationMinutes*60
}
