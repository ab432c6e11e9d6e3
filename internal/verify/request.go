package verify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMinutes is returned for time input that is not a whole,
// non-negative number of minutes.
var ErrInvalidMinutes = errors.New("time spent must be a whole number of minutes")

// SubmissionRequest is a single claim that a problem was solved. It is built
// fresh for every attempt and discarded once the outcome is known.
type SubmissionRequest struct {
	ProblemID        string
	TimeSpentMinutes int // 0 means unspecified
}

// ParseMinutes normalizes the optional time input. Blank input is 0.
func ParseMinutes(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMinutes, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMinutes, n)
	}
	return n, nil
}
