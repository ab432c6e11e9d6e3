package verify

import (
	"fmt"
	"regexp"
	"strings"
)

const problemsetURL = "https://codeforces.com/problemset/problem"

// idPattern splits a judge identifier into contest number and index.
var idPattern = regexp.MustCompile(`^(\d+)(.+)$`)

// Problem is a practice problem selected by the backend or named by the user.
// A Problem is immutable; the next acquisition replaces it wholesale.
type Problem struct {
	ID     string
	Name   string
	Rating int
	Tags   []string
	Link   string
}

// NewProblem builds a Problem and derives its solve link.
func NewProblem(id, name string, rating int, tags []string) *Problem {
	return &Problem{
		ID:     id,
		Name:   name,
		Rating: rating,
		Tags:   append([]string(nil), tags...),
		Link:   SolveLink(id),
	}
}

// SolveLink returns the judge URL for a problem identifier. Identifiers of the
// form "<contest><index>" map to /{contest}/{index}; anything else falls back
// to a single path segment.
func SolveLink(id string) string {
	if m := idPattern.FindStringSubmatch(id); m != nil {
		return fmt.Sprintf("%s/%s/%s", problemsetURL, m[1], m[2])
	}
	return fmt.Sprintf("%s/%s", problemsetURL, id)
}

// NormalizeID trims and upper-cases a user-typed identifier.
func NormalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Band is the display color class for a difficulty rating.
type Band string

const (
	BandGreen Band = "green"
	BandCyan  Band = "cyan"
	BandBlue  Band = "blue"
	BandRed   Band = "red"
)

// RatingBand maps a rating to its display band.
func RatingBand(rating int) Band {
	switch {
	case rating >= 2000:
		return BandRed
	case rating >= 1600:
		return BandBlue
	case rating >= 1200:
		return BandCyan
	default:
		return BandGreen
	}
}
