package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveLink(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"1500A", "https://codeforces.com/problemset/problem/1500/A"},
		{"158B", "https://codeforces.com/problemset/problem/158/B"},
		{"1790F2", "https://codeforces.com/problemset/problem/1790/F2"},
		{"4A1", "https://codeforces.com/problemset/problem/4/A1"},
		{"ABC", "https://codeforces.com/problemset/problem/ABC"},
		// Backtracking splits an all-digit id on its last digit.
		{"1500", "https://codeforces.com/problemset/problem/150/0"},
		{"A1", "https://codeforces.com/problemset/problem/A1"},
		{"", "https://codeforces.com/problemset/problem/"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, SolveLink(tt.id))
		})
	}
}

func TestNewProblem(t *testing.T) {
	tags := []string{"math"}
	p := NewProblem("1500A", "Test", 1500, tags)

	assert.Equal(t, "https://codeforces.com/problemset/problem/1500/A", p.Link)
	assert.Equal(t, 1500, p.Rating)

	tags[0] = "changed"
	assert.Equal(t, []string{"math"}, p.Tags, "tags must be copied")
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "1500A", NormalizeID("  1500a \n"))
	assert.Equal(t, "", NormalizeID("   "))
}

func TestRatingBand(t *testing.T) {
	tests := []struct {
		rating int
		want   Band
	}{
		{0, BandGreen},
		{1199, BandGreen},
		{1200, BandCyan},
		{1599, BandCyan},
		{1600, BandBlue},
		{1999, BandBlue},
		{2000, BandRed},
		{3500, BandRed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingBand(tt.rating), "rating %d", tt.rating)
	}
}
