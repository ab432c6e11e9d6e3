package verify

import (
	"errors"
	"testing"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"0", 0, false},
		{"25", 25, false},
		{" 42 ", 42, false},
		{"100000", 100000, false},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMinutes(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMinutes) {
					t.Fatalf("expected ErrInvalidMinutes, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
