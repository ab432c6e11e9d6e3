package backend

import "testing"

func TestValidateDaily(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"full", `{"id":"1A","name":"Theatre Square","rating":1000,"tags":["math"]}`, false},
		{"problem_id only", `{"problem_id":"1A"}`, false},
		{"null tags", `{"id":"1A","tags":null}`, false},
		{"empty id", `{"id":""}`, true},
		{"no id", `{"name":"x"}`, true},
		{"negative rating", `{"id":"1A","rating":-1}`, true},
		{"string rating", `{"id":"1A","rating":"800"}`, true},
		{"non-string tag", `{"id":"1A","tags":[1]}`, true},
		{"array", `[]`, true},
		{"truncated", `{"id":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDaily([]byte(tt.raw))
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}
