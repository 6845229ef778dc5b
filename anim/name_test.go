package anim

import (
	"errors"
	"testing"
)

func TestStripExtension(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain name", "globe_data", "globe_data", false},
		{"with extension", "globe_data.gif", "globe_data", false},
		{"png extension", "frames.png", "frames", false},
		// The strip rule is positional: any dot in a name longer than
		// four bytes drops the last four, wherever the dot sits.
		{"embedded dot", "globe.v2", "glob", false},
		{"extension only", ".gif", "", true},
		{"single dot", ".", "", true},
		{"short with dot", "a.b", "", true},
		{"four bytes with dot", "a.gz", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripExtension(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidName) {
					t.Errorf("err = %v, want ErrInvalidName", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
