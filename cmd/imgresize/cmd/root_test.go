package cmd

import (
	"testing"
)

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		prefix  string
		quality int
		format  string
		wantErr bool
	}{
		{
			name:    "defaults",
			percent: 50,
			prefix:  "resized_",
			quality: 95,
			format:  "table",
			wantErr: false,
		},
		{
			name:    "fractional percent",
			percent: 12.5,
			prefix:  "resized_",
			quality: 95,
			format:  "json",
			wantErr: false,
		},
		{
			name:    "zero percent",
			percent: 0,
			prefix:  "resized_",
			quality: 95,
			format:  "table",
			wantErr: true,
		},
		{
			name:    "negative percent",
			percent: -10,
			prefix:  "resized_",
			quality: 95,
			format:  "table",
			wantErr: true,
		},
		{
			name:    "empty prefix",
			percent: 50,
			prefix:  "",
			quality: 95,
			format:  "table",
			wantErr: true,
		},
		{
			name:    "quality too low",
			percent: 50,
			prefix:  "resized_",
			quality: 0,
			format:  "table",
			wantErr: true,
		},
		{
			name:    "quality too high",
			percent: 50,
			prefix:  "resized_",
			quality: 101,
			format:  "table",
			wantErr: true,
		},
		{
			name:    "unknown format",
			percent: 50,
			prefix:  "resized_",
			quality: 95,
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.percent, tt.prefix, tt.quality, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("got error %v, want error %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		regex     string
		wantErr   bool
		wantMatch string
		wantSkip  string
	}{
		{
			name:      "empty regex keeps defaults",
			regex:     "",
			wantMatch: "photo.jpg",
			wantSkip:  "notes.txt",
		},
		{
			name:      "valid regex narrows matches",
			regex:     `^cat_`,
			wantMatch: "cat_1.png",
			wantSkip:  "dog_1.png",
		},
		{
			name:    "invalid regex",
			regex:   "[unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, err := buildFilters(tt.regex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !filters.Matches(tt.wantMatch) {
				t.Errorf("expected %q to match", tt.wantMatch)
			}
			if filters.Matches(tt.wantSkip) {
				t.Errorf("expected %q to be skipped", tt.wantSkip)
			}
		})
	}
}
