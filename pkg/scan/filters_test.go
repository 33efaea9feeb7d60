package scan

import (
	"regexp"
	"testing"
)

func TestFiltersMatches(t *testing.T) {
	tests := []struct {
		name    string
		filters *Filters
		file    string
		want    bool
	}{
		{
			name:    "supported extension",
			filters: NewFilters(),
			file:    "photo.jpg",
			want:    true,
		},
		{
			name:    "extension is case-insensitive",
			filters: NewFilters(),
			file:    "photo.JPG",
			want:    true,
		},
		{
			name:    "tiff variant",
			filters: NewFilters(),
			file:    "scan.tiff",
			want:    true,
		},
		{
			name:    "unsupported extension",
			filters: NewFilters(),
			file:    "notes.txt",
			want:    false,
		},
		{
			name:    "no extension",
			filters: NewFilters(),
			file:    "README",
			want:    false,
		},
		{
			name:    "hidden file excluded",
			filters: NewFilters(),
			file:    ".hidden.png",
			want:    false,
		},
		{
			name:    "hidden file included when configured",
			filters: &Filters{IncludeHidden: true},
			file:    ".hidden.png",
			want:    true,
		},
		{
			name:    "nil extensions use defaults",
			filters: &Filters{},
			file:    "a.webp",
			want:    true,
		},
		{
			name: "name regex match",
			filters: &Filters{
				NameRegex: regexp.MustCompile(`^cat_`),
			},
			file: "cat_one.png",
			want: true,
		},
		{
			name: "name regex mismatch",
			filters: &Filters{
				NameRegex: regexp.MustCompile(`^cat_`),
			},
			file: "dog_one.png",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Matches(tt.file); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}
