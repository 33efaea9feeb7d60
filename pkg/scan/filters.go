package scan

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExtensions is the allowlist of image filename extensions
// (lowercase, with dot) considered during directory scans. Explicit file
// arguments bypass the allowlist entirely.
var DefaultExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Filters holds the criteria a directory entry must pass to become a
// resize target.
//
// All filters are combined with AND logic: an entry must pass every
// active criterion to be included. They apply only to files discovered
// inside directory arguments, never to explicitly named files.
type Filters struct {
	// Extensions maps lowercase extensions (with dot) to inclusion.
	// Nil means DefaultExtensions.
	Extensions map[string]bool

	// NameRegex optionally restricts matches by base filename.
	NameRegex *regexp.Regexp

	// IncludeHidden includes dot-prefixed files, which are skipped by
	// default.
	IncludeHidden bool
}

// NewFilters returns Filters with the default extension allowlist.
func NewFilters() *Filters {
	return &Filters{Extensions: DefaultExtensions}
}

// Matches checks whether a base filename passes all active filters.
func (f *Filters) Matches(name string) bool {
	if !f.IncludeHidden && strings.HasPrefix(name, ".") {
		return false
	}

	exts := f.Extensions
	if exts == nil {
		exts = DefaultExtensions
	}
	if !exts[strings.ToLower(filepath.Ext(name))] {
		return false
	}

	if f.NameRegex != nil && !f.NameRegex.MatchString(name) {
		return false
	}

	return true
}
