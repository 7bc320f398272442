package sector

import (
	"path/filepath"
	"regexp"
	"strings"
)

// UnknownSlug is the bucket for rows with no usable sector value.
const UnknownSlug = "unknown"

// FilePrefix is the filename prefix of per-sector CSV files.
const FilePrefix = "sector_"

const maxSlugLen = 120

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9_\-]`)
)

// Slugify derives a filesystem-safe, lowercase, underscore-separated
// identifier from a sector name. Empty or fully-stripped names map to
// UnknownSlug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRe.ReplaceAllString(s, "_")
	s = invalidRe.ReplaceAllString(s, "")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	if s == "" {
		return UnknownSlug
	}
	return s
}

// Humanize converts a slug back to a human-readable sector name, e.g.
// "bio_tech" -> "bio tech".
func Humanize(slug string) string {
	return strings.TrimSpace(strings.ReplaceAll(slug, "_", " "))
}

// FileName returns the CSV filename for a sector slug.
func FileName(slug string) string {
	return FilePrefix + slug + ".csv"
}

// SlugFromFilename recovers the sector slug from a sector CSV path, e.g.
// "by_sector/sector_bio_tech.csv" -> "bio_tech". Paths without the expected
// prefix yield the bare basename so templates still get a usable value.
func SlugFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimPrefix(base, FilePrefix)
}
