// Package util provides general-purpose helpers, including upload-name
// sanitization with Unicode normalization.
package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// unsafeChars matches characters outside the safe upload-name set.
	unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)
	// multipleHyphens matches runs of consecutive hyphens.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// SanitizeUploadName converts an original filename into a safe storage name:
// path components are stripped, accents are decomposed and removed, spaces
// become hyphens, and anything outside [a-z0-9._-] is dropped. A file with
// no usable name or extension gets a .bin extension.
func SanitizeUploadName(filename string) string {
	filename = filepath.Base(filename)

	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, filename)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = unsafeChars.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-.")

	if result == "" {
		result = "upload.bin"
	}
	if filepath.Ext(result) == "" {
		result += ".bin"
	}

	return result
}
