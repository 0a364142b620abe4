package utils

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLanguage reduces any language tag or name the media container
// carries ("fre", "fr-FR", "French") to its ISO-639-1 base code. Tags that
// cannot be parsed come back lowercased but otherwise untouched.
func NormalizeLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}
	base, _ := parsed.Base()
	return base.String()
}

// UniqueLanguages normalizes a tag list and drops duplicates and empties,
// preserving first-seen order
func UniqueLanguages(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		norm := NormalizeLanguage(t)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}
