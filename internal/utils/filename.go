package utils

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	yearRegex    = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	episodeRegex = regexp.MustCompile(`(?i)[\._ \-]S(\d{1,2})E(\d{1,2})`)
	junkRegex    = regexp.MustCompile(`(?i)\b(720p|1080p|2160p|4k|x264|x265|h264|h265|hevc|bluray|blu-ray|web-?dl|webrip|hdtv|dvdrip|remux|proper|repack|multi|vostfr|truefrench)\b.*`)
)

// ExtractYear extracts a 4-digit year from a file name.
// Returns 0 if no year is found.
// Matches years like: (2009), 2009, [2009], etc.
func ExtractYear(name string) int {
	matches := yearRegex.FindStringSubmatch(name)
	if len(matches) > 1 {
		year, err := strconv.Atoi(matches[1])
		if err == nil {
			return year
		}
	}
	return 0
}

// ExtractEpisode extracts season and episode numbers from a file name.
// Returns (season, episode, true) on an S01E01 style match.
func ExtractEpisode(name string) (uint, uint, bool) {
	matches := episodeRegex.FindStringSubmatch(name)
	if matches == nil {
		return 0, 0, false
	}
	season, _ := strconv.Atoi(matches[1])
	episode, _ := strconv.Atoi(matches[2])
	return uint(season), uint(episode), true
}

// CleanTitle turns a release-style file name into a searchable title: the
// extension, release tags, the year and the episode marker are stripped and
// separators become spaces.
func CleanTitle(name string) string {
	title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	// Dots and underscores are word characters, so they must become spaces
	// before the boundary-anchored patterns run. Dashes stay until the end
	// or tags like WEB-DL would split apart.
	title = strings.NewReplacer(".", " ", "_", " ", "(", " ", ")", " ", "[", " ", "]", " ").Replace(title)
	title = episodeRegex.ReplaceAllString(title, " ")
	title = junkRegex.ReplaceAllString(title, " ")
	title = yearRegex.ReplaceAllString(title, " ")
	title = strings.ReplaceAll(title, "-", " ")
	return strings.Join(strings.Fields(title), " ")
}
