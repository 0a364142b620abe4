package models

// MediaType tells what a video file contains. The numeric values are
// persisted in the videos table and must not be renumbered.
type MediaType int

const (
	MediaTypeMovie   MediaType = 0
	MediaTypeEpisode MediaType = 1
	MediaTypeUnknown MediaType = 255
)

// String returns a human readable name for the media type
func (t MediaType) String() string {
	switch t {
	case MediaTypeMovie:
		return "movie"
	case MediaTypeEpisode:
		return "episode"
	default:
		return "unknown"
	}
}

// ParseMediaType maps an API string to a MediaType
func ParseMediaType(s string) (MediaType, bool) {
	switch s {
	case "movie":
		return MediaTypeMovie, true
	case "episode":
		return MediaTypeEpisode, true
	case "unknown":
		return MediaTypeUnknown, true
	}
	return MediaTypeUnknown, false
}
