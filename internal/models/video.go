package models

import "time"

// Video is a file discovered in the library. MediaID points into movies or
// episodes depending on MediaType and stays nil until the video is assigned.
type Video struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Path      string    `gorm:"uniqueIndex;not null" json:"path"`
	MediaType MediaType `gorm:"not null" json:"media_type"`
	MediaID   *uint64   `json:"media_id"`
	Duration  float64   `json:"duration"`
	BitRate   float64   `json:"bit_rate"`
	Codec     string    `json:"codec"`
	Width     uint      `json:"width"`
	Height    uint      `json:"height"`
	Size      uint64    `json:"size"`
	Adding    time.Time `gorm:"autoCreateTime" json:"adding"`

	Subtitles []string `gorm:"-" json:"subtitles"`
	Audios    []string `gorm:"-" json:"audios"`
}

func (Video) TableName() string { return "videos" }

// VideoSubtitle is one subtitle language of a video
type VideoSubtitle struct {
	VideoID  uint64 `gorm:"uniqueIndex:idx_video_subtitle;not null"`
	Language string `gorm:"uniqueIndex:idx_video_subtitle;not null"`
}

func (VideoSubtitle) TableName() string { return "video_subtitles" }

// VideoAudio is one audio language of a video
type VideoAudio struct {
	VideoID  uint64 `gorm:"uniqueIndex:idx_video_audio;not null"`
	Language string `gorm:"uniqueIndex:idx_video_audio;not null"`
}

func (VideoAudio) TableName() string { return "video_audios" }

// LastTime is a per-user playback position on a video
type LastTime struct {
	VideoID  uint64 `gorm:"uniqueIndex:idx_last_time;not null" json:"video_id"`
	UserID   uint64 `gorm:"uniqueIndex:idx_last_time;not null" json:"user_id"`
	Position uint64 `json:"position"`
}

func (LastTime) TableName() string { return "last_times" }

// VideoResult is a row of the videos view used by listings. The media title
// columns come from the joined movie or episode row and stay empty for
// unassigned videos.
type VideoResult struct {
	ID            uint64    `json:"id"`
	Path          string    `json:"path"`
	MediaType     MediaType `json:"media_type"`
	MediaID       *uint64   `json:"media_id"`
	Adding        time.Time `json:"adding"`
	MovieTitle    string    `json:"movie_title,omitempty"`
	TvTitle       string    `json:"tv_title,omitempty"`
	ReleaseDate   string    `json:"release_date,omitempty"`
	SeasonNumber  *uint     `json:"season_number,omitempty"`
	EpisodeNumber *uint     `json:"episode_number,omitempty"`
}
