package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/amaumene/gomediadex/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type videoViewRow struct {
	ID            uint64
	Path          string
	MediaType     int
	MediaID       *uint64
	Duration      float64
	BitRate       float64
	Codec         string
	Width         uint
	Height        uint
	Size          uint64
	Adding        time.Time
	Subtitles     *string
	Audios        *string
	MTitle        *string
	TTitle        *string
	ReleaseDate   *string
	SeasonNumber  *uint
	EpisodeNumber *uint
}

// CreateVideo registers a newly discovered file together with its subtitle
// and audio language rows, in one transaction. The path must be unique; a
// second registration of the same path is a hard error.
func (s *Store) CreateVideo(v *models.Video) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(v).Error; err != nil {
			return err
		}
		for _, lang := range v.Subtitles {
			sub := models.VideoSubtitle{VideoID: v.ID, Language: lang}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
				return err
			}
		}
		for _, lang := range v.Audios {
			aud := models.VideoAudio{VideoID: v.ID, Language: lang}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&aud).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create video %s: %w", v.Path, err)
	}
	return v.ID, nil
}

// VideoID resolves a library path to its video ID
func (s *Store) VideoID(path string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v models.Video
	err := s.db.Select("id").Where("path = ?", path).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get video id for %s: %w", path, err)
	}
	return v.ID, nil
}

// Video loads one video with its language sets
func (s *Store) Video(id uint64) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row videoViewRow
	res := s.db.Raw(`SELECT id, path, media_type, media_id, duration, bit_rate, codec,
		width, height, size, adding, subtitles, audios
		FROM videos_view WHERE id = ?`, id).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get video %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &models.Video{
		ID:        row.ID,
		Path:      row.Path,
		MediaType: models.MediaType(row.MediaType),
		MediaID:   row.MediaID,
		Duration:  row.Duration,
		BitRate:   row.BitRate,
		Codec:     row.Codec,
		Width:     row.Width,
		Height:    row.Height,
		Size:      row.Size,
		Adding:    row.Adding,
		Subtitles: SplitConcat(deref(row.Subtitles)),
		Audios:    SplitConcat(deref(row.Audios)),
	}, nil
}

// Videos lists videos matching the filter. A nil or empty filter lists
// everything.
func (s *Store) Videos(f *VideoFilter) ([]models.VideoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == nil {
		f = NewVideoFilter()
	}
	where, args, err := f.f.build()
	if err != nil {
		return nil, err
	}

	sql := `SELECT id, path, media_type, media_id, adding, m_title, t_title,
		release_date, season_number, episode_number FROM videos_view`
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " GROUP BY id"

	var rows []videoViewRow
	if err := s.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	results := make([]models.VideoResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.VideoResult{
			ID:            row.ID,
			Path:          row.Path,
			MediaType:     models.MediaType(row.MediaType),
			MediaID:       row.MediaID,
			Adding:        row.Adding,
			MovieTitle:    deref(row.MTitle),
			TvTitle:       deref(row.TTitle),
			ReleaseDate:   deref(row.ReleaseDate),
			SeasonNumber:  row.SeasonNumber,
			EpisodeNumber: row.EpisodeNumber,
		})
	}
	return results, nil
}

// VideoMediaType reports the declared media type of a video. The second
// return value is false when the video does not exist.
func (s *Store) VideoMediaType(id uint64) (models.MediaType, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v models.Video
	err := s.db.Select("media_type").Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MediaTypeUnknown, false, nil
	}
	if err != nil {
		return models.MediaTypeUnknown, false, fmt.Errorf("failed to get media type for video %d: %w", id, err)
	}
	return v.MediaType, true, nil
}

// SetVideoMediaID points a video at its movie or episode row
func (s *Store) SetVideoMediaID(videoID, mediaID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Model(&models.Video{}).Where("id = ?", videoID).
		Update("media_id", mediaID).Error
	if err != nil {
		return fmt.Errorf("failed to set media id on video %d: %w", videoID, err)
	}
	return nil
}

// SetVideoPath records that a library file moved
func (s *Store) SetVideoPath(videoID uint64, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Model(&models.Video{}).Where("id = ?", videoID).
		Update("path", path).Error
	if err != nil {
		return fmt.Errorf("failed to set path on video %d: %w", videoID, err)
	}
	return nil
}

// SetLastTime stores a playback position, replacing any previous one for
// the same (video, user) pair
func (s *Store) SetLastTime(videoID, userID, position uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lt := models.LastTime{VideoID: videoID, UserID: userID, Position: position}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position"}),
	}).Create(&lt).Error
	if err != nil {
		return fmt.Errorf("failed to set last time on video %d: %w", videoID, err)
	}
	return nil
}

// GetLastTime returns the stored playback position for a (video, user) pair
func (s *Store) GetLastTime(videoID, userID uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lt models.LastTime
	err := s.db.Where("video_id = ? AND user_id = ?", videoID, userID).First(&lt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get last time on video %d: %w", videoID, err)
	}
	return lt.Position, nil
}
