package store

import (
	"errors"
	"fmt"

	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tvViewRow struct {
	ID               uint64
	Title            string
	OriginalTitle    string
	OriginalLanguage string
	ReleaseDate      string
	Overview         string
	Popularity       float64
	PosterPath       string
	BackdropPath     string
	VoteAverage      float64
	VoteCount        int64
	Status           string
	NumberOfEpisodes uint
	NumberOfSeasons  uint
	Genres           *string
	Adding           *string
}

// CreateTv stores a fetched tv document in one transaction: the show row,
// every season the provider lists, genres, and cast and crew credits. The
// returned image paths cover the show artwork plus every season poster.
//
// An already known show is a no-op returning empty slices and no error.
func (s *Store) CreateTv(doc *tmdb.Tv) ([]uint64, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var personIDs []uint64
	var images []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var runTime uint
		if len(doc.EpisodeRunTime) > 0 {
			runTime = doc.EpisodeRunTime[0]
		}
		tv := models.Tv{
			ID:               doc.ID,
			OriginalTitle:    doc.OriginalName,
			OriginalLanguage: doc.OriginalLanguage,
			Title:            doc.Name,
			ReleaseDate:      doc.FirstAirDate,
			Overview:         doc.Overview,
			Popularity:       doc.Popularity,
			PosterPath:       doc.PosterPath,
			BackdropPath:     doc.BackdropPath,
			VoteAverage:      doc.VoteAverage,
			VoteCount:        doc.VoteCount,
			Status:           doc.Status,
			InProduction:     doc.InProduction,
			NumberOfEpisodes: doc.NumberOfEpisodes,
			NumberOfSeasons:  doc.NumberOfSeasons,
			EpisodeRunTime:   runTime,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tv)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyPresent
		}

		if doc.PosterPath != "" {
			images = append(images, doc.PosterPath)
		}
		if doc.BackdropPath != "" {
			images = append(images, doc.BackdropPath)
		}

		for _, se := range doc.Seasons {
			season := models.Season{
				ID:           se.ID,
				TvID:         doc.ID,
				SeasonNumber: se.SeasonNumber,
				EpisodeCount: se.EpisodeCount,
				Title:        se.Name,
				Overview:     se.Overview,
				PosterPath:   se.PosterPath,
				ReleaseDate:  se.AirDate,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&season).Error; err != nil {
				return err
			}
			if se.PosterPath != "" {
				images = append(images, se.PosterPath)
			}
		}

		for _, g := range doc.Genres {
			genre := models.TvGenre{ID: g.ID, Name: g.Name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&genre).Error; err != nil {
				return err
			}
			link := models.TvGenreLink{TvID: doc.ID, GenreID: g.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		seen := make(map[uint64]bool)
		for _, c := range doc.Credits.Cast {
			if int(c.Order) >= s.castLimit {
				continue
			}
			cast := models.TvCast{
				TvID:      doc.ID,
				PersonID:  c.ID,
				Character: c.Character,
				Ord:       c.Order,
			}
			if err := tx.Create(&cast).Error; err != nil {
				return err
			}
			if !seen[c.ID] {
				seen[c.ID] = true
				personIDs = append(personIDs, c.ID)
			}
		}

		for _, c := range doc.Credits.Crew {
			crew := models.TvCrew{
				TvID:       doc.ID,
				PersonID:   c.ID,
				Job:        c.Job,
				Department: c.Department,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&crew).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, errAlreadyPresent) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tv %d: %w", doc.ID, err)
	}
	return personIDs, images, nil
}

// CreateEpisode stores a fetched episode document under an already ingested
// tv show. The season row must exist; if the provider lists an episode for a
// season it never announced on the show document, ErrSeasonNotFound is
// returned and nothing is written.
func (s *Store) CreateEpisode(tvID uint64, doc *tmdb.Episode) ([]uint64, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var season models.Season
	err := s.db.Where("tv_id = ? AND season_number = ?", tvID, doc.SeasonNumber).
		First(&season).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("season %d of tv %d: %w", doc.SeasonNumber, tvID, ErrSeasonNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up season %d of tv %d: %w", doc.SeasonNumber, tvID, err)
	}

	var personIDs []uint64
	var images []string

	err = s.db.Transaction(func(tx *gorm.DB) error {
		episode := models.Episode{
			ID:            doc.ID,
			SeasonID:      season.ID,
			TvID:          tvID,
			SeasonNumber:  doc.SeasonNumber,
			EpisodeNumber: doc.EpisodeNumber,
			ReleaseDate:   doc.AirDate,
			Title:         doc.Name,
			Overview:      doc.Overview,
			VoteAverage:   doc.VoteAverage,
			VoteCount:     doc.VoteCount,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&episode)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyPresent
		}

		if doc.StillPath != "" {
			images = append(images, doc.StillPath)
		}

		seen := make(map[uint64]bool)
		for _, c := range doc.Credits.Cast {
			if int(c.Order) >= s.castLimit {
				continue
			}
			cast := models.EpisodeCast{
				EpisodeID: doc.ID,
				PersonID:  c.ID,
				Character: c.Character,
				Ord:       c.Order,
			}
			if err := tx.Create(&cast).Error; err != nil {
				return err
			}
			if !seen[c.ID] {
				seen[c.ID] = true
				personIDs = append(personIDs, c.ID)
			}
		}
		return nil
	})
	if errors.Is(err, errAlreadyPresent) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create episode %d: %w", doc.ID, err)
	}
	return personIDs, images, nil
}

// TvExists reports whether the tv show is already in the catalog
func (s *Store) TvExists(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	err := s.db.Model(&models.Tv{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check tv %d: %w", id, err)
	}
	return count > 0, nil
}

// EpisodeID resolves a (tv, season, episode) triple to the episode's
// provider ID
func (s *Store) EpisodeID(tvID uint64, season, episode uint) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ep models.Episode
	err := s.db.Select("id").
		Where("tv_id = ? AND season_number = ? AND episode_number = ?", tvID, season, episode).
		First(&ep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get episode %dx%d of tv %d: %w", season, episode, tvID, err)
	}
	return ep.ID, nil
}

// Tv loads one tv show with genres, credits and its season list
func (s *Store) Tv(id uint64) (*models.TvDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tv models.Tv
	err := s.db.Where("id = ?", id).First(&tv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tv %d: %w", id, err)
	}

	detail := models.TvDetail{Tv: tv}

	var genres *string
	err = s.db.Raw(`SELECT GROUP_CONCAT(g.name) FROM tv_genre_links l
		JOIN tv_genres g ON g.id = l.genre_id WHERE l.tv_id = ?`, id).Scan(&genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get genres for tv %d: %w", id, err)
	}
	detail.Genres = SplitConcat(deref(genres))

	err = s.db.Where("tv_id = ?", id).Order("season_number").Find(&detail.Seasons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get seasons for tv %d: %w", id, err)
	}

	err = s.db.Raw(`SELECT c.person_id, p.name, c.character, c.ord, p.profile_path
		FROM tv_casts c LEFT JOIN persons p ON p.id = c.person_id
		WHERE c.tv_id = ? ORDER BY c.ord`, id).Scan(&detail.Cast).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cast for tv %d: %w", id, err)
	}

	err = s.db.Raw(`SELECT c.person_id, p.name, c.job, c.department, p.profile_path
		FROM tv_crews c LEFT JOIN persons p ON p.id = c.person_id
		WHERE c.tv_id = ?`, id).Scan(&detail.Crew).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get crew for tv %d: %w", id, err)
	}
	return &detail, nil
}

// Tvs lists tv shows matching the filter
func (s *Store) Tvs(f *TvFilter) ([]models.TvResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == nil {
		f = NewTvFilter()
	}
	where, args, err := f.f.build()
	if err != nil {
		return nil, err
	}

	sql := `SELECT id, title, release_date, poster_path, vote_average,
		genres, adding FROM tvs_view`
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " GROUP BY id"

	var rows []tvViewRow
	if err := s.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tvs: %w", err)
	}

	results := make([]models.TvResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.TvResult{
			ID:          row.ID,
			Title:       row.Title,
			ReleaseDate: row.ReleaseDate,
			PosterPath:  row.PosterPath,
			VoteAverage: row.VoteAverage,
			Genres:      SplitConcat(deref(row.Genres)),
			Adding:      deref(row.Adding),
		})
	}
	return results, nil
}

// Episode loads one episode with its cast
func (s *Store) Episode(id uint64) (*models.EpisodeDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ep models.Episode
	err := s.db.Where("id = ?", id).First(&ep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get episode %d: %w", id, err)
	}

	detail := models.EpisodeDetail{Episode: ep}
	err = s.db.Raw(`SELECT c.person_id, p.name, c.character, c.ord, p.profile_path
		FROM episode_casts c LEFT JOIN persons p ON p.id = c.person_id
		WHERE c.episode_id = ? ORDER BY c.ord`, id).Scan(&detail.Cast).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cast for episode %d: %w", id, err)
	}
	return &detail, nil
}

// Episodes lists the stored episodes of one season of a tv show
func (s *Store) Episodes(tvID uint64, season uint) ([]models.Episode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var eps []models.Episode
	err := s.db.Where("tv_id = ? AND season_number = ?", tvID, season).
		Order("episode_number").Find(&eps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes of tv %d: %w", tvID, err)
	}
	return eps, nil
}
