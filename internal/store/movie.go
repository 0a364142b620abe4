package store

import (
	"errors"
	"fmt"

	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type movieViewRow struct {
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
	Tagline          string
	Status           string
	Adult            bool
	Genres           *string
	Videos           *string
	Adding           *string
}

// CreateMovie stores a fetched movie document in one transaction: the movie
// row, its genre dictionary entries and links, and cast and crew credits.
// It returns the distinct person IDs credited as cast within the billing
// cutoff, plus the image paths the caller should fetch.
//
// If the movie already exists the call is a no-op returning empty slices and
// no error, so two concurrent ingestions of the same title cannot fail each
// other.
func (s *Store) CreateMovie(doc *tmdb.Movie) ([]uint64, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var personIDs []uint64
	var images []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		movie := models.Movie{
			ID:               doc.ID,
			OriginalTitle:    doc.OriginalTitle,
			OriginalLanguage: doc.OriginalLanguage,
			Title:            doc.Title,
			ReleaseDate:      doc.ReleaseDate,
			Overview:         doc.Overview,
			Popularity:       doc.Popularity,
			PosterPath:       doc.PosterPath,
			BackdropPath:     doc.BackdropPath,
			VoteAverage:      doc.VoteAverage,
			VoteCount:        doc.VoteCount,
			Tagline:          doc.Tagline,
			Status:           doc.Status,
			Adult:            doc.Adult,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&movie)
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

		for _, g := range doc.Genres {
			genre := models.MovieGenre{ID: g.ID, Name: g.Name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&genre).Error; err != nil {
				return err
			}
			link := models.MovieGenreLink{MovieID: doc.ID, GenreID: g.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		seen := make(map[uint64]bool)
		for _, c := range doc.Credits.Cast {
			if int(c.Order) >= s.castLimit {
				continue
			}
			cast := models.MovieCast{
				MovieID:   doc.ID,
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
			crew := models.MovieCrew{
				MovieID:    doc.ID,
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
		return nil, nil, fmt.Errorf("failed to create movie %d: %w", doc.ID, err)
	}
	return personIDs, images, nil
}

// MovieExists reports whether the movie is already in the catalog
func (s *Store) MovieExists(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	err := s.db.Model(&models.Movie{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check movie %d: %w", id, err)
	}
	return count > 0, nil
}

// Movie loads one movie with genres, credits and the videos assigned to it
func (s *Store) Movie(id uint64) (*models.MovieDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row movieViewRow
	res := s.db.Raw("SELECT * FROM movies_view WHERE id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	detail := models.MovieDetail{
		Movie: models.Movie{
			ID:               row.ID,
			OriginalTitle:    row.OriginalTitle,
			OriginalLanguage: row.OriginalLanguage,
			Title:            row.Title,
			ReleaseDate:      row.ReleaseDate,
			Overview:         row.Overview,
			Popularity:       row.Popularity,
			PosterPath:       row.PosterPath,
			BackdropPath:     row.BackdropPath,
			VoteAverage:      row.VoteAverage,
			VoteCount:        row.VoteCount,
			Tagline:          row.Tagline,
			Status:           row.Status,
			Adult:            row.Adult,
		},
		Genres:   SplitConcat(deref(row.Genres)),
		VideoIDs: SplitConcatIDs(deref(row.Videos)),
	}

	err := s.db.Raw(`SELECT c.person_id, p.name, c.character, c.ord, p.profile_path
		FROM movie_casts c LEFT JOIN persons p ON p.id = c.person_id
		WHERE c.movie_id = ? ORDER BY c.ord`, id).Scan(&detail.Cast).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cast for movie %d: %w", id, err)
	}

	err = s.db.Raw(`SELECT c.person_id, p.name, c.job, c.department, p.profile_path
		FROM movie_crews c LEFT JOIN persons p ON p.id = c.person_id
		WHERE c.movie_id = ?`, id).Scan(&detail.Crew).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get crew for movie %d: %w", id, err)
	}
	return &detail, nil
}

// Movies lists movies matching the filter
func (s *Store) Movies(f *MovieFilter) ([]models.MovieResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == nil {
		f = NewMovieFilter()
	}
	where, args, err := f.f.build()
	if err != nil {
		return nil, err
	}

	sql := `SELECT id, title, release_date, poster_path, vote_average,
		genres, videos, adding FROM movies_view`
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " GROUP BY id"

	var rows []movieViewRow
	if err := s.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	results := make([]models.MovieResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.MovieResult{
			ID:          row.ID,
			Title:       row.Title,
			ReleaseDate: row.ReleaseDate,
			PosterPath:  row.PosterPath,
			VoteAverage: row.VoteAverage,
			Genres:      SplitConcat(deref(row.Genres)),
			VideoIDs:    SplitConcatIDs(deref(row.Videos)),
			Adding:      deref(row.Adding),
		})
	}
	return results, nil
}
