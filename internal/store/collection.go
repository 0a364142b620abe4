package store

import (
	"errors"
	"fmt"

	"github.com/amaumene/gomediadex/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collectionViewRow struct {
	ID           uint64
	Name         string
	Creator      string
	CreationDate string
	PosterPath   string
	Movies       *string
	Tvs          *string
}

// CreateCollection adds a user collection and returns its generated ID
func (s *Store) CreateCollection(c *models.Collection) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Create(c).Error; err != nil {
		return 0, fmt.Errorf("failed to create collection %s: %w", c.Name, err)
	}
	return c.ID, nil
}

// UpdateCollection rewrites the descriptive fields of a collection
func (s *Store) UpdateCollection(c *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.Model(&models.Collection{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":        c.Name,
		"description": c.Description,
		"poster_path": c.PosterPath,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update collection %d: %w", c.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCollection removes a collection together with its membership links
func (s *Store) DeleteCollection(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&models.MovieCollectionLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("collection_id = ?", id).Delete(&models.TvCollectionLink{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Collection{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete collection %d: %w", id, err)
	}
	return nil
}

// AddMovieToCollection links a movie into a collection. Linking the same
// movie twice is a no-op.
func (s *Store) AddMovieToCollection(collectionID, movieID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link := models.MovieCollectionLink{CollectionID: collectionID, MovieID: movieID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to add movie %d to collection %d: %w", movieID, collectionID, err)
	}
	return nil
}

// RemoveMovieFromCollection unlinks a movie from a collection
func (s *Store) RemoveMovieFromCollection(collectionID, movieID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Where("collection_id = ? AND movie_id = ?", collectionID, movieID).
		Delete(&models.MovieCollectionLink{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove movie %d from collection %d: %w", movieID, collectionID, err)
	}
	return nil
}

// AddTvToCollection links a tv show into a collection
func (s *Store) AddTvToCollection(collectionID, tvID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link := models.TvCollectionLink{CollectionID: collectionID, TvID: tvID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to add tv %d to collection %d: %w", tvID, collectionID, err)
	}
	return nil
}

// RemoveTvFromCollection unlinks a tv show from a collection
func (s *Store) RemoveTvFromCollection(collectionID, tvID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Where("collection_id = ? AND tv_id = ?", collectionID, tvID).
		Delete(&models.TvCollectionLink{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove tv %d from collection %d: %w", tvID, collectionID, err)
	}
	return nil
}

// Collection loads one collection with its member ID lists
func (s *Store) Collection(id uint64) (*models.CollectionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row collectionViewRow
	res := s.db.Raw("SELECT * FROM collections_view WHERE id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get collection %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	result := rowToCollection(row)
	return &result, nil
}

// Collections lists collections matching the filter
func (s *Store) Collections(f *CollectionFilter) ([]models.CollectionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == nil {
		f = NewCollectionFilter()
	}
	where, args, err := f.f.build()
	if err != nil {
		return nil, err
	}

	sql := "SELECT * FROM collections_view"
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " GROUP BY id"

	var rows []collectionViewRow
	if err := s.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	results := make([]models.CollectionResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, rowToCollection(row))
	}
	return results, nil
}

func rowToCollection(row collectionViewRow) models.CollectionResult {
	return models.CollectionResult{
		ID:           row.ID,
		Name:         row.Name,
		Creator:      row.Creator,
		CreationDate: row.CreationDate,
		PosterPath:   row.PosterPath,
		MovieIDs:     SplitConcatIDs(deref(row.Movies)),
		TvIDs:        SplitConcatIDs(deref(row.Tvs)),
	}
}
