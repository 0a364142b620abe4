package store

import (
	"errors"
	"fmt"

	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatePerson stores a fetched person document. People never reference
// further people, so the returned reference list is always empty; the image
// list holds the profile path when the provider has one. An already known
// person is a no-op.
func (s *Store) CreatePerson(doc *tmdb.Person) ([]uint64, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person := models.Person{
		ID:                 doc.ID,
		Name:               doc.Name,
		Birthday:           doc.Birthday,
		Deathday:           doc.Deathday,
		KnownForDepartment: doc.KnownForDepartment,
		Gender:             doc.Gender,
		Biography:          doc.Biography,
		Popularity:         doc.Popularity,
		PlaceOfBirth:       doc.PlaceOfBirth,
		ProfilePath:        doc.ProfilePath,
	}
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&person)
	if res.Error != nil {
		return nil, nil, fmt.Errorf("failed to create person %d: %w", doc.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil, nil
	}

	var images []string
	if doc.ProfilePath != "" {
		images = append(images, doc.ProfilePath)
	}
	return nil, images, nil
}

// PersonExists reports whether the person is already in the catalog
func (s *Store) PersonExists(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	err := s.db.Model(&models.Person{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check person %d: %w", id, err)
	}
	return count > 0, nil
}

// Person loads one person
func (s *Store) Person(id uint64) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p models.Person
	err := s.db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person %d: %w", id, err)
	}
	return &p, nil
}

// Persons lists people matching the filter
func (s *Store) Persons(f *PersonFilter) ([]models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == nil {
		f = NewPersonFilter()
	}
	where, args, err := f.f.build()
	if err != nil {
		return nil, err
	}

	query := s.db.Order("name")
	if where != "" {
		query = query.Where(where, args...)
	}
	var people []models.Person
	if err := query.Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return people, nil
}
