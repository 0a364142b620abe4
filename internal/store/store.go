package store

import (
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultCastLimit is the billing-rank cutoff for cast credits. Entries with
// order >= the limit are dropped at ingestion to bound link-table growth.
const DefaultCastLimit = 15

// Store is the single handle to the catalog database. All statement
// execution is serialized through mu: concurrent callers block, they never
// race on the connection.
type Store struct {
	db        *gorm.DB
	mu        sync.Mutex
	castLimit int
}

// Option configures a Store
type Option func(*Store)

// WithCastLimit overrides the cast billing-rank cutoff
func WithCastLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.castLimit = limit
		}
	}
}

// Open opens (or creates) the catalog database at path
func Open(path string, opts ...Option) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, castLimit: DefaultCastLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Counts reports row counts per entity, used by the status endpoint
type Counts struct {
	Videos      int64 `json:"videos"`
	Movies      int64 `json:"movies"`
	Tvs         int64 `json:"tvs"`
	Episodes    int64 `json:"episodes"`
	Persons     int64 `json:"persons"`
	Collections int64 `json:"collections"`
}

// Count tallies every entity table
func (s *Store) Count() (*Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c Counts
	for table, dst := range map[string]*int64{
		"videos":      &c.Videos,
		"movies":      &c.Movies,
		"tvs":         &c.Tvs,
		"episodes":    &c.Episodes,
		"persons":     &c.Persons,
		"collections": &c.Collections,
	} {
		if err := s.db.Table(table).Count(dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
	}
	return &c, nil
}
