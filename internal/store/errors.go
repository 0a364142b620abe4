package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a requested row does not exist
	ErrNotFound = errors.New("store: not found")

	// ErrSeasonNotFound is returned by CreateEpisode when the parent
	// (tv_id, season_number) row is missing. Correct orchestration makes
	// this unreachable: the tv show and its seasons are ingested before
	// any of its episodes.
	ErrSeasonNotFound = errors.New("store: season not found for episode")

	// errAlreadyPresent aborts an upsert transaction when the core row
	// turned out to exist. The loser of a concurrent ingest race hits
	// this; it is translated into an empty, successful result.
	errAlreadyPresent = errors.New("store: entity already present")
)

// IsDuplicate reports whether err is a unique-constraint violation
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
