package models

import "time"

// Collection is a user-created set of movies and tv shows
type Collection struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Creator      string    `json:"creator"`
	CreationDate time.Time `gorm:"autoCreateTime" json:"creation_date"`
	PosterPath   string    `json:"poster_path"`
}

func (Collection) TableName() string { return "collections" }

// MovieCollectionLink links a movie into a collection
type MovieCollectionLink struct {
	CollectionID uint64 `gorm:"uniqueIndex:idx_movie_collection;not null"`
	MovieID      uint64 `gorm:"uniqueIndex:idx_movie_collection;not null"`
}

func (MovieCollectionLink) TableName() string { return "movie_collection_links" }

// TvCollectionLink links a tv show into a collection
type TvCollectionLink struct {
	CollectionID uint64 `gorm:"uniqueIndex:idx_tv_collection;not null"`
	TvID         uint64 `gorm:"uniqueIndex:idx_tv_collection;not null"`
}

func (TvCollectionLink) TableName() string { return "tv_collection_links" }

// CollectionResult is a row of the collections view used by listings
type CollectionResult struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Creator      string   `json:"creator"`
	CreationDate string   `json:"creation_date"`
	PosterPath   string   `json:"poster_path"`
	MovieIDs     []uint64 `json:"movie_ids"`
	TvIDs        []uint64 `json:"tv_ids"`
}
