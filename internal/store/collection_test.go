package store

import (
	"errors"
	"testing"

	"github.com/amaumene/gomediadex/internal/models"
)

func TestCollectionLifecycle(t *testing.T) {
	s := newTestStore(t)

	if _, _, err := s.CreateMovie(makeMovieDoc(1, 0)); err != nil {
		t.Fatalf("Failed to create movie: %v", err)
	}
	if _, _, err := s.CreateTv(makeTvDoc(100, 1)); err != nil {
		t.Fatalf("Failed to create tv: %v", err)
	}

	id, err := s.CreateCollection(&models.Collection{Name: "Watch Later", Creator: "alice"})
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected non-zero collection id")
	}

	if err := s.AddMovieToCollection(id, 1); err != nil {
		t.Fatalf("Failed to add movie: %v", err)
	}
	// Adding twice is a no-op
	if err := s.AddMovieToCollection(id, 1); err != nil {
		t.Fatalf("Second add should be a no-op, got %v", err)
	}
	if err := s.AddTvToCollection(id, 100); err != nil {
		t.Fatalf("Failed to add tv: %v", err)
	}

	col, err := s.Collection(id)
	if err != nil {
		t.Fatalf("Failed to get collection: %v", err)
	}
	if len(col.MovieIDs) != 1 || col.MovieIDs[0] != 1 {
		t.Errorf("Movie ids mismatch: %v", col.MovieIDs)
	}
	if len(col.TvIDs) != 1 || col.TvIDs[0] != 100 {
		t.Errorf("Tv ids mismatch: %v", col.TvIDs)
	}

	if err := s.RemoveMovieFromCollection(id, 1); err != nil {
		t.Fatalf("Failed to remove movie: %v", err)
	}
	col, err = s.Collection(id)
	if err != nil {
		t.Fatalf("Failed to get collection: %v", err)
	}
	if len(col.MovieIDs) != 0 {
		t.Errorf("Movie should be unlinked, got %v", col.MovieIDs)
	}

	if err := s.DeleteCollection(id); err != nil {
		t.Fatalf("Failed to delete collection: %v", err)
	}
	if _, err := s.Collection(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateCollection(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateCollection(&models.Collection{Name: "Old Name"})
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}

	err = s.UpdateCollection(&models.Collection{ID: id, Name: "New Name", Description: "renamed"})
	if err != nil {
		t.Fatalf("Failed to update collection: %v", err)
	}

	col, err := s.Collection(id)
	if err != nil {
		t.Fatalf("Failed to get collection: %v", err)
	}
	if col.Name != "New Name" {
		t.Errorf("Name not updated: %s", col.Name)
	}

	err = s.UpdateCollection(&models.Collection{ID: 9999, Name: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCollectionsFilter(t *testing.T) {
	s := newTestStore(t)

	if _, _, err := s.CreateMovie(makeMovieDoc(1, 0)); err != nil {
		t.Fatalf("Failed to create movie: %v", err)
	}

	a, err := s.CreateCollection(&models.Collection{Name: "Favorites", Creator: "alice"})
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	if _, err := s.CreateCollection(&models.Collection{Name: "Classics", Creator: "bob"}); err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	if err := s.AddMovieToCollection(a, 1); err != nil {
		t.Fatalf("Failed to add movie: %v", err)
	}

	byCreator, err := s.Collections(NewCollectionFilter().Creator("alice"))
	if err != nil {
		t.Fatalf("Failed to list by creator: %v", err)
	}
	if len(byCreator) != 1 || byCreator[0].Name != "Favorites" {
		t.Errorf("Creator filter mismatch: %v", byCreator)
	}

	byMovie, err := s.Collections(NewCollectionFilter().Movie(1))
	if err != nil {
		t.Fatalf("Failed to list by movie: %v", err)
	}
	if len(byMovie) != 1 || byMovie[0].ID != a {
		t.Errorf("Movie filter mismatch: %v", byMovie)
	}
}
