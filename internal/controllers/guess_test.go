package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/gomediadex/internal/config"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
)

func testGuessController(t *testing.T, handler http.Handler) *GuessController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{TmdbAPIKey: "test-key", TmdbLanguage: "en"}
	client := tmdb.NewClient(cfg, testLogger(), tmdb.WithBaseURL(server.URL))
	return NewGuessController(client, testLogger())
}

func TestGuessMovie(t *testing.T) {
	c := testGuessController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "The Matrix" {
			t.Errorf("Query mismatch: %q", r.URL.Query().Get("query"))
		}
		if r.URL.Query().Get("year") != "1999" {
			t.Errorf("Year mismatch: %q", r.URL.Query().Get("year"))
		}
		fmt.Fprint(w, `{
			"page": 1,
			"results": [
				{"id": 2, "title": "The Matrix Reloaded", "release_date": "2003-05-15", "popularity": 40},
				{"id": 1, "title": "The Matrix", "release_date": "1999-03-30", "popularity": 80},
				{"id": 3, "title": "A Glitch in the Matrix", "release_date": "2021-02-05", "popularity": 5}
			]
		}`)
	}))

	guesses, err := c.GuessMovie(context.Background(), "The.Matrix.1999.1080p.BluRay.mkv")
	if err != nil {
		t.Fatalf("GuessMovie failed: %v", err)
	}
	if len(guesses) != 3 {
		t.Fatalf("Expected 3 guesses, got %d", len(guesses))
	}
	// Exact title wins regardless of result order
	if guesses[0].ID != 1 || guesses[0].Distance != 0 {
		t.Errorf("Best guess mismatch: %+v", guesses[0])
	}
	if guesses[1].Distance > guesses[2].Distance {
		t.Errorf("Guesses not ordered by distance: %+v", guesses)
	}
}

func TestGuessMoviePopularityTiebreak(t *testing.T) {
	c := testGuessController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"page": 1,
			"results": [
				{"id": 10, "title": "Dune", "release_date": "1984-12-14", "popularity": 30},
				{"id": 20, "title": "Dune", "release_date": "2021-09-15", "popularity": 90}
			]
		}`)
	}))

	guesses, err := c.GuessMovie(context.Background(), "Dune.mkv")
	if err != nil {
		t.Fatalf("GuessMovie failed: %v", err)
	}
	if guesses[0].ID != 20 {
		t.Errorf("Equal distance should rank by popularity: %+v", guesses)
	}
}

func TestGuessMovieNoTitle(t *testing.T) {
	c := testGuessController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Unusable name should not reach the provider")
	}))

	if _, err := c.GuessMovie(context.Background(), "1080p.mkv"); err == nil {
		t.Fatal("Expected error for unusable name")
	}
}

func TestGuessTv(t *testing.T) {
	c := testGuessController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "Severance" {
			t.Errorf("Query mismatch: %q", r.URL.Query().Get("query"))
		}
		fmt.Fprint(w, `{
			"page": 1,
			"results": [
				{"id": 95396, "name": "Severance", "first_air_date": "2022-02-17", "popularity": 70}
			]
		}`)
	}))

	guesses, err := c.GuessTv(context.Background(), "Severance.S02E03.720p.mkv")
	if err != nil {
		t.Fatalf("GuessTv failed: %v", err)
	}
	if len(guesses) != 1 || guesses[0].ID != 95396 {
		t.Fatalf("Guess mismatch: %+v", guesses)
	}
	// The parsed episode marker rides along on the candidate
	if guesses[0].Season != 2 || guesses[0].Episode != 3 {
		t.Errorf("Episode marker not carried: %+v", guesses[0])
	}
}
