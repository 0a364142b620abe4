package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/gomediadex/internal/config"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{TmdbAPIKey: "test-key", TmdbLanguage: "en"}
	return NewClient(cfg, testLogger(), WithBaseURL(server.URL))
}

func TestGetMovie(t *testing.T) {
	calls := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/movie/603" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("Missing api_key parameter")
		}
		if r.URL.Query().Get("append_to_response") != "credits" {
			t.Error("Missing append_to_response parameter")
		}
		fmt.Fprint(w, `{
			"id": 603,
			"title": "The Matrix",
			"release_date": "1999-03-30",
			"genres": [{"id": 28, "name": "Action"}],
			"credits": {
				"cast": [{"id": 6384, "name": "Keanu Reeves", "character": "Neo", "order": 0}],
				"crew": [{"id": 9339, "name": "Lana Wachowski", "job": "Director", "department": "Directing"}]
			}
		}`)
	}))

	doc, err := client.GetMovie(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovie failed: %v", err)
	}
	if doc.Title != "The Matrix" {
		t.Errorf("Title mismatch: %s", doc.Title)
	}
	if len(doc.Credits.Cast) != 1 || doc.Credits.Cast[0].Character != "Neo" {
		t.Errorf("Cast mismatch: %v", doc.Credits.Cast)
	}
	if len(doc.Genres) != 1 || doc.Genres[0].Name != "Action" {
		t.Errorf("Genres mismatch: %v", doc.Genres)
	}

	// Second fetch comes from the cache
	if _, err := client.GetMovie(context.Background(), 603); err != nil {
		t.Fatalf("Cached GetMovie failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", calls)
	}
}

func TestGetMovieNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetMovie(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetMovieRejectedNotRetried(t *testing.T) {
	calls := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.GetMovie(context.Background(), 1)
	if err == nil {
		t.Fatal("Expected error for rejected request")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindRejected || perr.Status != http.StatusUnauthorized {
		t.Fatalf("Expected rejected error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("401 should not be retried, got %d calls", calls)
	}
}

func TestGetMovieRetriesServerError(t *testing.T) {
	calls := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"id": 1, "title": "Recovered"}`)
	}))

	doc, err := client.GetMovie(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetMovie should recover after retries: %v", err)
	}
	if doc.Title != "Recovered" {
		t.Errorf("Title mismatch: %s", doc.Title)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestGetMovieMalformed(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": not json`)
	}))

	_, err := client.GetMovie(context.Background(), 1)
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindMalformed {
		t.Fatalf("Expected malformed error, got %v", err)
	}
}

func TestGetTvEpisode(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1399/season/1/episode/2" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id": 63057, "name": "The Kingsroad", "season_number": 1, "episode_number": 2}`)
	}))

	doc, err := client.GetTvEpisode(context.Background(), 1399, 1, 2)
	if err != nil {
		t.Fatalf("GetTvEpisode failed: %v", err)
	}
	if doc.ID != 63057 || doc.EpisodeNumber != 2 {
		t.Errorf("Episode mismatch: %+v", doc)
	}
}

func TestSearchMovie(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "dune" {
			t.Errorf("Query mismatch: %s", r.URL.Query().Get("query"))
		}
		if r.URL.Query().Get("year") != "2021" {
			t.Errorf("Year mismatch: %s", r.URL.Query().Get("year"))
		}
		fmt.Fprint(w, `{
			"page": 1,
			"total_results": 1,
			"total_pages": 1,
			"results": [{"id": 438631, "title": "Dune", "release_date": "2021-09-15", "popularity": 100}]
		}`)
	}))

	result, err := client.SearchMovie("dune").Year("2021").Do(context.Background())
	if err != nil {
		t.Fatalf("SearchMovie failed: %v", err)
	}
	if len(result.Results) != 1 || result.Results[0].ID != 438631 {
		t.Errorf("Results mismatch: %+v", result.Results)
	}
}
