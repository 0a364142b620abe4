package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/sirupsen/logrus"
)

type fakeMeta struct {
	movies   map[uint64]*tmdb.Movie
	tvs      map[uint64]*tmdb.Tv
	episodes map[string]*tmdb.Episode
	persons  map[uint64]*tmdb.Person

	failPersons map[uint64]bool

	movieCalls   int
	tvCalls      int
	episodeCalls int
	personCalls  int
}

func (f *fakeMeta) GetMovie(ctx context.Context, id uint64) (*tmdb.Movie, error) {
	f.movieCalls++
	doc, ok := f.movies[id]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return doc, nil
}

func (f *fakeMeta) GetTv(ctx context.Context, id uint64) (*tmdb.Tv, error) {
	f.tvCalls++
	doc, ok := f.tvs[id]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return doc, nil
}

func (f *fakeMeta) GetTvEpisode(ctx context.Context, tvID uint64, season, episode uint) (*tmdb.Episode, error) {
	f.episodeCalls++
	doc, ok := f.episodes[fmt.Sprintf("%d/%d/%d", tvID, season, episode)]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return doc, nil
}

func (f *fakeMeta) GetPerson(ctx context.Context, id uint64) (*tmdb.Person, error) {
	f.personCalls++
	if f.failPersons[id] {
		return nil, &tmdb.Error{Kind: tmdb.KindConnection, Message: "unreachable"}
	}
	doc, ok := f.persons[id]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return doc, nil
}

type fakeFetcher struct {
	paths []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string) error {
	f.paths = append(f.paths, path)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.EnsureSchema(); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}
	return s
}

func movieDoc(id uint64) *tmdb.Movie {
	return &tmdb.Movie{
		ID:          id,
		Title:       "Example",
		PosterPath:  "/poster.jpg",
		ReleaseDate: "2020-01-01",
		Credits: tmdb.Credits{
			Cast: []tmdb.CastEntry{
				{ID: 10, Name: "A", Character: "X", Order: 0},
				{ID: 11, Name: "B", Character: "Y", Order: 1},
			},
		},
	}
}

func tvDoc(id uint64) *tmdb.Tv {
	return &tmdb.Tv{
		ID:           id,
		Name:         "Example Show",
		FirstAirDate: "2019-01-01",
		Seasons: []tmdb.Season{
			{ID: id*10 + 1, SeasonNumber: 1, EpisodeCount: 8},
		},
		Credits: tmdb.Credits{
			Cast: []tmdb.CastEntry{{ID: 10, Name: "A", Character: "X", Order: 0}},
		},
	}
}

func newFakeMeta() *fakeMeta {
	return &fakeMeta{
		movies:      map[uint64]*tmdb.Movie{},
		tvs:         map[uint64]*tmdb.Tv{},
		episodes:    map[string]*tmdb.Episode{},
		persons:     map[uint64]*tmdb.Person{},
		failPersons: map[uint64]bool{},
	}
}

func TestIngestMovie(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.movies[1] = movieDoc(1)
	meta.persons[10] = &tmdb.Person{ID: 10, Name: "A", ProfilePath: "/a.jpg"}
	meta.persons[11] = &tmdb.Person{ID: 11, Name: "B"}
	fetcher := &fakeFetcher{}

	c := NewIngestController(st, meta, fetcher, testLogger())

	if err := c.IngestMovie(context.Background(), 1); err != nil {
		t.Fatalf("IngestMovie failed: %v", err)
	}

	exists, err := st.MovieExists(1)
	if err != nil || !exists {
		t.Fatalf("Movie missing after ingest: exists=%v err=%v", exists, err)
	}
	for _, personID := range []uint64{10, 11} {
		ok, err := st.PersonExists(personID)
		if err != nil || !ok {
			t.Errorf("Person %d missing after ingest", personID)
		}
	}
	if meta.personCalls != 2 {
		t.Errorf("Expected 2 person fetches, got %d", meta.personCalls)
	}
	// Poster plus person A's profile
	if len(fetcher.paths) != 2 {
		t.Errorf("Expected 2 artwork fetches, got %v", fetcher.paths)
	}
}

func TestIngestMovieCached(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.movies[1] = movieDoc(1)
	meta.persons[10] = &tmdb.Person{ID: 10, Name: "A"}
	meta.persons[11] = &tmdb.Person{ID: 11, Name: "B"}

	c := NewIngestController(st, meta, &fakeFetcher{}, testLogger())
	if err := c.IngestMovie(context.Background(), 1); err != nil {
		t.Fatalf("First ingest failed: %v", err)
	}

	meta.movieCalls = 0
	meta.personCalls = 0

	// A known movie must not cost any provider request
	if err := c.IngestMovie(context.Background(), 1); err != nil {
		t.Fatalf("Second ingest failed: %v", err)
	}
	if meta.movieCalls != 0 || meta.personCalls != 0 {
		t.Errorf("Cached ingest made provider calls: movie=%d person=%d", meta.movieCalls, meta.personCalls)
	}
}

func TestIngestMoviePersonFailureSkipped(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.movies[1] = movieDoc(1)
	meta.persons[11] = &tmdb.Person{ID: 11, Name: "B"}
	meta.failPersons[10] = true

	c := NewIngestController(st, meta, &fakeFetcher{}, testLogger())

	// One unreachable person must not fail the whole ingestion
	if err := c.IngestMovie(context.Background(), 1); err != nil {
		t.Fatalf("IngestMovie failed: %v", err)
	}

	ok, _ := st.PersonExists(10)
	if ok {
		t.Error("Failed person should not be stored")
	}
	ok, _ = st.PersonExists(11)
	if !ok {
		t.Error("Healthy person should be stored")
	}

	detail, err := st.Movie(1)
	if err != nil {
		t.Fatalf("Failed to get movie: %v", err)
	}
	// Credit rows stay even for the missing person
	if len(detail.Cast) != 2 {
		t.Errorf("Expected 2 cast rows, got %d", len(detail.Cast))
	}
}

func TestIngestEpisodeIngestsTvFirst(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.tvs[100] = tvDoc(100)
	meta.persons[10] = &tmdb.Person{ID: 10, Name: "A"}
	meta.episodes["100/1/2"] = &tmdb.Episode{
		ID: 9001, Name: "Second", SeasonNumber: 1, EpisodeNumber: 2,
	}

	c := NewIngestController(st, meta, &fakeFetcher{}, testLogger())

	id, err := c.IngestEpisode(context.Background(), 100, 1, 2)
	if err != nil {
		t.Fatalf("IngestEpisode failed: %v", err)
	}
	if id != 9001 {
		t.Errorf("Expected episode id 9001, got %d", id)
	}

	exists, err := st.TvExists(100)
	if err != nil || !exists {
		t.Fatalf("Show missing after episode ingest: exists=%v err=%v", exists, err)
	}
	if meta.tvCalls != 1 {
		t.Errorf("Expected 1 tv fetch, got %d", meta.tvCalls)
	}

	// Second call resolves from the catalog
	meta.episodeCalls = 0
	id, err = c.IngestEpisode(context.Background(), 100, 1, 2)
	if err != nil || id != 9001 {
		t.Fatalf("Cached episode ingest failed: id=%d err=%v", id, err)
	}
	if meta.episodeCalls != 0 {
		t.Errorf("Cached episode ingest fetched from provider")
	}
}

func TestIngestEpisodeUnknownSeason(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.tvs[100] = tvDoc(100)
	meta.persons[10] = &tmdb.Person{ID: 10, Name: "A"}
	meta.episodes["100/5/1"] = &tmdb.Episode{
		ID: 9100, Name: "Ghost", SeasonNumber: 5, EpisodeNumber: 1,
	}

	c := NewIngestController(st, meta, &fakeFetcher{}, testLogger())

	_, err := c.IngestEpisode(context.Background(), 100, 5, 1)
	if !errors.Is(err, store.ErrSeasonNotFound) {
		t.Fatalf("Expected ErrSeasonNotFound, got %v", err)
	}
}

func TestAssignMovie(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.movies[1] = movieDoc(1)
	meta.persons[10] = &tmdb.Person{ID: 10, Name: "A"}
	meta.persons[11] = &tmdb.Person{ID: 11, Name: "B"}

	videoID, err := st.CreateVideo(&models.Video{Path: "/library/m.mkv", MediaType: models.MediaTypeMovie})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	c := NewIngestController(st, meta, &fakeFetcher{}, testLogger())
	if err := c.AssignMovie(context.Background(), videoID, 1); err != nil {
		t.Fatalf("AssignMovie failed: %v", err)
	}

	video, err := st.Video(videoID)
	if err != nil {
		t.Fatalf("Failed to get video: %v", err)
	}
	if video.MediaID == nil || *video.MediaID != 1 {
		t.Errorf("Video not assigned: %v", video.MediaID)
	}
}

func TestAssignMovieTypeMismatch(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.movies[1] = movieDoc(1)

	videoID, err := st.CreateVideo(&models.Video{Path: "/library/e.mkv", MediaType: models.MediaTypeEpisode})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	c := NewIngestController(st, meta, &fakeFetcher{}, testLogger())
	err = c.AssignMovie(context.Background(), videoID, 1)
	if !errors.Is(err, ErrMediaTypeMismatch) {
		t.Fatalf("Expected ErrMediaTypeMismatch, got %v", err)
	}
	if meta.movieCalls != 0 {
		t.Errorf("Mismatched assignment should not hit the provider")
	}
}

func TestAssignEpisode(t *testing.T) {
	st := newTestStore(t)
	meta := newFakeMeta()
	meta.tvs[100] = tvDoc(100)
	meta.persons[10] = &tmdb.Person{ID: 10, Name: "A"}
	meta.episodes["100/1/2"] = &tmdb.Episode{
		ID: 9001, Name: "Second", SeasonNumber: 1, EpisodeNumber: 2,
	}

	videoID, err := st.CreateVideo(&models.Video{Path: "/library/s01e02.mkv", MediaType: models.MediaTypeEpisode})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	c := NewIngestController(st, meta, &fakeFetcher{}, testLogger())
	if err := c.AssignEpisode(context.Background(), videoID, 100, 1, 2); err != nil {
		t.Fatalf("AssignEpisode failed: %v", err)
	}

	video, err := st.Video(videoID)
	if err != nil {
		t.Fatalf("Failed to get video: %v", err)
	}
	if video.MediaID == nil || *video.MediaID != 9001 {
		t.Errorf("Video not assigned to episode: %v", video.MediaID)
	}
}

func TestAssignMovieMissingVideo(t *testing.T) {
	st := newTestStore(t)
	c := NewIngestController(st, newFakeMeta(), &fakeFetcher{}, testLogger())

	err := c.AssignMovie(context.Background(), 9999, 1)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
