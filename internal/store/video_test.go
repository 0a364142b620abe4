package store

import (
	"errors"
	"testing"

	"github.com/amaumene/gomediadex/internal/models"
)

func TestCreateVideoRoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateVideo(&models.Video{
		Path:      "/library/dune.2021.mkv",
		MediaType: models.MediaTypeMovie,
		Duration:  9300.5,
		Codec:     "hevc",
		Width:     3840,
		Height:    2160,
		Subtitles: []string{"en", "fr"},
		Audios:    []string{"en"},
	})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected non-zero video id")
	}

	video, err := s.Video(id)
	if err != nil {
		t.Fatalf("Failed to get video: %v", err)
	}
	if video.Path != "/library/dune.2021.mkv" {
		t.Errorf("Path mismatch: %s", video.Path)
	}
	if len(video.Subtitles) != 2 || video.Subtitles[0] != "en" || video.Subtitles[1] != "fr" {
		t.Errorf("Subtitles mismatch: %v", video.Subtitles)
	}
	if len(video.Audios) != 1 || video.Audios[0] != "en" {
		t.Errorf("Audios mismatch: %v", video.Audios)
	}
	if video.MediaID != nil {
		t.Error("New video should be unassigned")
	}
}

func TestCreateVideoDuplicatePath(t *testing.T) {
	s := newTestStore(t)

	v := &models.Video{Path: "/library/same.mkv", MediaType: models.MediaTypeMovie}
	if _, err := s.CreateVideo(v); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	_, err := s.CreateVideo(&models.Video{Path: "/library/same.mkv", MediaType: models.MediaTypeMovie})
	if err == nil {
		t.Fatal("Expected error for duplicate path")
	}
	if !IsDuplicate(err) {
		t.Errorf("Expected duplicate error, got %v", err)
	}
}

func TestVideoID(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateVideo(&models.Video{Path: "/library/a.mkv", MediaType: models.MediaTypeMovie})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	got, err := s.VideoID("/library/a.mkv")
	if err != nil {
		t.Fatalf("VideoID failed: %v", err)
	}
	if got != id {
		t.Errorf("Expected id %d, got %d", id, got)
	}

	if _, err := s.VideoID("/library/missing.mkv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestVideosUnassignedFilter(t *testing.T) {
	s := newTestStore(t)

	if _, _, err := s.CreateMovie(makeMovieDoc(603, 2)); err != nil {
		t.Fatalf("Failed to create movie: %v", err)
	}
	assigned, err := s.CreateVideo(&models.Video{Path: "/library/matrix.mkv", MediaType: models.MediaTypeMovie})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}
	if err := s.SetVideoMediaID(assigned, 603); err != nil {
		t.Fatalf("Failed to assign video: %v", err)
	}
	if _, err := s.CreateVideo(&models.Video{Path: "/library/unknown.mkv", MediaType: models.MediaTypeMovie}); err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	results, err := s.Videos(NewVideoFilter().Unassigned())
	if err != nil {
		t.Fatalf("Failed to list videos: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 unassigned video, got %d", len(results))
	}
	if results[0].Path != "/library/unknown.mkv" {
		t.Errorf("Wrong video: %s", results[0].Path)
	}

	all, err := s.Videos(nil)
	if err != nil {
		t.Fatalf("Failed to list all videos: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 videos, got %d", len(all))
	}

	// Assigned video should carry the movie title through the view
	for _, r := range all {
		if r.Path == "/library/matrix.mkv" && r.MovieTitle != "Movie 603" {
			t.Errorf("Expected joined movie title, got %q", r.MovieTitle)
		}
	}
}

func TestLastTimeUpsert(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateVideo(&models.Video{Path: "/library/b.mkv", MediaType: models.MediaTypeMovie})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	if err := s.SetLastTime(id, 1, 120); err != nil {
		t.Fatalf("Failed to set last time: %v", err)
	}
	if err := s.SetLastTime(id, 1, 450); err != nil {
		t.Fatalf("Failed to replace last time: %v", err)
	}

	pos, err := s.GetLastTime(id, 1)
	if err != nil {
		t.Fatalf("Failed to get last time: %v", err)
	}
	if pos != 450 {
		t.Errorf("Expected position 450, got %d", pos)
	}

	if _, err := s.GetLastTime(id, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for other user, got %v", err)
	}
}

func TestVideoMediaType(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateVideo(&models.Video{Path: "/library/ep.mkv", MediaType: models.MediaTypeEpisode})
	if err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}

	mt, ok, err := s.VideoMediaType(id)
	if err != nil {
		t.Fatalf("VideoMediaType failed: %v", err)
	}
	if !ok || mt != models.MediaTypeEpisode {
		t.Errorf("Expected episode type, got %v ok=%v", mt, ok)
	}

	_, ok, err = s.VideoMediaType(9999)
	if err != nil {
		t.Fatalf("VideoMediaType failed: %v", err)
	}
	if ok {
		t.Error("Expected ok=false for missing video")
	}
}
