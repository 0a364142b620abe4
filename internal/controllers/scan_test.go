package controllers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/probe"
	"github.com/amaumene/gomediadex/internal/utils"
)

type fakeProber struct {
	calls int
}

func (p *fakeProber) Probe(ctx context.Context, path string) (*probe.Result, error) {
	p.calls++
	return &probe.Result{
		Duration:  5400,
		Codec:     "h264",
		Width:     1920,
		Height:    1080,
		Audios:    []string{"eng", "fra"},
		Subtitles: []string{"eng"},
	}, nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func TestScan(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "Movie.Title.2021.1080p.mkv"))
	writeFile(t, filepath.Join(dir, "shows", "Show.S01E02.720p.mkv"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	prober := &fakeProber{}
	c := NewScanController(st, prober, &utils.IgnoreList{}, dir, testLogger())

	added, err := c.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if added != 2 {
		t.Fatalf("Expected 2 added videos, got %d", added)
	}
	if prober.calls != 2 {
		t.Errorf("Expected 2 probes, got %d", prober.calls)
	}

	// The episode marker decides the media type
	movieID, err := st.VideoID(filepath.Join(dir, "Movie.Title.2021.1080p.mkv"))
	if err != nil {
		t.Fatalf("Movie file not registered: %v", err)
	}
	mt, _, err := st.VideoMediaType(movieID)
	if err != nil || mt != models.MediaTypeMovie {
		t.Errorf("Expected movie type, got %v err=%v", mt, err)
	}

	episodeID, err := st.VideoID(filepath.Join(dir, "shows", "Show.S01E02.720p.mkv"))
	if err != nil {
		t.Fatalf("Episode file not registered: %v", err)
	}
	mt, _, err = st.VideoMediaType(episodeID)
	if err != nil || mt != models.MediaTypeEpisode {
		t.Errorf("Expected episode type, got %v err=%v", mt, err)
	}

	// Container language tags are normalized to ISO-639-1
	video, err := st.Video(movieID)
	if err != nil {
		t.Fatalf("Failed to get video: %v", err)
	}
	if len(video.Audios) != 2 || video.Audios[0] != "en" || video.Audios[1] != "fr" {
		t.Errorf("Audio languages not normalized: %v", video.Audios)
	}
}

func TestScanSkipsKnownFiles(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Movie.2020.mkv"))

	prober := &fakeProber{}
	c := NewScanController(st, prober, &utils.IgnoreList{}, dir, testLogger())

	if _, err := c.Scan(context.Background()); err != nil {
		t.Fatalf("First scan failed: %v", err)
	}
	added, err := c.Scan(context.Background())
	if err != nil {
		t.Fatalf("Second scan failed: %v", err)
	}
	if added != 0 {
		t.Errorf("Second scan should add nothing, got %d", added)
	}
	if prober.calls != 1 {
		t.Errorf("Known file was probed again: %d calls", prober.calls)
	}
}
