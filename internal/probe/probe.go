// Package probe extracts technical metadata from video files with ffprobe.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// Result is the technical metadata of one video file
type Result struct {
	Duration  float64
	BitRate   float64
	Codec     string
	Width     uint
	Height    uint
	Size      uint64
	Subtitles []string
	Audios    []string
}

// Prober inspects a video file on disk
type Prober interface {
	Probe(ctx context.Context, path string) (*Result, error)
}

// FFProbe shells out to the ffprobe binary
type FFProbe struct {
	// Binary overrides the ffprobe executable name, for non-PATH installs
	Binary string
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     uint   `json:"width"`
		Height    uint   `json:"height"`
		Tags      struct {
			Language string `json:"language"`
		} `json:"tags"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
		Size     string `json:"size"`
	} `json:"format"`
}

// Probe runs ffprobe on the file and parses its JSON output
func (f *FFProbe) Probe(ctx context.Context, path string) (*Result, error) {
	binary := f.Binary
	if binary == "" {
		binary = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}
	return parseOutput(out)
}

func parseOutput(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode ffprobe output: %w", err)
	}

	result := &Result{}
	result.Duration, _ = strconv.ParseFloat(raw.Format.Duration, 64)
	result.BitRate, _ = strconv.ParseFloat(raw.Format.BitRate, 64)
	result.Size, _ = strconv.ParseUint(raw.Format.Size, 10, 64)

	for _, stream := range raw.Streams {
		switch stream.CodecType {
		case "video":
			// First video stream wins
			if result.Codec == "" {
				result.Codec = stream.CodecName
				result.Width = stream.Width
				result.Height = stream.Height
			}
		case "audio":
			result.Audios = append(result.Audios, stream.Tags.Language)
		case "subtitle":
			result.Subtitles = append(result.Subtitles, stream.Tags.Language)
		}
	}
	return result, nil
}
