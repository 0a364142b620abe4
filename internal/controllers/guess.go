package controllers

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"github.com/amaumene/gomediadex/internal/utils"
	"github.com/sirupsen/logrus"
)

// MovieGuess is one ranked movie candidate for a file name
type MovieGuess struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Distance    int     `json:"distance"`
	Popularity  float64 `json:"popularity"`
}

// TvGuess is one ranked tv candidate for a file name. Season and Episode
// carry the numbers parsed out of the name when it looks like an episode.
type TvGuess struct {
	ID           uint64  `json:"id"`
	Title        string  `json:"title"`
	FirstAirDate string  `json:"first_air_date"`
	Distance     int     `json:"distance"`
	Popularity   float64 `json:"popularity"`
	Season       uint    `json:"season,omitempty"`
	Episode      uint    `json:"episode,omitempty"`
}

// GuessController turns release-style file names into ranked provider
// candidates, so a video can be assigned without knowing its provider ID.
type GuessController struct {
	client *tmdb.Client
	logger *logrus.Logger
}

// NewGuessController creates a new guess controller
func NewGuessController(client *tmdb.Client, logger *logrus.Logger) *GuessController {
	return &GuessController{client: client, logger: logger}
}

// GuessMovie searches the provider with a cleaned-up file name and ranks the
// candidates by title distance, closest first
func (c *GuessController) GuessMovie(ctx context.Context, filename string) ([]MovieGuess, error) {
	title := utils.CleanTitle(filename)
	if title == "" {
		return nil, fmt.Errorf("no usable title in %q", filename)
	}
	year := utils.ExtractYear(filename)

	c.logger.WithFields(logrus.Fields{
		"filename": filename,
		"title":    title,
		"year":     year,
	}).Debug("Guessing movie")

	req := c.client.SearchMovie(title)
	if year != 0 {
		req = req.Year(strconv.Itoa(year))
	}
	result, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	guesses := make([]MovieGuess, 0, len(result.Results))
	for _, m := range result.Results {
		guesses = append(guesses, MovieGuess{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Distance:    titleDistance(title, m.Title),
			Popularity:  m.Popularity,
		})
	}
	sort.SliceStable(guesses, func(i, j int) bool {
		if guesses[i].Distance != guesses[j].Distance {
			return guesses[i].Distance < guesses[j].Distance
		}
		return guesses[i].Popularity > guesses[j].Popularity
	})
	return guesses, nil
}

// GuessTv searches the provider with a cleaned-up file name and ranks the
// candidates by title distance. When the name carries an S01E01 marker the
// parsed season and episode ride along on every candidate.
func (c *GuessController) GuessTv(ctx context.Context, filename string) ([]TvGuess, error) {
	title := utils.CleanTitle(filename)
	if title == "" {
		return nil, fmt.Errorf("no usable title in %q", filename)
	}
	season, episode, hasEpisode := utils.ExtractEpisode(filename)

	c.logger.WithFields(logrus.Fields{
		"filename": filename,
		"title":    title,
	}).Debug("Guessing tv show")

	result, err := c.client.SearchTv(title).Do(ctx)
	if err != nil {
		return nil, err
	}

	guesses := make([]TvGuess, 0, len(result.Results))
	for _, t := range result.Results {
		g := TvGuess{
			ID:           t.ID,
			Title:        t.Name,
			FirstAirDate: t.FirstAirDate,
			Distance:     titleDistance(title, t.Name),
			Popularity:   t.Popularity,
		}
		if hasEpisode {
			g.Season = season
			g.Episode = episode
		}
		guesses = append(guesses, g)
	}
	sort.SliceStable(guesses, func(i, j int) bool {
		if guesses[i].Distance != guesses[j].Distance {
			return guesses[i].Distance < guesses[j].Distance
		}
		return guesses[i].Popularity > guesses[j].Popularity
	})
	return guesses, nil
}

func titleDistance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}
