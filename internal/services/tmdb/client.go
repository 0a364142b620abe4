package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amaumene/gomediadex/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	cacheExpiration = 10 * time.Minute
	cacheCleanup    = 30 * time.Minute
)

// Client handles communication with the metadata provider. Fetched documents
// are cached briefly so an ingestion burst for one show does not hammer the
// provider.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *logrus.Logger
}

// Option tweaks client construction
type Option func(*Client)

// WithBaseURL points the client at a different provider endpoint
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewClient creates a new metadata provider client
func NewClient(cfg *config.Config, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:     cfg.TmdbAPIKey,
		language:   cfg.TmdbLanguage,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache.New(cacheExpiration, cacheCleanup),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetMovie fetches a movie document with its credits appended
func (c *Client) GetMovie(ctx context.Context, id uint64) (*Movie, error) {
	key := fmt.Sprintf("movie/%d", id)
	if v, ok := c.cache.Get(key); ok {
		return v.(*Movie), nil
	}

	c.logger.WithField("movie_id", id).Debug("Fetching movie document")

	q := url.Values{}
	q.Set("append_to_response", "credits")
	var doc Movie
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), q, &doc); err != nil {
		return nil, fmt.Errorf("movie fetch failed: %w", err)
	}
	c.cache.Set(key, &doc, cache.DefaultExpiration)
	return &doc, nil
}

// GetTv fetches a tv document with its credits appended
func (c *Client) GetTv(ctx context.Context, id uint64) (*Tv, error) {
	key := fmt.Sprintf("tv/%d", id)
	if v, ok := c.cache.Get(key); ok {
		return v.(*Tv), nil
	}

	c.logger.WithField("tv_id", id).Debug("Fetching tv document")

	q := url.Values{}
	q.Set("append_to_response", "credits")
	var doc Tv
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), q, &doc); err != nil {
		return nil, fmt.Errorf("tv fetch failed: %w", err)
	}
	c.cache.Set(key, &doc, cache.DefaultExpiration)
	return &doc, nil
}

// GetTvEpisode fetches one episode document with its credits appended
func (c *Client) GetTvEpisode(ctx context.Context, tvID uint64, season, episode uint) (*Episode, error) {
	key := fmt.Sprintf("tv/%d/%d/%d", tvID, season, episode)
	if v, ok := c.cache.Get(key); ok {
		return v.(*Episode), nil
	}

	c.logger.WithFields(logrus.Fields{
		"tv_id":   tvID,
		"season":  season,
		"episode": episode,
	}).Debug("Fetching episode document")

	q := url.Values{}
	q.Set("append_to_response", "credits")
	var doc Episode
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", tvID, season, episode)
	if err := c.get(ctx, path, q, &doc); err != nil {
		return nil, fmt.Errorf("episode fetch failed: %w", err)
	}
	c.cache.Set(key, &doc, cache.DefaultExpiration)
	return &doc, nil
}

// GetPerson fetches a person document
func (c *Client) GetPerson(ctx context.Context, id uint64) (*Person, error) {
	key := fmt.Sprintf("person/%d", id)
	if v, ok := c.cache.Get(key); ok {
		return v.(*Person), nil
	}

	c.logger.WithField("person_id", id).Debug("Fetching person document")

	var doc Person
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), nil, &doc); err != nil {
		return nil, fmt.Errorf("person fetch failed: %w", err)
	}
	c.cache.Set(key, &doc, cache.DefaultExpiration)
	return &doc, nil
}

// get performs a GET with retries. Timeouts, connection failures, 429 and
// 5xx responses are retried with exponential backoff; everything else fails
// immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)
	fullURL := c.baseURL + path + "?" + query.Encode()

	operation := func() error {
		err := c.doGet(ctx, fullURL, result)
		if err == nil {
			return nil
		}
		var perr *Error
		if errors.As(err, &perr) && perr.Retryable() {
			c.logger.WithFields(logrus.Fields{
				"path": path,
				"kind": perr.Kind.String(),
			}).Warn("Provider request failed, retrying")
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}

func (c *Client) doGet(ctx context.Context, fullURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &Error{Kind: KindConnection, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return &Error{Kind: KindTimeout, Message: err.Error()}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return &Error{Kind: KindTimeout, Message: err.Error()}
		}
		return &Error{Kind: KindConnection, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{
			Kind:    KindRejected,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &Error{Kind: KindMalformed, Message: err.Error()}
	}
	return nil
}
