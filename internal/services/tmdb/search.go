package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/patrickmn/go-cache"
)

// MovieSearchRequest builds a movie title search. Optional parameters are
// added with the chained setters and the request runs on Do.
type MovieSearchRequest struct {
	c            *Client
	query        string
	year         string
	page         int
	includeAdult bool
}

// SearchMovie starts a movie title search
func (c *Client) SearchMovie(query string) *MovieSearchRequest {
	return &MovieSearchRequest{c: c, query: query}
}

// Year restricts candidates to one release year
func (r *MovieSearchRequest) Year(year string) *MovieSearchRequest {
	r.year = year
	return r
}

// Page selects a result page, starting at 1
func (r *MovieSearchRequest) Page(page int) *MovieSearchRequest {
	r.page = page
	return r
}

// IncludeAdult keeps adult titles in the candidate list
func (r *MovieSearchRequest) IncludeAdult() *MovieSearchRequest {
	r.includeAdult = true
	return r
}

// Do runs the search
func (r *MovieSearchRequest) Do(ctx context.Context) (*SearchResult[SearchMovie], error) {
	q := url.Values{}
	q.Set("query", r.query)
	if r.year != "" {
		q.Set("year", r.year)
	}
	if r.page > 0 {
		q.Set("page", strconv.Itoa(r.page))
	}
	if r.includeAdult {
		q.Set("include_adult", "true")
	}

	key := "search/movie?" + q.Encode()
	if v, ok := r.c.cache.Get(key); ok {
		return v.(*SearchResult[SearchMovie]), nil
	}

	r.c.logger.WithField("query", r.query).Debug("Searching for movie")

	var result SearchResult[SearchMovie]
	if err := r.c.get(ctx, "/search/movie", q, &result); err != nil {
		return nil, fmt.Errorf("movie search failed: %w", err)
	}
	r.c.cache.Set(key, &result, cache.DefaultExpiration)
	return &result, nil
}

// TvSearchRequest builds a tv title search
type TvSearchRequest struct {
	c     *Client
	query string
	year  string
	page  int
}

// SearchTv starts a tv title search
func (c *Client) SearchTv(query string) *TvSearchRequest {
	return &TvSearchRequest{c: c, query: query}
}

// Year restricts candidates to one first-air year
func (r *TvSearchRequest) Year(year string) *TvSearchRequest {
	r.year = year
	return r
}

// Page selects a result page, starting at 1
func (r *TvSearchRequest) Page(page int) *TvSearchRequest {
	r.page = page
	return r
}

// Do runs the search
func (r *TvSearchRequest) Do(ctx context.Context) (*SearchResult[SearchTv], error) {
	q := url.Values{}
	q.Set("query", r.query)
	if r.year != "" {
		q.Set("first_air_date_year", r.year)
	}
	if r.page > 0 {
		q.Set("page", strconv.Itoa(r.page))
	}

	key := "search/tv?" + q.Encode()
	if v, ok := r.c.cache.Get(key); ok {
		return v.(*SearchResult[SearchTv]), nil
	}

	r.c.logger.WithField("query", r.query).Debug("Searching for tv show")

	var result SearchResult[SearchTv]
	if err := r.c.get(ctx, "/search/tv", q, &result); err != nil {
		return nil, fmt.Errorf("tv search failed: %w", err)
	}
	r.c.cache.Set(key, &result, cache.DefaultExpiration)
	return &result, nil
}
