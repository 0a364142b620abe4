package store

import (
	"fmt"

	"github.com/amaumene/gomediadex/internal/models"
)

// EnsureSchema creates every table and view the catalog needs. It is safe to
// call on every startup: tables are created only if absent and existing data
// is never migrated or destroyed. Any DDL failure is fatal to the caller.
func (s *Store) EnsureSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.AutoMigrate(
		&models.Video{},
		&models.VideoSubtitle{},
		&models.VideoAudio{},
		&models.LastTime{},
		&models.MovieGenre{},
		&models.MovieGenreLink{},
		&models.MovieCast{},
		&models.MovieCrew{},
		&models.Movie{},
		&models.TvGenre{},
		&models.TvGenreLink{},
		&models.TvCast{},
		&models.TvCrew{},
		&models.Tv{},
		&models.Season{},
		&models.Episode{},
		&models.EpisodeCast{},
		&models.Person{},
		&models.Collection{},
		&models.MovieCollectionLink{},
		&models.TvCollectionLink{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	for _, ddl := range viewDDL {
		if err := s.db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to create view: %w", err)
		}
	}
	return nil
}

// Read-only views flattening one-to-many children into GROUP_CONCAT scalars.
// The query layer filters these and splits the aggregates back into slices.
var viewDDL = []string{
	`CREATE VIEW IF NOT EXISTS videos_view AS
	SELECT
		v.id AS id,
		v.path AS path,
		v.media_type AS media_type,
		v.media_id AS media_id,
		v.duration AS duration,
		v.bit_rate AS bit_rate,
		v.codec AS codec,
		v.width AS width,
		v.height AS height,
		v.size AS size,
		v.adding AS adding,
		(SELECT GROUP_CONCAT(s.language) FROM video_subtitles s WHERE s.video_id = v.id) AS subtitles,
		(SELECT GROUP_CONCAT(a.language) FROM video_audios a WHERE a.video_id = v.id) AS audios,
		m.title AS m_title,
		t.title AS t_title,
		COALESCE(m.release_date, e.release_date) AS release_date,
		e.season_number AS season_number,
		e.episode_number AS episode_number
	FROM videos v
	LEFT OUTER JOIN movies m ON v.media_type = 0 AND v.media_id = m.id
	LEFT OUTER JOIN episodes e ON v.media_type = 1 AND v.media_id = e.id
	LEFT OUTER JOIN tvs t ON e.tv_id = t.id`,

	`CREATE VIEW IF NOT EXISTS movies_view AS
	SELECT
		m.id AS id,
		m.title AS title,
		m.original_title AS original_title,
		m.original_language AS original_language,
		m.release_date AS release_date,
		m.overview AS overview,
		m.popularity AS popularity,
		m.poster_path AS poster_path,
		m.backdrop_path AS backdrop_path,
		m.vote_average AS vote_average,
		m.vote_count AS vote_count,
		m.tagline AS tagline,
		m.status AS status,
		m.adult AS adult,
		(SELECT GROUP_CONCAT(g.name) FROM movie_genre_links l
			JOIN movie_genres g ON g.id = l.genre_id WHERE l.movie_id = m.id) AS genres,
		(SELECT GROUP_CONCAT(v.id) FROM videos v
			WHERE v.media_type = 0 AND v.media_id = m.id) AS videos,
		(SELECT MAX(v.adding) FROM videos v
			WHERE v.media_type = 0 AND v.media_id = m.id) AS adding
	FROM movies m`,

	`CREATE VIEW IF NOT EXISTS tvs_view AS
	SELECT
		t.id AS id,
		t.title AS title,
		t.original_title AS original_title,
		t.original_language AS original_language,
		t.release_date AS release_date,
		t.overview AS overview,
		t.popularity AS popularity,
		t.poster_path AS poster_path,
		t.backdrop_path AS backdrop_path,
		t.vote_average AS vote_average,
		t.vote_count AS vote_count,
		t.status AS status,
		t.number_of_episodes AS number_of_episodes,
		t.number_of_seasons AS number_of_seasons,
		(SELECT GROUP_CONCAT(g.name) FROM tv_genre_links l
			JOIN tv_genres g ON g.id = l.genre_id WHERE l.tv_id = t.id) AS genres,
		(SELECT MAX(v.adding) FROM videos v
			JOIN episodes e ON v.media_type = 1 AND v.media_id = e.id
			WHERE e.tv_id = t.id) AS adding
	FROM tvs t`,

	`CREATE VIEW IF NOT EXISTS collections_view AS
	SELECT
		c.id AS id,
		c.name AS name,
		c.creator AS creator,
		c.creation_date AS creation_date,
		c.poster_path AS poster_path,
		(SELECT GROUP_CONCAT(ml.movie_id) FROM movie_collection_links ml
			WHERE ml.collection_id = c.id) AS movies,
		(SELECT GROUP_CONCAT(tl.tv_id) FROM tv_collection_links tl
			WHERE tl.collection_id = c.id) AS tvs
	FROM collections c`,
}
