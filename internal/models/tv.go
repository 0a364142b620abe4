package models

// Tv is the canonical tv show row, keyed by the metadata provider's ID
type Tv struct {
	ID               uint64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date"`
	Overview         string  `json:"overview"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Status           string  `json:"status"`
	InProduction     bool    `json:"in_production"`
	NumberOfEpisodes uint    `json:"number_of_episodes"`
	NumberOfSeasons  uint    `json:"number_of_seasons"`
	EpisodeRunTime   uint    `json:"episode_run_time"`
}

func (Tv) TableName() string { return "tvs" }

// TvGenre is the tv genre dictionary, separate from the movie one
type TvGenre struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `json:"name"`
}

func (TvGenre) TableName() string { return "tv_genres" }

// TvGenreLink links a tv show to one of its genres
type TvGenreLink struct {
	TvID    uint64 `gorm:"uniqueIndex:idx_tv_genre;not null"`
	GenreID uint64 `gorm:"uniqueIndex:idx_tv_genre;not null"`
}

func (TvGenreLink) TableName() string { return "tv_genre_links" }

// TvCast is one acting credit of a tv show
type TvCast struct {
	TvID      uint64 `gorm:"uniqueIndex:idx_tv_cast;not null" json:"tv_id"`
	PersonID  uint64 `gorm:"uniqueIndex:idx_tv_cast;not null" json:"person_id"`
	Character string `gorm:"uniqueIndex:idx_tv_cast" json:"character"`
	Ord       uint   `json:"ord"`
}

func (TvCast) TableName() string { return "tv_casts" }

// TvCrew is one crew credit of a tv show
type TvCrew struct {
	TvID       uint64 `gorm:"uniqueIndex:idx_tv_crew;not null" json:"tv_id"`
	PersonID   uint64 `gorm:"uniqueIndex:idx_tv_crew;not null" json:"person_id"`
	Job        string `gorm:"uniqueIndex:idx_tv_crew" json:"job"`
	Department string `json:"department"`
}

func (TvCrew) TableName() string { return "tv_crews" }

// Season belongs to a tv show; (TvID, SeasonNumber) is unique
type Season struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TvID         uint64 `gorm:"uniqueIndex:idx_tv_season;not null" json:"tv_id"`
	SeasonNumber uint   `gorm:"uniqueIndex:idx_tv_season;not null" json:"season_number"`
	EpisodeCount uint   `json:"episode_count"`
	Title        string `json:"title"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	ReleaseDate  string `json:"release_date"`
}

func (Season) TableName() string { return "seasons" }

// Episode belongs to a season. TvID and SeasonNumber are denormalized so
// (tv, season, episode) lookups never need the seasons table.
type Episode struct {
	ID            uint64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	SeasonID      uint64  `gorm:"not null" json:"season_id"`
	TvID          uint64  `gorm:"uniqueIndex:idx_tv_episode;not null" json:"tv_id"`
	SeasonNumber  uint    `gorm:"uniqueIndex:idx_tv_episode;not null" json:"season_number"`
	EpisodeNumber uint    `gorm:"uniqueIndex:idx_tv_episode;not null" json:"episode_number"`
	ReleaseDate   string  `json:"release_date"`
	Title         string  `json:"title"`
	Overview      string  `json:"overview"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

func (Episode) TableName() string { return "episodes" }

// EpisodeCast is one acting credit of an episode
type EpisodeCast struct {
	EpisodeID uint64 `gorm:"uniqueIndex:idx_episode_cast;not null" json:"episode_id"`
	PersonID  uint64 `gorm:"uniqueIndex:idx_episode_cast;not null" json:"person_id"`
	Character string `gorm:"uniqueIndex:idx_episode_cast" json:"character"`
	Ord       uint   `json:"ord"`
}

func (EpisodeCast) TableName() string { return "episode_casts" }

// TvDetail is a tv show with its relations resolved
type TvDetail struct {
	Tv
	Genres  []string     `json:"genres"`
	Cast    []CastCredit `json:"cast"`
	Crew    []CrewCredit `json:"crew"`
	Seasons []Season     `json:"seasons"`
}

// EpisodeDetail is an episode with its cast resolved
type EpisodeDetail struct {
	Episode
	Cast []CastCredit `json:"cast"`
}

// TvResult is a row of the tvs view used by listings
type TvResult struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	PosterPath  string   `json:"poster_path"`
	VoteAverage float64  `json:"vote_average"`
	Genres      []string `json:"genres"`
	Adding      string   `json:"adding,omitempty"`
}
