package models

// Movie is the canonical movie row, keyed by the metadata provider's ID.
// Rows are written once by ingestion and treated as immutable afterwards.
type Movie struct {
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
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	Adult            bool    `json:"adult"`
}

func (Movie) TableName() string { return "movies" }

// MovieGenre is the movie genre dictionary, keyed by the provider's genre ID
type MovieGenre struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `json:"name"`
}

func (MovieGenre) TableName() string { return "movie_genres" }

// MovieGenreLink links a movie to one of its genres
type MovieGenreLink struct {
	MovieID uint64 `gorm:"uniqueIndex:idx_movie_genre;not null"`
	GenreID uint64 `gorm:"uniqueIndex:idx_movie_genre;not null"`
}

func (MovieGenreLink) TableName() string { return "movie_genre_links" }

// MovieCast is one acting credit of a movie. Ord is the provider's billing
// rank and drives both display order and the ingestion cutoff.
type MovieCast struct {
	MovieID   uint64 `gorm:"uniqueIndex:idx_movie_cast;not null" json:"movie_id"`
	PersonID  uint64 `gorm:"uniqueIndex:idx_movie_cast;not null" json:"person_id"`
	Character string `gorm:"uniqueIndex:idx_movie_cast" json:"character"`
	Ord       uint   `json:"ord"`
}

func (MovieCast) TableName() string { return "movie_casts" }

// MovieCrew is one crew credit of a movie
type MovieCrew struct {
	MovieID    uint64 `gorm:"uniqueIndex:idx_movie_crew;not null" json:"movie_id"`
	PersonID   uint64 `gorm:"uniqueIndex:idx_movie_crew;not null" json:"person_id"`
	Job        string `gorm:"uniqueIndex:idx_movie_crew" json:"job"`
	Department string `json:"department"`
}

func (MovieCrew) TableName() string { return "movie_crews" }

// MovieResult is a row of the movies view used by listings
type MovieResult struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	PosterPath  string   `json:"poster_path"`
	VoteAverage float64  `json:"vote_average"`
	Genres      []string `json:"genres"`
	VideoIDs    []uint64 `json:"video_ids"`
	Adding      string   `json:"adding,omitempty"`
}

// MovieDetail is a movie with its relations resolved
type MovieDetail struct {
	Movie
	Genres   []string     `json:"genres"`
	Cast     []CastCredit `json:"cast"`
	Crew     []CrewCredit `json:"crew"`
	VideoIDs []uint64     `json:"video_ids"`
}

// CastCredit is a cast row joined with the person it references
type CastCredit struct {
	PersonID    uint64 `json:"person_id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Ord         uint   `json:"ord"`
	ProfilePath string `json:"profile_path"`
}

// CrewCredit is a crew row joined with the person it references
type CrewCredit struct {
	PersonID    uint64 `json:"person_id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}
