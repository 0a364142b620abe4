package tmdb

// Genre is one entry of a document's genre list
type Genre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CastEntry is one acting credit. Order is the provider's billing rank,
// starting at 0.
type CastEntry struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       uint    `json:"order"`
	Popularity  float64 `json:"popularity"`
	ProfilePath string  `json:"profile_path"`
}

// CrewEntry is one crew credit
type CrewEntry struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// Credits carries the cast and crew lists appended to a document
type Credits struct {
	Cast []CastEntry `json:"cast"`
	Crew []CrewEntry `json:"crew"`
}

// Movie is the full movie document
type Movie struct {
	ID               uint64  `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	Adult            bool    `json:"adult"`
	Genres           []Genre `json:"genres"`
	Credits          Credits `json:"credits"`
}

// Season is one season entry inside a Tv document
type Season struct {
	ID           uint64 `json:"id"`
	SeasonNumber uint   `json:"season_number"`
	EpisodeCount uint   `json:"episode_count"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	AirDate      string `json:"air_date"`
}

// Tv is the full tv show document, including its season list
type Tv struct {
	ID               uint64   `json:"id"`
	Name             string   `json:"name"`
	OriginalName     string   `json:"original_name"`
	OriginalLanguage string   `json:"original_language"`
	Overview         string   `json:"overview"`
	FirstAirDate     string   `json:"first_air_date"`
	Popularity       float64  `json:"popularity"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int64    `json:"vote_count"`
	Status           string   `json:"status"`
	InProduction     bool     `json:"in_production"`
	NumberOfEpisodes uint     `json:"number_of_episodes"`
	NumberOfSeasons  uint     `json:"number_of_seasons"`
	EpisodeRunTime   []uint   `json:"episode_run_time"`
	Genres           []Genre  `json:"genres"`
	Seasons          []Season `json:"seasons"`
	Credits          Credits  `json:"credits"`
}

// Episode is the full episode document
type Episode struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	SeasonNumber  uint    `json:"season_number"`
	EpisodeNumber uint    `json:"episode_number"`
	StillPath     string  `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	Credits       Credits `json:"credits"`
}

// Person is the full person document
type Person struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	Birthday           string  `json:"birthday"`
	Deathday           string  `json:"deathday"`
	KnownForDepartment string  `json:"known_for_department"`
	Gender             int     `json:"gender"`
	Biography          string  `json:"biography"`
	Popularity         float64 `json:"popularity"`
	PlaceOfBirth       string  `json:"place_of_birth"`
	ProfilePath        string  `json:"profile_path"`
}

// SearchMovie is one ranked candidate of a movie title search
type SearchMovie struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

// SearchTv is one ranked candidate of a tv title search
type SearchTv struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
}

// SearchResult is one page of ranked search candidates
type SearchResult[T any] struct {
	Page         int `json:"page"`
	TotalResults int `json:"total_results"`
	TotalPages   int `json:"total_pages"`
	Results      []T `json:"results"`
}
