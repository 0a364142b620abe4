package models

// Person is a cast or crew member, created lazily on first reference
type Person struct {
	ID                 uint64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
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

func (Person) TableName() string { return "persons" }
