package models

import (
	"time"

	"familykarting/pkg/scoring"

	"github.com/google/uuid"
)

const (
	RaceStatusPlanned   = "planned"
	RaceStatusScheduled = "scheduled"
	RaceStatusDone      = "done"

	RaceTypeRace    = scoring.RaceTypeRace
	RaceTypeTesting = scoring.RaceTypeTesting
)

// Weather stored on a race, every field is empty until fetched.
type Weather struct {
	Temp        *float64   `json:"temp"`
	Condition   *string    `gorm:"type:varchar(50)" json:"condition"`
	Description *string    `gorm:"type:varchar(100)" json:"description"`
	Icon        *string    `gorm:"type:varchar(10)" json:"icon"`
	Humidity    *int       `json:"humidity"`
	WindSpeed   *float64   `json:"windSpeed"`
	FetchedAt   *time.Time `json:"fetchedAt"`
}

// Race is a session on a circuit, a competitive race or a testing one.
type Race struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RaceDate      time.Time `gorm:"not null" json:"raceDate"`
	Status        string    `gorm:"type:varchar(10);default:planned" json:"status"`
	RaceType      string    `gorm:"type:varchar(10);default:race" json:"raceType"`
	CircuitID     uuid.UUID `gorm:"type:uuid;not null" json:"circuitId"`
	Description   string    `json:"description"`
	AttachmentURL string    `gorm:"column:attachment_url" json:"attachmentUrl"`
	Weather       Weather   `gorm:"embedded;embeddedPrefix:weather_" json:"weather"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Circuit *Circuit     `gorm:"foreignKey:CircuitID" json:"circuit,omitempty"`
	Drivers []RaceDriver `gorm:"foreignKey:RaceID" json:"drivers,omitempty"`
	Laps    []Lap        `gorm:"foreignKey:RaceID" json:"laps,omitempty"`

	// Set when the race was saved but its results couldn't be.
	ResultsError string `gorm:"-" json:"resultsError,omitempty"`
}

// IsDone tells if the race finished.
func (r *Race) IsDone() bool {
	return r.Status == RaceStatusDone
}

// CountsForResults tells if the race produces results.
// Testing sessions never do.
func (r *Race) CountsForResults() bool {
	return r.IsDone() && r.RaceType == RaceTypeRace
}

// HasWeather tells if the weather was already stored.
func (r *Race) HasWeather() bool {
	return r.Weather.FetchedAt != nil
}
