package models

import (
	"time"

	"github.com/google/uuid"
)

// Lap is a single timed lap of a driver on a race.
type Lap struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RaceID    uuid.UUID `gorm:"type:uuid;not null" json:"raceId"`
	DriverID  uuid.UUID `gorm:"type:uuid;not null" json:"driverId"`
	LapTime   float64   `gorm:"not null" json:"lapTime"` // Seconds.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Driver *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Race   *Race   `gorm:"foreignKey:RaceID" json:"race,omitempty"`
}
