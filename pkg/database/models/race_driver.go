package models

import (
	"time"

	"github.com/google/uuid"
)

// RaceDriver is the participation of a driver on a race.
// Position and points stay empty until the results are calculated.
type RaceDriver struct {
	RaceID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"raceId"`
	DriverID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"driverId"`
	Position  *int      `json:"position"`
	Points    *int      `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Driver *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Race   *Race   `gorm:"foreignKey:RaceID" json:"race,omitempty"`
}

// HasResult tells if the participation was ranked.
func (rd *RaceDriver) HasResult() bool {
	return rd.Position != nil
}
