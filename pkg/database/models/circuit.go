package models

import (
	"time"

	"familykarting/pkg/hours"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CircuitTypeOutdoor = "outdoor"
	CircuitTypeIndoor  = "indoor"

	CircuitStatusActive   = "active"
	CircuitStatusInactive = "inactive"
)

// Circuit is a karting track.
type Circuit struct {
	ID             uuid.UUID                                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string                                    `gorm:"type:varchar(200);not null" json:"name"`
	Description    string                                    `json:"description"`
	PhotoURL       string                                    `gorm:"column:photo_url" json:"photoUrl"`
	Length         *int                                      `json:"length"` // Meters.
	URL            string                                    `gorm:"column:url" json:"url"`
	Type           string                                    `gorm:"type:varchar(10);default:outdoor" json:"type"`
	LocationLat    *float64                                  `json:"locationLat"`
	LocationLong   *float64                                  `json:"locationLong"`
	Status         string                                    `gorm:"type:varchar(10);default:active" json:"status"`
	Timezone       *string                                   `gorm:"type:varchar(64)" json:"timezone"`
	OperatingHours *datatypes.JSONType[hours.OperatingHours] `gorm:"type:jsonb" json:"operatingHours"`
	CreatedAt      time.Time                                 `json:"createdAt"`
	UpdatedAt      time.Time                                 `json:"updatedAt"`
}

// Schedule returns the operating hours, nil when the circuit has none.
func (c *Circuit) Schedule() *hours.OperatingHours {
	if c.OperatingHours == nil {
		return nil
	}
	schedule := c.OperatingHours.Data()
	return &schedule
}

// SetSchedule replaces the operating hours, nil clears them.
func (c *Circuit) SetSchedule(schedule *hours.OperatingHours) {
	if schedule == nil {
		c.OperatingHours = nil
		return
	}
	wrapped := datatypes.NewJSONType(*schedule)
	c.OperatingHours = &wrapped
}

// HasCoordinates tells if both coordinates are set.
func (c *Circuit) HasCoordinates() bool {
	return c.LocationLat != nil && c.LocationLong != nil
}

// Location loads the circuit timezone, nil when unknown or invalid.
func (c *Circuit) Location() *time.Location {
	if c == nil || c.Timezone == nil || *c.Timezone == "" {
		return nil
	}

	loc, err := time.LoadLocation(*c.Timezone)
	if err != nil {
		return nil
	}
	return loc
}
