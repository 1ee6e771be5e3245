package models

import (
	"time"

	"github.com/google/uuid"
)

// Driver is a family member racing.
type Driver struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"type:varchar(200);not null" json:"name"`
	Birthday  *time.Time `gorm:"type:date" json:"birthday"`
	PhotoURL  string     `gorm:"column:photo_url" json:"photoUrl"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
