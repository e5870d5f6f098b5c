package postgres

import (
	"github.com/google/uuid"
)

// ClubDetails is an optional 1:1 extension of Club with editorial content.
type ClubDetails struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClubID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Description     string    `gorm:"type:text"`
	HistorySummary  string    `gorm:"type:text"`
	StadiumName     string    `gorm:"size:200"`
	StadiumCapacity int
	ManagerName     string `gorm:"size:200"`
}
