package postgres

import (
	"time"

	"github.com/google/uuid"
)

// ClubRanking is a snapshot of a club's world ranking at a given date.
type ClubRanking struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClubID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_club_rankings_club_date"`
	Club         Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
	Rank         int       `gorm:"not null"`
	Points       float64   `gorm:"not null"`
	Continent    string    `gorm:"size:50"`
	RankingDate  time.Time `gorm:"not null;uniqueIndex:idx_club_rankings_club_date"`
	PreviousRank *int
}
