package postgres

import (
	"github.com/google/uuid"
)

/*
 * 'League' is a named competition grouping. Immutable reference data, referenced
 * by Club, Match and LeaguePick.
 */
type League struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"size:255;not null;uniqueIndex"`
	Region   string    `gorm:"size:100"`
	LogoPath string    `gorm:"size:255"`

	Clubs []Club `gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
}
