package postgres

import (
	"github.com/google/uuid"
)

/*
 * 'Club' belongs to exactly one League. Referenced by choices, posts and
 * matches.
 */
type Club struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"size:200;not null;uniqueIndex"`
	LeagueID    uuid.UUID `gorm:"type:uuid;not null;index"`
	League      League    `gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
	FoundedYear int
	LogoURL     string `gorm:"size:500"`

	Details *ClubDetails `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}
