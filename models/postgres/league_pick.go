package postgres

import (
	"time"

	"github.com/google/uuid"
)

/*
 * 'LeaguePick' stores a user's favorite club within one league. The composite
 * unique index enforces at most one pick per (user, league); repeated
 * submissions overwrite the club instead of adding rows.
 *
 * The picked club is intentionally NOT required to belong to the picked league
 * (cross-league favorites are allowed).
 */
type LeaguePick struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_league_picks_user_league"`
	LeagueID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_league_picks_user_league"`
	ClubID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	League League `gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
	Club   Club   `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}
