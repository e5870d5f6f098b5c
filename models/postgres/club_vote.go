package postgres

import (
	"time"

	"github.com/google/uuid"
)

// Seasons is the fixed list of seasons open for club-of-the-season voting.
var Seasons = []string{"2023/24", "2024/25", "2025/26"}

// DefaultSeason is used when a request does not name a season.
const DefaultSeason = "2025/26"

// ValidSeason reports whether s is one of the votable seasons.
func ValidSeason(s string) bool {
	for _, season := range Seasons {
		if s == season {
			return true
		}
	}
	return false
}

/*
 * 'ClubVote' stores a user's club-of-the-season vote. At most one row per
 * (user, season); changing your mind overwrites the club.
 */
type ClubVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_club_votes_user_season"`
	ClubID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Season    string    `gorm:"size:10;not null;uniqueIndex:idx_club_votes_user_season"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Club Club `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}
