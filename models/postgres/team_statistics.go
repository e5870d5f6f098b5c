package postgres

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
 * 'TeamStatistics' holds one season of aggregated club numbers. The headline
 * figures used for ranking are real columns; the long tail of per-match rates
 * (fouls, set pieces, penalties) lives in the jsonb Extra blob.
 */
type TeamStatistics struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClubID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_statistics_club_season"`
	Club     Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
	Season   string    `gorm:"size:10;not null;default:2025/26;uniqueIndex:idx_team_statistics_club_season"`

	Wins   int `gorm:"default:0"`
	Draws  int `gorm:"default:0"`
	Losses int `gorm:"default:0"`

	ScoredPerMatch        float64 `gorm:"default:0"`
	ConcededPerMatch      float64 `gorm:"default:0"`
	PossessionAvg         float64 `gorm:"default:0"`
	CleanSheetsPercentage float64 `gorm:"default:0"`

	Extra datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time
}

// MatchesPlayed is the sum of wins, draws and losses.
func (t *TeamStatistics) MatchesPlayed() int {
	return t.Wins + t.Draws + t.Losses
}

// WinPercentage is wins over matches played, rounded to one decimal.
// Returns 0 for a club with no recorded matches.
func (t *TeamStatistics) WinPercentage() float64 {
	total := t.MatchesPlayed()
	if total == 0 {
		return 0
	}
	return math.Round(float64(t.Wins)/float64(total)*1000) / 10
}
