package postgres

import (
	"time"

	"github.com/google/uuid"
)

// MatchOutcome is the closed set of predictions a user can make for a match.
type MatchOutcome string

const (
	OutcomeHomeWin MatchOutcome = "home_win"
	OutcomeAwayWin MatchOutcome = "away_win"
	OutcomeDraw    MatchOutcome = "draw"
)

// MatchOutcomes lists every outcome, in the order results are reported.
var MatchOutcomes = []MatchOutcome{OutcomeHomeWin, OutcomeAwayWin, OutcomeDraw}

// ValidOutcome reports whether o is one of the three fixed predictions.
func ValidOutcome(o MatchOutcome) bool {
	return o == OutcomeHomeWin || o == OutcomeAwayWin || o == OutcomeDraw
}

/*
 * 'MatchVote' stores a user's prediction for one match. At most one row per
 * (user, match), enforced by the composite unique index.
 */
type MatchVote struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_match_votes_user_match"`
	MatchID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_match_votes_user_match"`
	Prediction MatchOutcome `gorm:"size:10;not null"`
	CreatedAt  time.Time    `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Match Match `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}
