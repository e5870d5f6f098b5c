package postgres

import (
	"time"

	"github.com/google/uuid"
)

const (
	MatchUpcoming = "upcoming"
	MatchOngoing  = "ongoing"
	MatchFinished = "finished"
)

/*
 * 'Match' references two distinct clubs and, optionally, the league the fixture
 * belongs to. Predictions are scoped to a match.
 */
type Match struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeagueID   *uuid.UUID `gorm:"type:uuid;index"`
	League     *League    `gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
	HomeTeamID uuid.UUID  `gorm:"type:uuid;not null"`
	HomeTeam   Club       `gorm:"foreignKey:HomeTeamID;constraint:OnDelete:CASCADE"`
	AwayTeamID uuid.UUID  `gorm:"type:uuid;not null"`
	AwayTeam   Club       `gorm:"foreignKey:AwayTeamID;constraint:OnDelete:CASCADE"`
	MatchDate  time.Time  `gorm:"not null"`
	Status     string     `gorm:"size:10;not null;default:upcoming"`

	Votes []MatchVote `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// ValidMatchStatus reports whether s is one of the three match states.
func ValidMatchStatus(s string) bool {
	return s == MatchUpcoming || s == MatchOngoing || s == MatchFinished
}
