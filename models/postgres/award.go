package postgres

import (
	"time"

	"github.com/google/uuid"
)

const (
	AwardTeamOfTheYear  = "TEAM_OTY"
	AwardTeamOfTheMonth = "TEAM_POTM"
	AwardTeamOfTheWeek  = "TEAM_POTW"
	AwardOther          = "OTHER"
)

// Award records a trophy or distinction earned by a club.
type Award struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClubID      *uuid.UUID `gorm:"type:uuid;index"`
	Club        *Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
	AwardType   string     `gorm:"size:20;not null"`
	Title       string     `gorm:"size:200;not null"`
	Season      string     `gorm:"size:10;not null"`
	DateAwarded time.Time  `gorm:"not null"`
	Description string     `gorm:"type:text"`
}
