package postgres

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

/*
 * 'User' contains the blueprint definition of a portal account. Referenced by
 * every choice table and by forum posts/comments.
 */
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	FullName     string    `gorm:"size:255;not null"`
	ProfPict     string    `gorm:"size:500"`
	Role         string    `gorm:"size:10;not null;default:user"`
	IsActive     bool      `gorm:"default:true"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	LeaguePicks []LeaguePick `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MatchVotes  []MatchVote  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ClubVotes   []ClubVote   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// IsStaff reports whether the user can perform admin-only operations.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin
}
