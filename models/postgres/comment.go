package postgres

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply on a forum post, ordered oldest-first.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_post_created"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_comments_post_created;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time
}
