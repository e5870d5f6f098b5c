package postgres

import (
	"time"

	"github.com/google/uuid"
)

// PostImage is one of the ordered images attached to a forum post.
type PostImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;index:idx_post_images_post_order"`
	ImageURL   string    `gorm:"size:500;not null"`
	Caption    string    `gorm:"size:200"`
	Order      int       `gorm:"column:display_order;not null;default:0;index:idx_post_images_post_order"`
	UploadedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
