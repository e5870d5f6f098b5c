package postgres

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PostDiscussion = "discussion"
	PostNews       = "news"
)

/*
 * 'Post' is a forum thread. Only admins may create 'news' posts. Hashtags are
 * stored as comma-separated strings, as the companion client sends them.
 */
type Post struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string     `gorm:"size:200;not null"`
	Content    string     `gorm:"type:text;not null"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Author     User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostType   string     `gorm:"size:20;not null;default:discussion;index"`
	ClubID     *uuid.UUID `gorm:"type:uuid;index"`
	Club       *Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:SET NULL"`
	LeagueID   *uuid.UUID `gorm:"type:uuid;index"`
	LeagueTags string     `gorm:"size:500"`
	ClubTags   string     `gorm:"size:500"`
	CreatedAt  time.Time  `gorm:"index;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time

	Images   []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments []Comment   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// LeagueTagsList splits the comma-separated league hashtags.
func (p *Post) LeagueTagsList() []string {
	return splitTags(p.LeagueTags)
}

// ClubTagsList splits the comma-separated club hashtags.
func (p *Post) ClubTagsList() []string {
	return splitTags(p.ClubTags)
}

// IsOfficialNews reports whether the post is an admin news post.
func (p *Post) IsOfficialNews() bool {
	return p.PostType == PostNews
}

func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
