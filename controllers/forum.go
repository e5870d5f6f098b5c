package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"PitchPerfect/middleware"
	models "PitchPerfect/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const postsPageSize = 15

func authorJSON(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID.String(),
		"username":  u.Username,
		"prof_pict": u.ProfPict,
		"is_staff":  u.IsStaff(),
	}
}

func postJSON(p *models.Post, includeComments bool) gin.H {
	images := make([]gin.H, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, gin.H{
			"id":        img.ID.String(),
			"image_url": img.ImageURL,
			"caption":   img.Caption,
			"order":     img.Order,
		})
	}
	out := gin.H{
		"id":               p.ID.String(),
		"title":            p.Title,
		"content":          p.Content,
		"post_type":        p.PostType,
		"is_official_news": p.IsOfficialNews(),
		"author":           authorJSON(&p.Author),
		"league_tags":      p.LeagueTagsList(),
		"club_tags":        p.ClubTagsList(),
		"images":           images,
		"comment_count":    len(p.Comments),
		"created_at":       p.CreatedAt.Format(time.RFC3339),
		"updated_at":       p.UpdatedAt.Format(time.RFC3339),
	}
	if p.ClubID != nil {
		out["club_id"] = p.ClubID.String()
	} else {
		out["club_id"] = nil
	}
	if p.LeagueID != nil {
		out["league_id"] = p.LeagueID.String()
	} else {
		out["league_id"] = nil
	}
	if includeComments {
		comments := make([]gin.H, 0, len(p.Comments))
		for i := range p.Comments {
			comments = append(comments, commentJSON(&p.Comments[i]))
		}
		out["comments"] = comments
	}
	return out
}

func commentJSON(c *models.Comment) gin.H {
	return gin.H{
		"id":         c.ID.String(),
		"content":    c.Content,
		"author":     authorJSON(&c.Author),
		"created_at": c.CreatedAt.Format(time.RFC3339),
		"updated_at": c.UpdatedAt.Format(time.RFC3339),
	}
}

// @Summary List forum posts
// @Description Newest first, 15 per page. Filterable by club, league, hashtag,
// @Description post type, and a search over title and content.
// @Produce json
// @Param page query int false "Page number, 1-based"
// @Param club_id query string false "Club UUID"
// @Param league_id query string false "League UUID"
// @Param league_tag query string false "League hashtag"
// @Param club_tag query string false "Club hashtag"
// @Param type query string false "discussion | news"
// @Param search query string false "Title/content fragment"
// @Success 200 {object} object{posts=[]object,page=int,total_pages=int,total_posts=int}
// @Router /forum/posts [get]
func ListPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Post{})

		if clubParam := c.Query("club_id"); clubParam != "" {
			clubID, err := uuid.Parse(clubParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid club ID"})
				return
			}
			query = query.Where("club_id = ?", clubID)
		}
		if leagueParam := c.Query("league_id"); leagueParam != "" {
			leagueID, err := uuid.Parse(leagueParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid league ID"})
				return
			}
			query = query.Where("league_id = ?", leagueID)
		}
		if tag := c.Query("league_tag"); tag != "" {
			query = query.Where("league_tags ILIKE ?", "%"+tag+"%")
		}
		if tag := c.Query("club_tag"); tag != "" {
			query = query.Where("club_tags ILIKE ?", "%"+tag+"%")
		}
		if postType := c.Query("type"); postType != "" {
			if postType != models.PostDiscussion && postType != models.PostNews {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post type"})
				return
			}
			query = query.Where("post_type = ?", postType)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
		}

		// Count on a session clone: running it on the shared chain would
		// bake the COUNT statement into it and the Find below would re-run
		// the count instead of selecting posts.
		var total int64
		if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching posts"})
			return
		}
		totalPages := int((total + postsPageSize - 1) / postsPageSize)

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}

		var posts []models.Post
		err := query.
			Preload("Author").
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
			Preload("Comments").
			Order("created_at DESC").
			Offset((page - 1) * postsPageSize).
			Limit(postsPageSize).
			Find(&posts).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching posts"})
			return
		}

		out := make([]gin.H, 0, len(posts))
		for i := range posts {
			out = append(out, postJSON(&posts[i], false))
		}
		c.JSON(http.StatusOK, gin.H{
			"posts":       out,
			"page":        page,
			"total_pages": totalPages,
			"total_posts": total,
		})
	}
}

func loadPost(db *gorm.DB, postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := db.Preload("Author").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments.Author").
		Where("id = ?", postID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// @Summary Single post with comments
// @Produce json
// @Param post_id path string true "Post UUID"
// @Success 200 {object} object{post=object}
// @Failure 404 {object} object{status=string,message=string}
// @Router /forum/posts/{post_id} [get]
func GetPost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := uuid.Parse(c.Param("post_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post ID"})
			return
		}
		post, err := loadPost(db, postID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"post": postJSON(post, true)})
	}
}

type postImagePayload struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
	Order    int    `json:"order"`
}

type postRequest struct {
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	PostType   string             `json:"post_type"`
	ClubID     string             `json:"club_id"`
	LeagueID   string             `json:"league_id"`
	LeagueTags []string           `json:"league_tags"`
	ClubTags   []string           `json:"club_tags"`
	Images     []postImagePayload `json:"images"`
}

func (r *postRequest) apply(post *models.Post) string {
	title := strings.TrimSpace(r.Title)
	content := strings.TrimSpace(r.Content)
	if title == "" || content == "" {
		return "Title and content are required."
	}
	post.Title = title
	post.Content = content
	if r.ClubID != "" {
		clubID, err := uuid.Parse(r.ClubID)
		if err != nil {
			return "Invalid club ID"
		}
		post.ClubID = &clubID
	} else {
		post.ClubID = nil
	}
	if r.LeagueID != "" {
		leagueID, err := uuid.Parse(r.LeagueID)
		if err != nil {
			return "Invalid league ID"
		}
		post.LeagueID = &leagueID
	} else {
		post.LeagueID = nil
	}
	post.LeagueTags = strings.Join(r.LeagueTags, ",")
	post.ClubTags = strings.Join(r.ClubTags, ",")
	return ""
}

func (r *postRequest) imageRows(postID uuid.UUID) []models.PostImage {
	images := make([]models.PostImage, 0, len(r.Images))
	for i, img := range r.Images {
		order := img.Order
		if order == 0 {
			order = i
		}
		images = append(images, models.PostImage{
			ID:       uuid.New(),
			PostID:   postID,
			ImageURL: img.ImageURL,
			Caption:  img.Caption,
			Order:    order,
		})
	}
	return images
}

// @Summary Create a post
// @Description News posts are reserved for admins; everyone else gets 403.
// @Accept json
// @Produce json
// @Param body body postRequest true "Post data"
// @Success 201 {object} object{status=string,post=object}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 403 {object} object{status=string,message=string}
// @Router /auth/forum/posts [post]
// @Security ApiKeyAuth
func CreatePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}

		postType := req.PostType
		if postType == "" {
			postType = models.PostDiscussion
		}
		if postType != models.PostDiscussion && postType != models.PostNews {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post type"})
			return
		}
		if postType == models.PostNews && !user.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Only admins can publish news"})
			return
		}

		post := models.Post{ID: uuid.New(), AuthorID: user.ID, PostType: postType}
		if msg := req.apply(&post); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
			return
		}
		post.Images = req.imageRows(post.ID)

		if err := db.Create(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating post"})
			return
		}
		created, err := loadPost(db, post.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error loading post"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "created", "post": postJSON(created, true)})
	}
}

// @Summary Update a post
// @Description Only the author may edit. The post type cannot change; images
// @Description are replaced wholesale by the submitted list.
// @Accept json
// @Produce json
// @Param post_id path string true "Post UUID"
// @Param body body postRequest true "Post data"
// @Success 200 {object} object{status=string,post=object}
// @Failure 403 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/forum/posts/{post_id} [put]
// @Security ApiKeyAuth
func UpdatePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		postID, err := uuid.Parse(c.Param("post_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post ID"})
			return
		}
		var post models.Post
		if err := db.Where("id = ?", postID).First(&post).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Post not found"})
			return
		}
		if post.AuthorID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You can only edit your own posts"})
			return
		}

		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}
		if msg := req.apply(&post); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&post).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostImage{}).Error; err != nil {
				return err
			}
			images := req.imageRows(post.ID)
			if len(images) == 0 {
				return nil
			}
			return tx.Create(&images).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating post"})
			return
		}

		updated, err := loadPost(db, post.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error loading post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated", "post": postJSON(updated, true)})
	}
}

// @Summary Delete a post
// @Description The author or any admin may delete; comments and images go
// @Description with it.
// @Produce json
// @Param post_id path string true "Post UUID"
// @Success 200 {object} object{status=string}
// @Failure 403 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/forum/posts/{post_id} [delete]
// @Security ApiKeyAuth
func DeletePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		postID, err := uuid.Parse(c.Param("post_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post ID"})
			return
		}
		var post models.Post
		if err := db.Where("id = ?", postID).First(&post).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Post not found"})
			return
		}
		if post.AuthorID != user.ID && !user.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You can only delete your own posts"})
			return
		}
		if err := db.Select("Images", "Comments").Delete(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// @Summary Comment on a post
// @Accept json
// @Produce json
// @Param post_id path string true "Post UUID"
// @Param body body commentRequest true "Comment data"
// @Success 201 {object} object{status=string,comment=object}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/forum/posts/{post_id}/comments [post]
// @Security ApiKeyAuth
func CreateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		postID, err := uuid.Parse(c.Param("post_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post ID"})
			return
		}
		var post models.Post
		if err := db.Where("id = ?", postID).First(&post).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Post not found"})
			return
		}

		var req commentRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Comment content is required."})
			return
		}

		comment := models.Comment{
			ID:       uuid.New(),
			PostID:   post.ID,
			AuthorID: user.ID,
			Content:  strings.TrimSpace(req.Content),
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating comment"})
			return
		}
		comment.Author = *user
		c.JSON(http.StatusCreated, gin.H{"status": "created", "comment": commentJSON(&comment)})
	}
}

// @Summary Edit a comment
// @Description Only the author may edit.
// @Accept json
// @Produce json
// @Param comment_id path string true "Comment UUID"
// @Param body body commentRequest true "Comment data"
// @Success 200 {object} object{status=string,comment=object}
// @Failure 403 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/forum/comments/{comment_id} [put]
// @Security ApiKeyAuth
func UpdateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		commentID, err := uuid.Parse(c.Param("comment_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid comment ID"})
			return
		}
		var comment models.Comment
		if err := db.Preload("Author").Where("id = ?", commentID).First(&comment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Comment not found"})
			return
		}
		if comment.AuthorID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You can only edit your own comments"})
			return
		}

		var req commentRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Comment content is required."})
			return
		}
		comment.Content = strings.TrimSpace(req.Content)
		if err := db.Save(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating comment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated", "comment": commentJSON(&comment)})
	}
}

// @Summary Delete a comment
// @Description The author or any admin may delete.
// @Produce json
// @Param comment_id path string true "Comment UUID"
// @Success 200 {object} object{status=string}
// @Failure 403 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/forum/comments/{comment_id} [delete]
// @Security ApiKeyAuth
func DeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		commentID, err := uuid.Parse(c.Param("comment_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid comment ID"})
			return
		}
		var comment models.Comment
		if err := db.Where("id = ?", commentID).First(&comment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Comment not found"})
			return
		}
		if comment.AuthorID != user.ID && !user.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You can only delete your own comments"})
			return
		}
		if err := db.Delete(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting comment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
