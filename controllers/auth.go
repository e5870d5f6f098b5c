package controllers

import (
	"net/http"
	"strings"

	"PitchPerfect/middleware"
	models "PitchPerfect/models/postgres"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Health probe
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

type signUpRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// @Summary Register a new account
// @Accept json
// @Produce json
// @Param body body signUpRequest true "Account data"
// @Success 201 {object} object{status=string,message=string,username=string}
// @Failure 400 {object} object{status=string,message=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		req.FullName = strings.TrimSpace(req.FullName)
		if req.Username == "" || req.Email == "" || req.FullName == "" || req.Password1 == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Parameters can't be empty"})
			return
		}
		if req.Password1 != req.Password2 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Passwords do not match."})
			return
		}

		var existing models.User
		if err := db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username already exists."})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to hash password"})
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			FullName:     req.FullName,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":   "success",
			"message":  "User created successfully!",
			"username": user.Username,
		})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// @Summary Log in
// @Description Authenticates with username and password. Sets the web session
// @Description cookie and returns a bearer token for the mobile client.
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} object{status=bool,message=string,username=string,is_staff=bool,token=string}
// @Failure 401 {object} object{status=bool,message=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			req.Username = c.PostForm("username")
			req.Password = c.PostForm("password")
		}

		if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Login failed, please check your username or password."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Login failed, please check your username or password."})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Login failed, account is disabled."})
			return
		}

		token, err := middleware.GenerateToken(user.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to generate token"})
			return
		}

		session := sessions.Default(c)
		session.Set(middleware.SessionUserKey, user.Username)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to save session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   true,
			"message":  "Login successful!",
			"username": user.Username,
			"is_staff": user.IsStaff(),
			"token":    token,
		})
	}
}

// @Summary Log out
// @Description Deletes the web session. Bearer tokens simply expire.
// @Produce json
// @Success 200 {object} object{status=bool,message=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionUserKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Logout failed."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out successfully!"})
}

// @Summary Get the caller's profile
// @Produce json
// @Success 200 {object} object{id=string,username=string,full_name=string,email=string,profpict=string,role=string,is_active=bool,is_staff=bool}
// @Failure 401 {object} object{status=string,message=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":        user.ID.String(),
			"username":  user.Username,
			"full_name": user.FullName,
			"email":     user.Email,
			"profpict":  user.ProfPict,
			"role":      user.Role,
			"is_active": user.IsActive,
			"is_staff":  user.IsStaff(),
		})
	}
}

type profileEditRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	ProfPict *string `json:"profpict"`
}

// @Summary Edit the caller's profile
// @Accept json
// @Produce json
// @Param body body profileEditRequest true "Fields to update"
// @Success 200 {object} object{status=string,message=string,user=object}
// @Failure 401 {object} object{status=string,message=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}

		var req profileEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}

		// Missing fields keep their current value so a partial edit can't
		// wipe data.
		if req.FullName != nil {
			user.FullName = *req.FullName
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.ProfPict != nil {
			user.ProfPict = *req.ProfPict
		}
		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Profile updated successfully!",
			"user": gin.H{
				"username":  user.Username,
				"full_name": user.FullName,
				"email":     user.Email,
				"profpict":  user.ProfPict,
			},
		})
	}
}

// @Summary Check whether the caller is an admin
// @Produce json
// @Success 200 {object} object{is_admin=bool}
// @Router /auth/is-admin [get]
// @Security ApiKeyAuth
func IsAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.OptionalUser(c, db)
		c.JSON(http.StatusOK, gin.H{"is_admin": user != nil && user.IsStaff()})
	}
}
