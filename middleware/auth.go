package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	models "PitchPerfect/models/postgres"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// SessionUserKey is where the web login stores the username in the cookie
// session; UserContextKey is where AuthRequired leaves it for handlers.
const (
	SessionUserKey = "Username"
	UserContextKey = "username"
)

const tokenLifetime = 72 * time.Hour

var ErrNoCredentials = errors.New("no credentials supplied")

func jwtKey() []byte {
	return []byte(os.Getenv("JWT_KEY"))
}

// GenerateToken issues a signed bearer token for the mobile client.
func GenerateToken(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// JWTDecoder extracts the username from the Authorization bearer token.
func JWTDecoder(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrNoCredentials
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// UsernameFromRequest resolves the caller's identity from either the bearer
// token (mobile client) or the cookie session (web client). Read endpoints use
// it directly so anonymous access still works.
func UsernameFromRequest(c *gin.Context) (string, error) {
	if username, err := JWTDecoder(c); err == nil && username != "" {
		return username, nil
	}
	session := sessions.Default(c)
	if v := session.Get(SessionUserKey); v != nil {
		if username, ok := v.(string); ok && username != "" {
			return username, nil
		}
	}
	return "", ErrNoCredentials
}

// AuthRequired rejects requests without a valid token or session.
func AuthRequired(c *gin.Context) {
	username, err := UsernameFromRequest(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
		return
	}
	c.Set(UserContextKey, username)
	c.Next()
}

// AdminRequired rejects authenticated callers without the admin role. Must run
// after AuthRequired.
func AdminRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c, db)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		if !user.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser loads the authenticated caller's account row.
func CurrentUser(c *gin.Context, db *gorm.DB) (*models.User, error) {
	username := c.GetString(UserContextKey)
	if username == "" {
		var err error
		username, err = UsernameFromRequest(c)
		if err != nil {
			return nil, err
		}
	}
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// OptionalUser is CurrentUser for endpoints that also serve anonymous readers;
// it returns nil without error when no credentials are present.
func OptionalUser(c *gin.Context, db *gorm.DB) *models.User {
	user, err := CurrentUser(c, db)
	if err != nil {
		return nil
	}
	return user
}
