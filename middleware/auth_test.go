package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-session-key"))
	r.Use(sessions.Sessions("test_session", store))
	return r
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_KEY", "test-signing-key")

	token, err := GenerateToken("alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	r := testRouter()
	r.GET("/whoami", func(c *gin.Context) {
		username, err := JWTDecoder(c)
		assert.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"username": username})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestJWTDecoderRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_KEY", "test-signing-key")

	r := testRouter()
	var decodeErr error
	r.GET("/whoami", func(c *gin.Context) {
		_, decodeErr = JWTDecoder(c)
		c.Status(http.StatusOK)
	})

	t.Run("No header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.ErrorIs(t, decodeErr, ErrNoCredentials)
	})

	t.Run("Garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.Error(t, decodeErr)
	})

	t.Run("Token signed with a different key", func(t *testing.T) {
		token, err := GenerateToken("alice")
		assert.NoError(t, err)

		t.Setenv("JWT_KEY", "another-key")
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.Error(t, decodeErr)
	})
}

func TestAuthRequired(t *testing.T) {
	t.Setenv("JWT_KEY", "test-signing-key")

	r := testRouter()
	r.GET("/auth/ping", AuthRequired, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(UserContextKey)})
	})

	t.Run("Without credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not logged in")
	})

	t.Run("With a valid bearer token", func(t *testing.T) {
		token, err := GenerateToken("bob")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "bob")
	})
}

func TestUsernameFromSession(t *testing.T) {
	t.Setenv("JWT_KEY", "test-signing-key")

	r := testRouter()
	r.POST("/fake-login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionUserKey, "carol")
		assert.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	r.GET("/auth/ping", AuthRequired, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(UserContextKey)})
	})

	login := httptest.NewRequest(http.MethodPost, "/fake-login", nil)
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, login)
	assert.Equal(t, http.StatusOK, loginW.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/ping", nil)
	for _, cookie := range loginW.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "carol")
}
