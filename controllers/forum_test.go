package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostsSeparatesCountFromFind(t *testing.T) {
	db := dryRunDB(t)
	captured := captureQuerySQL(t, db)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/forum/posts", ListPosts(db))

	req := httptest.NewRequest(http.MethodGet, "/forum/posts?type=discussion&page=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.GreaterOrEqual(t, len(*captured), 2)
	countSQL := (*captured)[0]
	findSQL := (*captured)[len(*captured)-1]

	assert.Contains(t, countSQL, "count(*)")
	assert.Contains(t, countSQL, "post_type")

	// The page query must be a fresh SELECT over posts, not a re-run of the
	// count statement the chain already executed.
	assert.NotContains(t, findSQL, "count(")
	assert.Contains(t, findSQL, `FROM "posts"`)
	assert.Contains(t, findSQL, "post_type")
	assert.Contains(t, findSQL, "created_at DESC")
	assert.Contains(t, findSQL, "LIMIT")
	assert.Contains(t, findSQL, "OFFSET")
}

func TestListPostsFiltersReachTheFind(t *testing.T) {
	db := dryRunDB(t)
	captured := captureQuerySQL(t, db)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/forum/posts", ListPosts(db))

	req := httptest.NewRequest(http.MethodGet, "/forum/posts?league_tag=PremierLeague&search=derby", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.GreaterOrEqual(t, len(*captured), 2)
	findSQL := (*captured)[len(*captured)-1]
	assert.Contains(t, findSQL, "league_tags ILIKE")
	assert.Contains(t, findSQL, "title ILIKE")
}
