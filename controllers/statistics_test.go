package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	models "PitchPerfect/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds statements without touching a server, so the generated SQL
// can be asserted on directly.
func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// captureQuerySQL records every query statement the db builds.
func captureQuerySQL(t *testing.T, db *gorm.DB) *[]string {
	captured := &[]string{}
	err := db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return captured
}

func TestStatLeadersQueryLimit(t *testing.T) {
	db := dryRunDB(t)

	t.Run("Zero means the whole list", func(t *testing.T) {
		var rows []models.TeamStatistics
		tx := statLeadersQuery(db, models.DefaultSeason, "scored_per_match", 0).Find(&rows)
		require.NoError(t, tx.Error)

		sql := tx.Statement.SQL.String()
		assert.Contains(t, sql, `FROM "team_statistics"`)
		assert.Contains(t, sql, "scored_per_match DESC")
		assert.NotContains(t, sql, "LIMIT")
	})

	t.Run("Positive limit keeps its clause", func(t *testing.T) {
		var rows []models.TeamStatistics
		tx := statLeadersQuery(db, models.DefaultSeason, "possession_avg", statsTopN).Find(&rows)
		require.NoError(t, tx.Error)

		assert.Contains(t, tx.Statement.SQL.String(), "LIMIT")
		assert.Contains(t, tx.Statement.Vars, statsTopN)
	})
}

func TestLatestRankingsQueryLimit(t *testing.T) {
	db := dryRunDB(t)

	t.Run("Zero means the whole table", func(t *testing.T) {
		var rows []models.ClubRanking
		tx := latestRankingsQuery(db, 0).Find(&rows)
		require.NoError(t, tx.Error)

		sql := tx.Statement.SQL.String()
		assert.Contains(t, sql, `FROM "club_rankings"`)
		assert.NotContains(t, sql, "LIMIT")
	})

	t.Run("Top-N keeps its clause", func(t *testing.T) {
		var rows []models.ClubRanking
		tx := latestRankingsQuery(db, statsTopN).Find(&rows)
		require.NoError(t, tx.Error)
		assert.Contains(t, tx.Statement.SQL.String(), "LIMIT")
	})
}

func TestGetSpecificStatFetchesWholeCategory(t *testing.T) {
	db := dryRunDB(t)
	captured := captureQuerySQL(t, db)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/statistics/:stat_type", GetSpecificStat(db))

	req := httptest.NewRequest(http.MethodGet, "/statistics/goals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NotEmpty(t, *captured)
	sql := (*captured)[0]
	assert.Contains(t, sql, `FROM "team_statistics"`)
	assert.NotContains(t, sql, "LIMIT", "the category list must not be truncated")
}

func TestGroupAwardsByClub(t *testing.T) {
	arsenal := &models.Club{ID: uuid.New(), Name: "Arsenal", LogoURL: "arsenal.png"}
	chelsea := &models.Club{ID: uuid.New(), Name: "Chelsea", LogoURL: "chelsea.png"}
	awarded := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	rows := []models.Award{
		{ID: uuid.New(), Club: chelsea, AwardType: models.AwardTeamOfTheMonth, Title: "Team of the Month", Season: "2025/26", DateAwarded: awarded},
		{ID: uuid.New(), Club: arsenal, AwardType: models.AwardTeamOfTheYear, Title: "Team of the Year", Season: "2025/26", DateAwarded: awarded},
		{ID: uuid.New(), Club: nil, AwardType: models.AwardOther, Title: "Fair Play", Season: "2025/26", DateAwarded: awarded},
		{ID: uuid.New(), Club: arsenal, AwardType: models.AwardTeamOfTheWeek, Title: "Team of the Week", Season: "2025/26", DateAwarded: awarded},
	}

	entries := groupAwardsByClub(rows)

	// One entry per club; the club-less award is dropped.
	require.Len(t, entries, 2)

	// Most decorated club first.
	assert.Equal(t, arsenal.Name, entries[0]["club_name"])
	assert.Equal(t, 2, entries[0]["award_count"])
	assert.Equal(t, chelsea.Name, entries[1]["club_name"])
	assert.Equal(t, 1, entries[1]["award_count"])

	assert.Len(t, entries[0]["awards"], 2)
	assert.Len(t, entries[1]["awards"], 1)

	nested := entries[0]["awards"].([]gin.H)
	assert.Equal(t, "Team of the Year", nested[0]["title"])
	assert.Equal(t, "2026-05-20", nested[0]["date_awarded"])
}

func TestGroupAwardsByClubEmpty(t *testing.T) {
	assert.Empty(t, groupAwardsByClub(nil))
	assert.Empty(t, groupAwardsByClub([]models.Award{
		{ID: uuid.New(), Club: nil, Title: "Fair Play"},
	}))
}
