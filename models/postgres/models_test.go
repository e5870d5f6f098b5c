package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOutcome(t *testing.T) {
	assert.True(t, ValidOutcome(OutcomeHomeWin))
	assert.True(t, ValidOutcome(OutcomeAwayWin))
	assert.True(t, ValidOutcome(OutcomeDraw))

	assert.False(t, ValidOutcome(""))
	assert.False(t, ValidOutcome("home"))
	assert.False(t, ValidOutcome("HOME_WIN"))
}

func TestValidSeason(t *testing.T) {
	for _, season := range Seasons {
		assert.True(t, ValidSeason(season))
	}
	assert.True(t, ValidSeason(DefaultSeason))

	assert.False(t, ValidSeason(""))
	assert.False(t, ValidSeason("2022/23"))
	assert.False(t, ValidSeason("2025-26"))
}

func TestValidMatchStatus(t *testing.T) {
	assert.True(t, ValidMatchStatus(MatchUpcoming))
	assert.True(t, ValidMatchStatus(MatchOngoing))
	assert.True(t, ValidMatchStatus(MatchFinished))

	assert.False(t, ValidMatchStatus(""))
	assert.False(t, ValidMatchStatus("cancelled"))
}

func TestPostTags(t *testing.T) {
	t.Run("Tags split and trim", func(t *testing.T) {
		post := Post{LeagueTags: "PremierLeague, LaLiga ,Bundesliga"}
		assert.Equal(t, []string{"PremierLeague", "LaLiga", "Bundesliga"}, post.LeagueTagsList())
	})

	t.Run("Empty segments are dropped", func(t *testing.T) {
		post := Post{ClubTags: "Arsenal,, ,Chelsea"}
		assert.Equal(t, []string{"Arsenal", "Chelsea"}, post.ClubTagsList())
	})

	t.Run("No tags means empty list", func(t *testing.T) {
		post := Post{}
		assert.Empty(t, post.LeagueTagsList())
		assert.Empty(t, post.ClubTagsList())
	})
}

func TestPostIsOfficialNews(t *testing.T) {
	assert.True(t, (&Post{PostType: PostNews}).IsOfficialNews())
	assert.False(t, (&Post{PostType: PostDiscussion}).IsOfficialNews())
}

func TestTeamStatisticsDerived(t *testing.T) {
	t.Run("Matches played and win percentage", func(t *testing.T) {
		stats := TeamStatistics{Wins: 20, Draws: 5, Losses: 5}
		assert.Equal(t, 30, stats.MatchesPlayed())
		assert.Equal(t, 66.7, stats.WinPercentage())
	})

	t.Run("No matches played", func(t *testing.T) {
		stats := TeamStatistics{}
		assert.Equal(t, 0, stats.MatchesPlayed())
		assert.Equal(t, 0.0, stats.WinPercentage())
	})
}

func TestUserIsStaff(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsStaff())
	assert.False(t, (&User{Role: RoleUser}).IsStaff())
	assert.False(t, (&User{}).IsStaff())
}
