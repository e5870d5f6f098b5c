package utils

import "fmt"

// Cache key layout for vote tallies, one key per scope instance.

// FormatLeaguePicksKey builds the key for a league's pick results.
// Key format: "tally:league:{id}"
func FormatLeaguePicksKey(leagueID string) string {
	return fmt.Sprintf("tally:league:%s", leagueID)
}

// FormatMatchVotesKey builds the key for a match's prediction results.
// Key format: "tally:match:{id}"
func FormatMatchVotesKey(matchID string) string {
	return fmt.Sprintf("tally:match:%s", matchID)
}

// FormatSeasonVotesKey builds the key for a season's club-vote results.
// Key format: "tally:season:{season}"
func FormatSeasonVotesKey(season string) string {
	return fmt.Sprintf("tally:season:%s", season)
}
