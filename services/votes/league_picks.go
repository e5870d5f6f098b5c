// Package votes binds the generic choice register to the three concrete vote
// tables and adds the boundary validation (scope and candidate existence) the
// register itself does not do.
package votes

import (
	"errors"

	models "PitchPerfect/models/postgres"
	"PitchPerfect/services/choices"
	"PitchPerfect/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var leaguePicks = choices.Binding[models.LeaguePick, uuid.UUID, uuid.UUID]{
	ScopeColumn:     "league_id",
	CandidateColumn: "club_id",
	Candidate:       func(p *models.LeaguePick) uuid.UUID { return p.ClubID },
	SetCandidate:    func(p *models.LeaguePick, clubID uuid.UUID) { p.ClubID = clubID },
	NewRow: func(userID, leagueID, clubID uuid.UUID) models.LeaguePick {
		return models.LeaguePick{ID: uuid.New(), UserID: userID, LeagueID: leagueID, ClubID: clubID}
	},
}

// PickResult is one club's share of a league's picks, with display data joined
// in for the API response.
type PickResult struct {
	ClubID     uuid.UUID `json:"club_id"`
	ClubName   string    `json:"club_name"`
	LogoURL    string    `json:"logo_url"`
	VoteCount  int64     `json:"vote_count"`
	Percentage float64   `json:"percentage"`
}

// SubmitLeaguePick records the caller's favorite club for a league. The club
// does not have to belong to that league; cross-league favorites are allowed
// on purpose (matching the portal's observed behavior).
func SubmitLeaguePick(db *gorm.DB, userID, leagueID, clubID uuid.UUID) (choices.Result[uuid.UUID], *models.Club, error) {
	if _, err := utils.CheckLeagueExists(db, leagueID); err != nil {
		return choices.Result[uuid.UUID]{}, nil, asNotFound(err, "league", leagueID.String())
	}
	club, err := utils.CheckClubExists(db, clubID)
	if err != nil {
		return choices.Result[uuid.UUID]{}, nil, asNotFound(err, "club", clubID.String())
	}
	res, err := choices.Submit(db, leaguePicks, userID, leagueID, clubID)
	if err != nil {
		return choices.Result[uuid.UUID]{}, nil, err
	}
	return res, club, nil
}

// ClearLeaguePick removes the caller's pick for a league. Clearing when no
// pick exists succeeds (idempotent).
func ClearLeaguePick(db *gorm.DB, userID, leagueID uuid.UUID) (choices.Result[uuid.UUID], error) {
	if _, err := utils.CheckLeagueExists(db, leagueID); err != nil {
		return choices.Result[uuid.UUID]{}, asNotFound(err, "league", leagueID.String())
	}
	return choices.Clear(db, leaguePicks, userID, leagueID)
}

// UserLeaguePick returns the club the caller picked for a league, or nil.
func UserLeaguePick(db *gorm.DB, userID, leagueID uuid.UUID) (*uuid.UUID, error) {
	return choices.UserChoice(db, leaguePicks, userID, leagueID)
}

// UserLeaguePicks loads all of a user's picks with clubs preloaded, keyed by
// league id. Used by the directory page payload.
func UserLeaguePicks(db *gorm.DB, userID uuid.UUID) (map[uuid.UUID]models.LeaguePick, error) {
	var rows []models.LeaguePick
	if err := db.Preload("Club").Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	picks := make(map[uuid.UUID]models.LeaguePick, len(rows))
	for _, pick := range rows {
		picks[pick.LeagueID] = pick
	}
	return picks, nil
}

// LeaguePickResults tallies a league's picks and joins in club display data,
// ordered by count descending.
func LeaguePickResults(db *gorm.DB, leagueID uuid.UUID) ([]PickResult, int64, error) {
	if _, err := utils.CheckLeagueExists(db, leagueID); err != nil {
		return nil, 0, asNotFound(err, "league", leagueID.String())
	}
	dist, err := choices.Tally(db, leaguePicks, leagueID, nil)
	if err != nil {
		return nil, 0, err
	}
	results, err := decorateClubEntries(db, dist.Entries)
	if err != nil {
		return nil, 0, err
	}
	return results, dist.Total, nil
}

// decorateClubEntries resolves club names and logos for club-candidate tallies.
func decorateClubEntries(db *gorm.DB, entries []choices.Entry[uuid.UUID]) ([]PickResult, error) {
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Candidate)
	}
	clubsByID := make(map[uuid.UUID]models.Club, len(ids))
	if len(ids) > 0 {
		var clubs []models.Club
		if err := db.Where("id IN (?)", ids).Find(&clubs).Error; err != nil {
			return nil, err
		}
		for _, club := range clubs {
			clubsByID[club.ID] = club
		}
	}
	results := make([]PickResult, 0, len(entries))
	for _, e := range entries {
		club := clubsByID[e.Candidate]
		results = append(results, PickResult{
			ClubID:     e.Candidate,
			ClubName:   club.Name,
			LogoURL:    club.LogoURL,
			VoteCount:  e.Count,
			Percentage: e.Percentage,
		})
	}
	return results, nil
}

// asNotFound maps a missing record onto the service error taxonomy; other
// database errors pass through untouched.
func asNotFound(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return err
}
