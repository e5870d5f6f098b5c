package votes

import (
	models "PitchPerfect/models/postgres"
	"PitchPerfect/services/choices"
	"PitchPerfect/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var seasonVotes = choices.Binding[models.ClubVote, string, uuid.UUID]{
	ScopeColumn:     "season",
	CandidateColumn: "club_id",
	Candidate:       func(v *models.ClubVote) uuid.UUID { return v.ClubID },
	SetCandidate:    func(v *models.ClubVote, clubID uuid.UUID) { v.ClubID = clubID },
	NewRow: func(userID uuid.UUID, season string, clubID uuid.UUID) models.ClubVote {
		return models.ClubVote{ID: uuid.New(), UserID: userID, ClubID: clubID, Season: season}
	},
}

// SubmitSeasonVote records the caller's club-of-the-season vote. The season
// must be one of the fixed votable seasons, the club must exist.
func SubmitSeasonVote(db *gorm.DB, userID uuid.UUID, season string, clubID uuid.UUID) (choices.Result[uuid.UUID], *models.Club, error) {
	if !models.ValidSeason(season) {
		return choices.Result[uuid.UUID]{}, nil, &NotFoundError{Kind: "season", ID: season}
	}
	club, err := utils.CheckClubExists(db, clubID)
	if err != nil {
		return choices.Result[uuid.UUID]{}, nil, asNotFound(err, "club", clubID.String())
	}
	res, err := choices.Submit(db, seasonVotes, userID, season, clubID)
	if err != nil {
		return choices.Result[uuid.UUID]{}, nil, err
	}
	return res, club, nil
}

// ClearSeasonVote removes the caller's vote for a season (idempotent).
func ClearSeasonVote(db *gorm.DB, userID uuid.UUID, season string) (choices.Result[uuid.UUID], error) {
	if !models.ValidSeason(season) {
		return choices.Result[uuid.UUID]{}, &NotFoundError{Kind: "season", ID: season}
	}
	return choices.Clear(db, seasonVotes, userID, season)
}

// UserSeasonVote returns the club the caller voted for in a season, or nil.
func UserSeasonVote(db *gorm.DB, userID uuid.UUID, season string) (*uuid.UUID, error) {
	if !models.ValidSeason(season) {
		return nil, &NotFoundError{Kind: "season", ID: season}
	}
	return choices.UserChoice(db, seasonVotes, userID, season)
}

// SeasonVoteResults tallies a season's club votes with club display data
// joined in, ordered by count descending.
func SeasonVoteResults(db *gorm.DB, season string) ([]PickResult, int64, error) {
	if !models.ValidSeason(season) {
		return nil, 0, &NotFoundError{Kind: "season", ID: season}
	}
	dist, err := choices.Tally(db, seasonVotes, season, nil)
	if err != nil {
		return nil, 0, err
	}
	results, err := decorateClubEntries(db, dist.Entries)
	if err != nil {
		return nil, 0, err
	}
	return results, dist.Total, nil
}
