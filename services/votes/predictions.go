package votes

import (
	models "PitchPerfect/models/postgres"
	"PitchPerfect/services/choices"
	"PitchPerfect/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var predictions = choices.Binding[models.MatchVote, uuid.UUID, models.MatchOutcome]{
	ScopeColumn:     "match_id",
	CandidateColumn: "prediction",
	Candidate:       func(v *models.MatchVote) models.MatchOutcome { return v.Prediction },
	SetCandidate:    func(v *models.MatchVote, o models.MatchOutcome) { v.Prediction = o },
	NewRow: func(userID, matchID uuid.UUID, o models.MatchOutcome) models.MatchVote {
		return models.MatchVote{ID: uuid.New(), UserID: userID, MatchID: matchID, Prediction: o}
	},
}

// SubmitPrediction records the caller's outcome prediction for a match.
// The outcome must be one of the three fixed values.
func SubmitPrediction(db *gorm.DB, userID, matchID uuid.UUID, outcome models.MatchOutcome) (choices.Result[models.MatchOutcome], error) {
	if !models.ValidOutcome(outcome) {
		return choices.Result[models.MatchOutcome]{}, ErrInvalidCandidate
	}
	if _, err := utils.CheckMatchExists(db, matchID); err != nil {
		return choices.Result[models.MatchOutcome]{}, asNotFound(err, "match", matchID.String())
	}
	return choices.Submit(db, predictions, userID, matchID, outcome)
}

// ClearPrediction removes the caller's prediction for a match (idempotent).
func ClearPrediction(db *gorm.DB, userID, matchID uuid.UUID) (choices.Result[models.MatchOutcome], error) {
	if _, err := utils.CheckMatchExists(db, matchID); err != nil {
		return choices.Result[models.MatchOutcome]{}, asNotFound(err, "match", matchID.String())
	}
	return choices.Clear(db, predictions, userID, matchID)
}

// UserPrediction returns the caller's current prediction for a match, or nil.
func UserPrediction(db *gorm.DB, userID, matchID uuid.UUID) (*models.MatchOutcome, error) {
	return choices.UserChoice(db, predictions, userID, matchID)
}

// PredictionResults tallies a match's votes. All three outcomes are always
// present in the distribution, with zero counts when nobody picked them,
// because the candidate set is a closed enum.
func PredictionResults(db *gorm.DB, matchID uuid.UUID) (choices.Distribution[models.MatchOutcome], error) {
	if _, err := utils.CheckMatchExists(db, matchID); err != nil {
		return choices.Distribution[models.MatchOutcome]{}, asNotFound(err, "match", matchID.String())
	}
	return choices.Tally(db, predictions, matchID, models.MatchOutcomes)
}

// VoteSummary flattens a prediction distribution into the percentage map the
// match endpoints return ({"home_win": 50.0, ...}).
func VoteSummary(dist choices.Distribution[models.MatchOutcome]) map[string]float64 {
	summary := make(map[string]float64, len(dist.Entries))
	for _, e := range dist.Entries {
		summary[string(e.Candidate)] = e.Percentage
	}
	return summary
}

// VoteCounts flattens a prediction distribution into per-outcome counts.
func VoteCounts(dist choices.Distribution[models.MatchOutcome]) map[string]int64 {
	counts := make(map[string]int64, len(dist.Entries))
	for _, e := range dist.Entries {
		counts[string(e.Candidate)] = e.Count
	}
	return counts
}
