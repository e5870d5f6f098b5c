// Package choices implements the single-choice-per-scope rule shared by league
// picks, match predictions and club-of-the-season votes: a user holds at most
// one choice per scope, a repeated submission overwrites it, and results are
// tallied on demand.
package choices

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Status tags the outcome of a register operation so callers can pick the right
// confirmation message. The distinction is part of the API contract.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusCleared   Status = "cleared"
)

// Binding describes how one choice table maps onto the generic register:
// T is the GORM row type, S the scope key type (league/match uuid or season
// string) and C the candidate type (club uuid or outcome enum).
type Binding[T any, S any, C comparable] struct {
	// ScopeColumn and CandidateColumn are the table's column names.
	ScopeColumn     string
	CandidateColumn string

	// Candidate reads the chosen candidate off a row.
	Candidate func(*T) C
	// SetCandidate overwrites the chosen candidate on a row.
	SetCandidate func(*T, C)
	// NewRow builds a fresh row for a first-time choice.
	NewRow func(userID uuid.UUID, scope S, candidate C) T
}

// Result reports what Submit or Clear did.
type Result[C comparable] struct {
	Status    Status
	Candidate C
	// Existed is false when Clear found nothing to delete.
	Existed bool
}

// Submit upserts the caller's choice for one scope. First submission creates
// the row, a different candidate overwrites it in place, the same candidate is
// an idempotent no-op reported as StatusUnchanged.
//
// The read-then-write sequence is not atomic; if a concurrent first submission
// wins the race, the unique constraint rejects the create and it is retried
// once as an update instead of surfacing a 500.
func Submit[T any, S any, C comparable](db *gorm.DB, b Binding[T, S, C], userID uuid.UUID, scope S, candidate C) (Result[C], error) {
	res, err := submit(db, b, userID, scope, candidate, true)
	return res, err
}

func submit[T any, S any, C comparable](db *gorm.DB, b Binding[T, S, C], userID uuid.UUID, scope S, candidate C, retry bool) (Result[C], error) {
	var row T
	err := db.Where("user_id = ? AND "+b.ScopeColumn+" = ?", userID, scope).First(&row).Error

	switch {
	case err == nil:
		if b.Candidate(&row) == candidate {
			return Result[C]{Status: StatusUnchanged, Candidate: candidate, Existed: true}, nil
		}
		b.SetCandidate(&row, candidate)
		if err := db.Save(&row).Error; err != nil {
			return Result[C]{}, err
		}
		return Result[C]{Status: StatusUpdated, Candidate: candidate, Existed: true}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		fresh := b.NewRow(userID, scope, candidate)
		if err := db.Create(&fresh).Error; err != nil {
			if retry && isUniqueViolation(err) {
				return submit(db, b, userID, scope, candidate, false)
			}
			return Result[C]{}, err
		}
		return Result[C]{Status: StatusCreated, Candidate: candidate}, nil

	default:
		return Result[C]{}, err
	}
}

// Clear deletes the caller's choice for one scope. Clearing a scope with no
// existing choice is an idempotent success: StatusCleared with Existed false.
func Clear[T any, S any, C comparable](db *gorm.DB, b Binding[T, S, C], userID uuid.UUID, scope S) (Result[C], error) {
	var row T
	err := db.Where("user_id = ? AND "+b.ScopeColumn+" = ?", userID, scope).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Result[C]{Status: StatusCleared}, nil
	}
	if err != nil {
		return Result[C]{}, err
	}
	if err := db.Delete(&row).Error; err != nil {
		return Result[C]{}, err
	}
	return Result[C]{Status: StatusCleared, Candidate: b.Candidate(&row), Existed: true}, nil
}

// UserChoice returns the caller's current candidate for a scope, or nil if the
// user has not chosen.
func UserChoice[T any, S any, C comparable](db *gorm.DB, b Binding[T, S, C], userID uuid.UUID, scope S) (*C, error) {
	var row T
	err := db.Where("user_id = ? AND "+b.ScopeColumn+" = ?", userID, scope).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	candidate := b.Candidate(&row)
	return &candidate, nil
}

// isUniqueViolation recognizes a unique-constraint error from either GORM's
// translated sentinel or the raw postgres error code.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
