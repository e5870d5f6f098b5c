package choices

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("GORM translated sentinel", func(t *testing.T) {
		assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	})

	t.Run("Wrapped sentinel", func(t *testing.T) {
		wrapped := errors.Join(errors.New("create failed"), gorm.ErrDuplicatedKey)
		assert.True(t, isUniqueViolation(wrapped))
	})

	t.Run("Raw postgres unique violation", func(t *testing.T) {
		assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	})

	t.Run("Other postgres error", func(t *testing.T) {
		// 23503 is a foreign key violation; must not trigger the retry.
		assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	})

	t.Run("Unrelated error", func(t *testing.T) {
		assert.False(t, isUniqueViolation(errors.New("connection reset")))
		assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
	})
}

func TestStatusValues(t *testing.T) {
	// The string values are part of the API contract.
	assert.Equal(t, "created", string(StatusCreated))
	assert.Equal(t, "updated", string(StatusUpdated))
	assert.Equal(t, "unchanged", string(StatusUnchanged))
	assert.Equal(t, "cleared", string(StatusCleared))
}
