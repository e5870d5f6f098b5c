package choices

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// colorChoice is a throwaway table exercising the register against a real
// Postgres unique index, without dragging in the application schema.
type colorChoice struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_color_choices_user_poll"`
	PollID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_color_choices_user_poll"`
	Color  string    `gorm:"size:20;not null"`
}

var colorBinding = Binding[colorChoice, uuid.UUID, string]{
	ScopeColumn:     "poll_id",
	CandidateColumn: "color",
	Candidate:       func(c *colorChoice) string { return c.Color },
	SetCandidate:    func(c *colorChoice, color string) { c.Color = color },
	NewRow: func(userID, pollID uuid.UUID, color string) colorChoice {
		return colorChoice{ID: uuid.New(), UserID: userID, PollID: pollID, Color: color}
	},
}

func testDB(t *testing.T) *gorm.DB {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		t.Skip("POSTGRES_HOST not set, skipping database tests")
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		host, port, os.Getenv("POSTGRES_DATABASE"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(&colorChoice{}))
	require.NoError(t, db.AutoMigrate(&colorChoice{}))
	t.Cleanup(func() { db.Migrator().DropTable(&colorChoice{}) })
	return db
}

func TestRegisterLifecycle(t *testing.T) {
	db := testDB(t)
	user := uuid.New()
	poll := uuid.New()

	t.Run("First submission creates", func(t *testing.T) {
		res, err := Submit(db, colorBinding, user, poll, "red")
		require.NoError(t, err)
		assert.Equal(t, StatusCreated, res.Status)
		assert.Equal(t, "red", res.Candidate)
	})

	t.Run("Same candidate is unchanged", func(t *testing.T) {
		res, err := Submit(db, colorBinding, user, poll, "red")
		require.NoError(t, err)
		assert.Equal(t, StatusUnchanged, res.Status)
		assert.True(t, res.Existed)
	})

	t.Run("Different candidate overwrites in place", func(t *testing.T) {
		res, err := Submit(db, colorBinding, user, poll, "blue")
		require.NoError(t, err)
		assert.Equal(t, StatusUpdated, res.Status)

		var count int64
		require.NoError(t, db.Model(&colorChoice{}).
			Where("user_id = ? AND poll_id = ?", user, poll).Count(&count).Error)
		assert.Equal(t, int64(1), count, "overwrite must not add a row")
	})

	t.Run("UserChoice reflects the overwrite", func(t *testing.T) {
		choice, err := UserChoice(db, colorBinding, user, poll)
		require.NoError(t, err)
		require.NotNil(t, choice)
		assert.Equal(t, "blue", *choice)
	})

	t.Run("Clear deletes the row", func(t *testing.T) {
		res, err := Clear(db, colorBinding, user, poll)
		require.NoError(t, err)
		assert.Equal(t, StatusCleared, res.Status)
		assert.True(t, res.Existed)

		choice, err := UserChoice(db, colorBinding, user, poll)
		require.NoError(t, err)
		assert.Nil(t, choice)
	})

	t.Run("Clearing again still succeeds", func(t *testing.T) {
		res, err := Clear(db, colorBinding, user, poll)
		require.NoError(t, err)
		assert.Equal(t, StatusCleared, res.Status)
		assert.False(t, res.Existed)
	})
}

func TestRegisterScopeIsolation(t *testing.T) {
	db := testDB(t)
	user := uuid.New()
	pollA := uuid.New()
	pollB := uuid.New()

	_, err := Submit(db, colorBinding, user, pollA, "red")
	require.NoError(t, err)
	_, err = Submit(db, colorBinding, user, pollB, "green")
	require.NoError(t, err)

	// One choice per scope, not one choice globally.
	choiceA, err := UserChoice(db, colorBinding, user, pollA)
	require.NoError(t, err)
	require.NotNil(t, choiceA)
	assert.Equal(t, "red", *choiceA)

	choiceB, err := UserChoice(db, colorBinding, user, pollB)
	require.NoError(t, err)
	require.NotNil(t, choiceB)
	assert.Equal(t, "green", *choiceB)

	_, err = Clear(db, colorBinding, user, pollA)
	require.NoError(t, err)

	choiceB, err = UserChoice(db, colorBinding, user, pollB)
	require.NoError(t, err)
	assert.NotNil(t, choiceB, "clearing one scope must not touch another")
}

func TestRegisterTally(t *testing.T) {
	db := testDB(t)
	poll := uuid.New()

	for i := 0; i < 2; i++ {
		_, err := Submit(db, colorBinding, uuid.New(), poll, "red")
		require.NoError(t, err)
	}
	_, err := Submit(db, colorBinding, uuid.New(), poll, "blue")
	require.NoError(t, err)

	t.Run("Open candidate set", func(t *testing.T) {
		dist, err := Tally(db, colorBinding, poll, nil)
		require.NoError(t, err)

		assert.Equal(t, int64(3), dist.Total)
		require.Len(t, dist.Entries, 2)
		assert.Equal(t, "red", dist.Entries[0].Candidate)
		assert.Equal(t, int64(2), dist.Entries[0].Count)
		assert.Equal(t, 66.7, dist.Entries[0].Percentage)
		assert.Equal(t, 33.3, dist.Entries[1].Percentage)
	})

	t.Run("Closed candidate set pads zeros", func(t *testing.T) {
		dist, err := Tally(db, colorBinding, poll, []string{"red", "blue", "green"})
		require.NoError(t, err)

		require.Len(t, dist.Entries, 3)
		assert.Equal(t, "green", dist.Entries[2].Candidate)
		assert.Equal(t, int64(0), dist.Entries[2].Count)
		assert.Equal(t, 0.0, dist.Entries[2].Percentage)
	})

	t.Run("Unknown scope tallies empty", func(t *testing.T) {
		dist, err := Tally(db, colorBinding, uuid.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), dist.Total)
		assert.Empty(t, dist.Entries)
	})
}

func TestRegisterDuplicateCreateRace(t *testing.T) {
	db := testDB(t)
	user := uuid.New()
	poll := uuid.New()

	// Simulate losing the race: the row appears between the register's read
	// and its create. The unique index rejects the create and the retry turns
	// it into an update.
	row := colorBinding.NewRow(user, poll, "red")
	require.NoError(t, db.Create(&row).Error)

	fresh := colorBinding.NewRow(user, poll, "blue")
	err := db.Create(&fresh).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	res, err := Submit(db, colorBinding, user, poll, "blue")
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, res.Status)
}
