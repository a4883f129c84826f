package storage_test

import (
	"context"
	"testing"
	"time"

	"event-registration/models"
	"event-registration/storage"
	"event-registration/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertRegistration(t *testing.T, store *storage.RegistrationStore, email, eventDate string, eventID int64, created time.Time) int64 {
	t.Helper()
	id, err := store.Insert(context.Background(), models.Registration{
		FullName:      "Jane Doe",
		Email:         email,
		CollegeName:   "State College",
		Department:    "Physics",
		EventCategory: "Hackathon",
		EventDate:     eventDate,
		EventID:       eventID,
		Created:       created,
	})
	require.NoError(t, err)
	return id
}

func TestExistsMatchesExactEmailAndDate(t *testing.T) {
	store := storage.NewRegistrationStore(testdb.New(t))
	ctx := context.Background()

	insertRegistration(t, store, "jane@example.com", "2025-03-01", 1, time.Now())

	ok, err := store.Exists(ctx, "jane@example.com", "2025-03-01")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "jane@example.com", "2025-03-02")
	require.NoError(t, err)
	assert.False(t, ok)

	// Matching is deliberately case-sensitive; no normalization happens.
	ok, err = store.Exists(ctx, "JANE@example.com", "2025-03-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertMapsUniqueViolationToDuplicate(t *testing.T) {
	store := storage.NewRegistrationStore(testdb.New(t))
	ctx := context.Background()

	insertRegistration(t, store, "jane@example.com", "2025-03-01", 1, time.Now())

	_, err := store.Insert(ctx, models.Registration{
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		CollegeName:   "State College",
		Department:    "Physics",
		EventCategory: "Hackathon",
		EventDate:     "2025-03-01",
		EventID:       2,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateRegistration)

	// Same email on another date is fine.
	insertRegistration(t, store, "jane@example.com", "2025-04-01", 2, time.Now())
}

func TestListOrdersNewestFirst(t *testing.T) {
	store := storage.NewRegistrationStore(testdb.New(t))
	ctx := context.Background()

	base := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	first := insertRegistration(t, store, "a@example.com", "2025-03-01", 1, base)
	second := insertRegistration(t, store, "b@example.com", "2025-03-01", 1, base.Add(time.Minute))
	third := insertRegistration(t, store, "c@example.com", "2025-03-01", 1, base.Add(2*time.Minute))

	rows, err := store.List(ctx, models.AdminFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int64{third, second, first}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestListAndCountShareFilterSemantics(t *testing.T) {
	store := storage.NewRegistrationStore(testdb.New(t))
	ctx := context.Background()

	now := time.Now()
	insertRegistration(t, store, "a@example.com", "2025-03-01", 1, now)
	insertRegistration(t, store, "b@example.com", "2025-03-01", 2, now)
	insertRegistration(t, store, "c@example.com", "2025-04-01", 1, now)

	cases := []struct {
		name   string
		filter models.AdminFilter
		want   int
	}{
		{"no filter", models.AdminFilter{}, 3},
		{"by date", models.AdminFilter{EventDate: "2025-03-01"}, 2},
		{"by event", models.AdminFilter{EventID: 1}, 2},
		{"by both", models.AdminFilter{EventDate: "2025-03-01", EventID: 1}, 1},
		{"no match", models.AdminFilter{EventDate: "2026-01-01"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := store.List(ctx, tc.filter)
			require.NoError(t, err)
			count, err := store.Count(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, rows, tc.want)
			assert.Equal(t, tc.want, count)
		})
	}
}
