package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.sqlite"), internal.NewZapLogger(zap.NewNop().Sugar()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestChild(t *testing.T, s *SQLiteStorage) *internal.Child {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.UpsertUser(ctx, &internal.User{TelegramID: 42, Username: "parent", FirstName: "Pat"}))
	child := &internal.Child{UserID: 42, Name: "Mia", BirthDate: "2024-01-15", Gender: internal.GenderFemale}
	require.NoError(t, s.CreateChild(ctx, child))
	require.NotZero(t, child.ID)
	return child
}

func TestUpsertUserOverwrites(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, &internal.User{TelegramID: 7, Username: "old", FirstName: "Old"}))
	require.NoError(t, s.UpsertUser(ctx, &internal.User{TelegramID: 7, Username: "new", FirstName: "New"}))

	var username, firstName string
	row := s.db.QueryRowContext(ctx, `SELECT username, first_name FROM users WHERE telegram_id = 7`)
	require.NoError(t, row.Scan(&username, &firstName))
	assert.Equal(t, "new", username)
	assert.Equal(t, "New", firstName)

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestChildCRUD(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	child := createTestChild(t, s)

	got, err := s.GetChild(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mia", got.Name)
	assert.Equal(t, "2024-01-15", got.BirthDate)
	assert.Equal(t, internal.GenderFemale, got.Gender)

	child.Name = "Mia Rose"
	child.Gender = internal.GenderFemale
	require.NoError(t, s.UpdateChild(ctx, child))
	got, err = s.GetChild(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mia Rose", got.Name)

	children, err := s.ListChildren(ctx, 42)
	require.NoError(t, err)
	require.Len(t, children, 1)

	require.NoError(t, s.DeleteChild(ctx, child.ID))
	_, err = s.GetChild(ctx, child.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetChild_NotFound(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.GetChild(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	child := createTestChild(t, s)

	// Freshly created child id is immediately usable for a session start.
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	session := &internal.SleepSession{ChildID: child.ID, StartTime: start}
	require.NoError(t, s.StartSession(ctx, session))
	require.NotZero(t, session.ID)
	assert.True(t, session.IsOngoing)

	ongoing, err := s.GetOngoingSession(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, ongoing)
	assert.Equal(t, session.ID, ongoing.ID)
	assert.Nil(t, ongoing.EndTime)
	assert.Nil(t, ongoing.Quality)

	quality := internal.QualityWell
	end := start.Add(2*time.Hour + 30*time.Minute)
	require.NoError(t, s.EndSession(ctx, session.ID, end, &quality))

	ongoing, err = s.GetOngoingSession(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, ongoing)

	sessions, err := s.ListSessions(ctx, child.ID, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].IsOngoing)
	require.NotNil(t, sessions[0].EndTime)
	assert.True(t, sessions[0].EndTime.Equal(end))
	require.NotNil(t, sessions[0].Quality)
	assert.Equal(t, internal.QualityWell, *sessions[0].Quality)
}

func TestEndSession_Idempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	child := createTestChild(t, s)

	session := &internal.SleepSession{ChildID: child.ID, StartTime: time.Now().UTC().Add(-time.Hour)}
	require.NoError(t, s.StartSession(ctx, session))

	end := time.Now().UTC()
	quality := internal.QualityAverage
	require.NoError(t, s.EndSession(ctx, session.ID, end, &quality))
	require.NoError(t, s.EndSession(ctx, session.ID, end, &quality))

	// Ending an id that does not exist is also accepted.
	require.NoError(t, s.EndSession(ctx, 99999, end, nil))

	ongoing, err := s.GetOngoingSession(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, ongoing)
}

func TestListSessions_LimitAndOrder(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	child := createTestChild(t, s)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		session := &internal.SleepSession{ChildID: child.ID, StartTime: base.Add(time.Duration(i) * 4 * time.Hour)}
		require.NoError(t, s.StartSession(ctx, session))
	}

	sessions, err := s.ListSessions(ctx, child.ID, 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	for i := 1; i < len(sessions); i++ {
		assert.True(t, sessions[i].StartTime.Before(sessions[i-1].StartTime))
	}
	// Newest first.
	assert.True(t, sessions[0].StartTime.Equal(base.Add(16*time.Hour)))
}

func TestListCompletedSessions_ExcludesOngoing(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	child := createTestChild(t, s)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		session := &internal.SleepSession{ChildID: child.ID, StartTime: base.Add(time.Duration(i) * 6 * time.Hour)}
		require.NoError(t, s.StartSession(ctx, session))
		if i < 2 {
			require.NoError(t, s.EndSession(ctx, session.ID, session.StartTime.Add(2*time.Hour), nil))
		}
	}

	completed, err := s.ListCompletedSessions(ctx, child.ID, 7)
	require.NoError(t, err)
	require.Len(t, completed, 2)
	for _, sess := range completed {
		assert.NotNil(t, sess.EndTime)
	}
}

func TestMultipleOngoing_NewestWins(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	child := createTestChild(t, s)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	first := &internal.SleepSession{ChildID: child.ID, StartTime: base}
	require.NoError(t, s.StartSession(ctx, first))
	second := &internal.SleepSession{ChildID: child.ID, StartTime: base.Add(3 * time.Hour)}
	require.NoError(t, s.StartSession(ctx, second))

	ongoing, err := s.GetOngoingSession(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, ongoing)
	assert.Equal(t, second.ID, ongoing.ID)
}
