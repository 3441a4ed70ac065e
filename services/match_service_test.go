package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/deadmouser/Uni-Arena/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMatch(t *testing.T, repo *fakeMatchRepo, status models.MatchStatus) int {
	t.Helper()
	match := &models.Match{
		MatchNumber:   "M001",
		Round:         1,
		ScheduledTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:        status,
		SportID:       1,
	}
	require.NoError(t, repo.Create(context.Background(), nil, match))
	return match.ID
}

func TestMatchUpdateStampsActualStartOnLive(t *testing.T) {
	repo := newFakeMatchRepo()
	svc := NewMatchService(repo, slog.Default())
	id := seedMatch(t, repo, models.MatchStatusScheduled)

	status := models.MatchStatusLive
	match, err := svc.Update(context.Background(), id, UpdateMatchInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusLive, match.Status)
	assert.NotNil(t, match.ActualStartTime)
	assert.Nil(t, match.ActualEndTime)
}

func TestMatchUpdateStampsActualEndOnCompleted(t *testing.T) {
	repo := newFakeMatchRepo()
	svc := NewMatchService(repo, slog.Default())
	id := seedMatch(t, repo, models.MatchStatusLive)

	status := models.MatchStatusCompleted
	match, err := svc.Update(context.Background(), id, UpdateMatchInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	assert.NotNil(t, match.ActualEndTime)
}

func TestMatchUpdateRejectsBogusStatus(t *testing.T) {
	repo := newFakeMatchRepo()
	svc := NewMatchService(repo, slog.Default())
	id := seedMatch(t, repo, models.MatchStatusScheduled)

	status := models.MatchStatus("abandoned")
	_, err := svc.Update(context.Background(), id, UpdateMatchInput{Status: &status})
	assert.ErrorIs(t, err, ErrMatchStatusInvalid)
}

func TestMatchUpdateReschedule(t *testing.T) {
	repo := newFakeMatchRepo()
	svc := NewMatchService(repo, slog.Default())
	id := seedMatch(t, repo, models.MatchStatusScheduled)

	newTime := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
	notes := "moved for rain"
	match, err := svc.Update(context.Background(), id, UpdateMatchInput{
		ScheduledTime: &newTime,
		Notes:         &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, newTime, match.ScheduledTime)
	require.NotNil(t, match.Notes)
	assert.Equal(t, notes, *match.Notes)
	assert.Equal(t, models.MatchStatusScheduled, match.Status)
}

func TestMatchGetByIDUnknown(t *testing.T) {
	svc := NewMatchService(newFakeMatchRepo(), slog.Default())
	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
