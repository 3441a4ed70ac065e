package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/deadmouser/Uni-Arena/live"
	"github.com/deadmouser/Uni-Arena/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

type scoreServiceFixture struct {
	svc       ScoreService
	matchRepo *fakeMatchRepo
	scoreRepo *fakeScoreRepo
	hub       *fakeBroadcaster
}

func newScoreServiceForTest(t *testing.T, sport *models.Sport) (*scoreServiceFixture, int) {
	t.Helper()
	matchRepo := newFakeMatchRepo()
	scoreRepo := newFakeScoreRepo()
	hub := &fakeBroadcaster{}

	match := &models.Match{
		MatchNumber:   "M001",
		Round:         1,
		ScheduledTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:        models.MatchStatusScheduled,
		SportID:       sport.ID,
	}
	require.NoError(t, matchRepo.Create(context.Background(), nil, match))

	svc := NewScoreService(
		nil,
		scoreRepo,
		matchRepo,
		&fakeSportRepo{sports: map[int]*models.Sport{sport.ID: sport}},
		hub,
		slog.Default(),
	)
	return &scoreServiceFixture{svc: svc, matchRepo: matchRepo, scoreRepo: scoreRepo, hub: hub}, match.ID
}

func TestApplyUpdateFootballGoalFlipsMatchLive(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})

	score, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action: &ActionInput{Name: "goal", Side: "home"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score.HomeScore)
	assert.Equal(t, 0.0, score.AwayScore)

	match, err := fx.matchRepo.GetByID(context.Background(), matchID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusLive, match.Status)
	assert.NotNil(t, match.ActualStartTime)

	// A second update leaves the live status alone.
	_, err = fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action: &ActionInput{Name: "goal", Side: "away"},
	})
	require.NoError(t, err)
	match, err = fx.matchRepo.GetByID(context.Background(), matchID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusLive, match.Status)
}

func TestApplyUpdateAccumulatesStateAcrossCalls(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Cricket", SportType: models.SportTypeTeam, Code: strPtr("CRICKET"),
	})

	_, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action: &ActionInput{Name: "add_run", Side: "home", Points: 4},
	})
	require.NoError(t, err)
	score, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action: &ActionInput{Name: "add_run", Side: "home", Points: 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, score.HomeScore)

	require.NotNil(t, score.AdditionalInfo)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*score.AdditionalInfo), &payload))
	assert.Equal(t, 10.0, payload["home_runs"])
}

func TestApplyUpdateDirectFieldsOverrideAction(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})

	score, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action:    &ActionInput{Name: "goal", Side: "home"},
		HomeScore: floatPtr(3),
		Period:    strPtr("2nd Half"),
	})
	require.NoError(t, err)
	// The goal produced 1-0; the direct field forces 3.
	assert.Equal(t, 3.0, score.HomeScore)
	require.NotNil(t, score.Period)
	assert.Equal(t, "2nd Half", *score.Period)
}

func TestApplyUpdateWithoutHandlerUsesDirectFields(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Table Tennis", SportType: models.SportTypeIndividual,
	})

	score, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		HomeScore: floatPtr(11),
		AwayScore: floatPtr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, 11.0, score.HomeScore)
	assert.Equal(t, 7.0, score.AwayScore)
	assert.Nil(t, score.AdditionalInfo)
}

func TestApplyUpdateAppendsHistory(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})

	_, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action: &ActionInput{Name: "goal", Side: "home"},
	})
	require.NoError(t, err)
	_, err = fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action:      &ActionInput{Name: "goal", Side: "away"},
		Description: strPtr("equalizer"),
	})
	require.NoError(t, err)

	updates, err := fx.svc.GetHistory(context.Background(), matchID)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, 1.0, updates[0].HomeScore)
	assert.Equal(t, 0.0, updates[0].AwayScore)
	require.NotNil(t, updates[0].UpdateType)
	assert.Equal(t, "goal", *updates[0].UpdateType)
	assert.Equal(t, 1.0, updates[1].AwayScore)
	require.NotNil(t, updates[1].Description)
	assert.Equal(t, "equalizer", *updates[1].Description)
}

func TestApplyUpdateBroadcastsToMatchRoom(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})

	_, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action: &ActionInput{Name: "goal", Side: "home"},
	})
	require.NoError(t, err)

	calls := fx.hub.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, live.RoomForMatch(matchID), calls[0].room)
	message, ok := calls[0].message.(live.Message)
	require.True(t, ok)
	assert.Equal(t, live.TypeScoreUpdated, message.Type)
}

func TestApplyUpdateRejectsCompletedMatch(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})
	require.NoError(t, fx.matchRepo.MarkCompleted(context.Background(), nil, matchID, time.Now()))

	_, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
		Action: &ActionInput{Name: "goal", Side: "home"},
	})
	assert.ErrorIs(t, err, ErrMatchAlreadyCompleted)
}

func TestApplyUpdateUnknownMatch(t *testing.T) {
	fx, _ := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})
	_, err := fx.svc.ApplyUpdate(context.Background(), 999, UpdateScoreInput{
		HomeScore: floatPtr(1),
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestGetScoreDefaultsToZero(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})

	score, err := fx.svc.GetScore(context.Background(), matchID)
	require.NoError(t, err)
	assert.Equal(t, matchID, score.MatchID)
	assert.Zero(t, score.HomeScore)
	assert.Zero(t, score.AwayScore)
}

func TestEndMatch(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})

	match, err := fx.svc.EndMatch(context.Background(), matchID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	assert.NotNil(t, match.ActualEndTime)

	calls := fx.hub.calls()
	require.Len(t, calls, 1)
	message, ok := calls[0].message.(live.Message)
	require.True(t, ok)
	assert.Equal(t, live.TypeMatchCompleted, message.Type)

	_, err = fx.svc.EndMatch(context.Background(), matchID)
	assert.ErrorIs(t, err, ErrMatchAlreadyCompleted)
}

func TestApplyUpdateSerializesPerMatch(t *testing.T) {
	fx, matchID := newScoreServiceForTest(t, &models.Sport{
		ID: 1, Name: "Football", SportType: models.SportTypeTeam, Code: strPtr("FOOTBALL"),
	})

	const goals = 20
	var wg sync.WaitGroup
	for i := 0; i < goals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.ApplyUpdate(context.Background(), matchID, UpdateScoreInput{
				Action: &ActionInput{Name: "goal", Side: "home"},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	score, err := fx.svc.GetScore(context.Background(), matchID)
	require.NoError(t, err)
	assert.Equal(t, float64(goals), score.HomeScore)
}
