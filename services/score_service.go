package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/deadmouser/Uni-Arena/live"
	"github.com/deadmouser/Uni-Arena/metrics"
	"github.com/deadmouser/Uni-Arena/models"
	"github.com/deadmouser/Uni-Arena/repositories"
	"github.com/deadmouser/Uni-Arena/scoring"
)

// Broadcaster fans a payload out to every live subscriber of a room. The
// websocket hub satisfies it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// ActionInput is one scoring event as submitted over the API.
type ActionInput struct {
	Name     string                 `json:"action"`
	Side     string                 `json:"side,omitempty"`
	Points   int                    `json:"points,omitempty"`
	PlayerID *int                   `json:"player_id,omitempty"`
	Extra    map[string]interface{} `json:"extra,omitempty"`
}

// UpdateScoreInput carries one score update. An action drives the sport
// handler; the direct fields overwrite whatever the handler produced, so a
// caller can always force an exact headline.
type UpdateScoreInput struct {
	Action      *ActionInput `json:"action_data,omitempty"`
	HomeScore   *float64     `json:"home_score,omitempty"`
	AwayScore   *float64     `json:"away_score,omitempty"`
	Period      *string      `json:"period,omitempty"`
	UpdateType  *string      `json:"update_type,omitempty"`
	Description *string      `json:"description,omitempty"`
}

type ScoreService interface {
	// ApplyUpdate folds one update into a match's score. The first update
	// against a scheduled match flips it live. Updates to the same match
	// are serialized; different matches proceed concurrently.
	ApplyUpdate(ctx context.Context, matchID int, input UpdateScoreInput) (*models.Score, error)

	// GetScore returns the match's current score, or a zero-value score
	// when nothing has been recorded yet.
	GetScore(ctx context.Context, matchID int) (*models.Score, error)

	GetHistory(ctx context.Context, matchID int) ([]*models.ScoreUpdate, error)

	// EndMatch completes a match, freezing its score.
	EndMatch(ctx context.Context, matchID int) (*models.Match, error)
}

type scoreService struct {
	db          *sql.DB
	scoreRepo   repositories.ScoreRepository
	matchRepo   repositories.MatchRepository
	sportRepo   repositories.SportRepository
	broadcaster Broadcaster
	logger      *slog.Logger

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewScoreService(
	db *sql.DB,
	scoreRepo repositories.ScoreRepository,
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
	broadcaster Broadcaster,
	logger *slog.Logger,
) ScoreService {
	return &scoreService{
		db:          db,
		scoreRepo:   scoreRepo,
		matchRepo:   matchRepo,
		sportRepo:   sportRepo,
		broadcaster: broadcaster,
		logger:      logger,
		locks:       make(map[int]*sync.Mutex),
	}
}

// matchLock returns the mutex serializing one match's writes. Locks are
// never evicted; the set is bounded by the number of matches ever scored in
// a process lifetime.
func (s *scoreService) matchLock(matchID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[matchID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[matchID] = lock
	}
	return lock
}

func (s *scoreService) ApplyUpdate(ctx context.Context, matchID int, input UpdateScoreInput) (*models.Score, error) {
	lock := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	switch match.Status {
	case models.MatchStatusScheduled, models.MatchStatusLive:
	case models.MatchStatusCompleted:
		return nil, ErrMatchAlreadyCompleted
	default:
		return nil, fmt.Errorf("%w: %s", ErrMatchStatusInvalid, match.Status)
	}

	sport, err := s.sportRepo.GetByID(ctx, match.SportID)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to load sport %d: %w", match.SportID, err)
	}

	score, err := s.currentScore(ctx, matchID)
	if err != nil {
		return nil, err
	}

	handler, hasHandler := scoring.ForSport(sport.Code, sport.Name)
	if hasHandler && input.Action != nil {
		if err := s.applyAction(score, handler, input); err != nil {
			return nil, err
		}
	}

	// Direct fields win over whatever the handler produced.
	if input.HomeScore != nil {
		score.HomeScore = *input.HomeScore
	}
	if input.AwayScore != nil {
		score.AwayScore = *input.AwayScore
	}
	if input.Period != nil {
		score.Period = input.Period
	}

	now := time.Now().UTC()
	update := &models.ScoreUpdate{
		MatchID:     matchID,
		HomeScore:   score.HomeScore,
		AwayScore:   score.AwayScore,
		Period:      score.Period,
		UpdateType:  updateType(input),
		Description: input.Description,
		UpdatedAt:   now,
	}

	txErr := withTx(ctx, s.db, func(exec repositories.SQLExecutor) error {
		if err := s.scoreRepo.Upsert(ctx, exec, score); err != nil {
			return fmt.Errorf("failed to upsert score for match %d: %w", matchID, err)
		}
		if err := s.scoreRepo.AppendUpdate(ctx, exec, update); err != nil {
			return fmt.Errorf("failed to append score history for match %d: %w", matchID, err)
		}
		if match.Status == models.MatchStatusScheduled {
			if err := s.matchRepo.MarkLive(ctx, exec, matchID, now); err != nil {
				return fmt.Errorf("failed to mark match %d live: %w", matchID, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	metrics.ScoreUpdates.WithLabelValues(sportLabel(handler, hasHandler)).Inc()
	s.broadcaster.BroadcastToRoom(live.RoomForMatch(matchID), live.Message{
		Type:    live.TypeScoreUpdated,
		Payload: score,
	})
	s.logger.Debug("score updated",
		slog.Int("match_id", matchID),
		slog.Float64("home", score.HomeScore),
		slog.Float64("away", score.AwayScore),
	)
	return score, nil
}

// applyAction runs one action through the sport handler and folds the
// resulting headline, period and payload back into the score row.
func (s *scoreService) applyAction(score *models.Score, handler scoring.Handler, input UpdateScoreInput) error {
	var raw []byte
	if score.AdditionalInfo != nil {
		raw = []byte(*score.AdditionalInfo)
	}
	state, err := handler.DecodeState(raw)
	if err != nil {
		return fmt.Errorf("failed to decode %s state for match %d: %w", handler.Code(), score.MatchID, err)
	}

	state = state.Apply(scoring.Action{
		Name:     input.Action.Name,
		Side:     actionSide(input),
		Points:   input.Action.Points,
		PlayerID: input.Action.PlayerID,
		Extra:    input.Action.Extra,
	})

	if headline, ok := state.Headline(); ok {
		score.HomeScore = headline.Home
		score.AwayScore = headline.Away
	}
	if period, ok := state.Period(); ok {
		score.Period = &period
	}

	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode %s state for match %d: %w", handler.Code(), score.MatchID, err)
	}
	info := string(encoded)
	score.AdditionalInfo = &info
	return nil
}

// actionSide fills a missing side. A bare away_score override implies the
// sender is driving the away side; everything else defaults home.
func actionSide(input UpdateScoreInput) scoring.Side {
	if input.Action.Side != "" {
		return scoring.Side(input.Action.Side)
	}
	if input.AwayScore != nil && input.HomeScore == nil {
		return scoring.SideAway
	}
	return scoring.SideHome
}

func updateType(input UpdateScoreInput) *string {
	if input.UpdateType != nil {
		return input.UpdateType
	}
	if input.Action != nil && input.Action.Name != "" {
		name := input.Action.Name
		return &name
	}
	return nil
}

func sportLabel(handler scoring.Handler, hasHandler bool) string {
	if !hasHandler {
		return "generic"
	}
	return string(handler.Code())
}

func (s *scoreService) GetScore(ctx context.Context, matchID int) (*models.Score, error) {
	if _, err := s.loadMatch(ctx, matchID); err != nil {
		return nil, err
	}
	return s.currentScore(ctx, matchID)
}

func (s *scoreService) GetHistory(ctx context.Context, matchID int) ([]*models.ScoreUpdate, error) {
	if _, err := s.loadMatch(ctx, matchID); err != nil {
		return nil, err
	}
	updates, err := s.scoreRepo.ListUpdates(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list score history for match %d: %w", matchID, err)
	}
	return updates, nil
}

func (s *scoreService) EndMatch(ctx context.Context, matchID int) (*models.Match, error) {
	lock := s.matchLock(matchID)
	lock.Lock()
	defer lock.Unlock()

	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}

	now := time.Now().UTC()
	txErr := withTx(ctx, s.db, func(exec repositories.SQLExecutor) error {
		return s.matchRepo.MarkCompleted(ctx, exec, matchID, now)
	})
	if txErr != nil {
		return nil, fmt.Errorf("failed to complete match %d: %w", matchID, txErr)
	}

	match.Status = models.MatchStatusCompleted
	if match.ActualEndTime == nil {
		match.ActualEndTime = &now
	}

	metrics.MatchesCompleted.Inc()
	s.broadcaster.BroadcastToRoom(live.RoomForMatch(matchID), live.Message{
		Type:    live.TypeMatchCompleted,
		Payload: match,
	})
	s.logger.Info("match completed", slog.Int("match_id", matchID))
	return match, nil
}

func (s *scoreService) loadMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	return match, nil
}

// currentScore loads the match's score row, lazily materializing a zero
// score before the first update.
func (s *scoreService) currentScore(ctx context.Context, matchID int) (*models.Score, error) {
	score, err := s.scoreRepo.GetByMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return &models.Score{MatchID: matchID}, nil
		}
		return nil, fmt.Errorf("failed to load score for match %d: %w", matchID, err)
	}
	return score, nil
}
