package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deadmouser/Uni-Arena/models"
	"github.com/deadmouser/Uni-Arena/repositories"
)

// UpdateMatchInput carries a partial match edit; nil fields are untouched.
type UpdateMatchInput struct {
	Status        *models.MatchStatus `json:"status,omitempty"`
	ScheduledTime *time.Time          `json:"scheduled_time,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
}

type MatchService interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error)

	// Update applies a partial edit. Moving into live or completed stamps
	// the corresponding actual time when it is still unset.
	Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, logger *slog.Logger) MatchService {
	return &matchService{matchRepo: matchRepo, logger: logger}
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !validMatchStatus(*input.Status) {
			return nil, fmt.Errorf("%w: %s", ErrMatchStatusInvalid, *input.Status)
		}
		now := time.Now().UTC()
		switch *input.Status {
		case models.MatchStatusLive:
			if match.ActualStartTime == nil {
				match.ActualStartTime = &now
			}
		case models.MatchStatusCompleted:
			if match.ActualEndTime == nil {
				match.ActualEndTime = &now
			}
		}
		match.Status = *input.Status
	}
	if input.ScheduledTime != nil {
		match.ScheduledTime = *input.ScheduledTime
	}
	if input.Notes != nil {
		match.Notes = input.Notes
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}

	s.logger.Info("match updated", slog.Int("match_id", id), slog.String("status", string(match.Status)))
	return match, nil
}

func validMatchStatus(status models.MatchStatus) bool {
	switch status {
	case models.MatchStatusScheduled,
		models.MatchStatusLive,
		models.MatchStatusCompleted,
		models.MatchStatusCancelled,
		models.MatchStatusPostponed:
		return true
	}
	return false
}
