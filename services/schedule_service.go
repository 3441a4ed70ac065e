package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/deadmouser/Uni-Arena/metrics"
	"github.com/deadmouser/Uni-Arena/models"
	"github.com/deadmouser/Uni-Arena/repositories"
	"github.com/deadmouser/Uni-Arena/scheduling"
	"golang.org/x/sync/errgroup"
)

type CreateScheduleInput struct {
	Name         string              `json:"name"`
	ScheduleType models.ScheduleType `json:"schedule_type"`
	SportID      int                 `json:"sport_id"`
	StartDate    time.Time           `json:"start_date"`
	Description  *string             `json:"description,omitempty"`

	// Explicit participants. When both are empty the sport's full roster is
	// drawn: every team for team sports, every rostered player otherwise.
	TeamIDs   []int `json:"team_ids,omitempty"`
	PlayerIDs []int `json:"player_ids,omitempty"`

	// Slot layout; zero values fall back to 4 matches/day, 09:00, 90 min.
	MatchesPerDay   int    `json:"matches_per_day,omitempty"`
	StartTime       string `json:"start_time,omitempty"` // "HH:MM"
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

type ScheduleService interface {
	// Create stores a schedule and generates its full match draw in one
	// transaction. Fewer than two participants produces a schedule with no
	// matches — not an error.
	Create(ctx context.Context, input CreateScheduleInput) (*models.Schedule, []*models.Match, error)

	GetWithMatches(ctx context.Context, id int) (*models.Schedule, []*models.Match, error)
	List(ctx context.Context, sportID *int) ([]*models.Schedule, error)
}

type scheduleService struct {
	db           *sql.DB
	scheduleRepo repositories.ScheduleRepository
	matchRepo    repositories.MatchRepository
	sportRepo    repositories.SportRepository
	teamRepo     repositories.TeamRepository
	playerRepo   repositories.PlayerRepository
	logger       *slog.Logger
}

func NewScheduleService(
	db *sql.DB,
	scheduleRepo repositories.ScheduleRepository,
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		db:           db,
		scheduleRepo: scheduleRepo,
		matchRepo:    matchRepo,
		sportRepo:    sportRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		logger:       logger,
	}
}

func (s *scheduleService) Create(ctx context.Context, input CreateScheduleInput) (*models.Schedule, []*models.Match, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, ErrScheduleNameRequired
	}
	if input.StartDate.IsZero() {
		return nil, nil, ErrScheduleStartRequired
	}
	generator, ok := scheduling.ForFormat(scheduling.Format(input.ScheduleType))
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrScheduleTypeInvalid, input.ScheduleType)
	}

	dayStart, err := parseDayStart(input.StartTime)
	if err != nil {
		return nil, nil, err
	}

	sport, err := s.sportRepo.GetByID(ctx, input.SportID)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, nil, ErrSportNotFound
		}
		return nil, nil, fmt.Errorf("failed to load sport %d: %w", input.SportID, err)
	}

	participants, err := s.resolveParticipants(ctx, sport, input)
	if err != nil {
		return nil, nil, err
	}

	schedule := &models.Schedule{
		Name:         input.Name,
		ScheduleType: input.ScheduleType,
		SportID:      sport.ID,
		StartDate:    input.StartDate,
		IsActive:     true,
		Description:  input.Description,
	}

	var matches []*models.Match
	txErr := withTx(ctx, s.db, func(exec repositories.SQLExecutor) error {
		if err := s.scheduleRepo.Create(ctx, exec, schedule); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}

		spec := scheduling.Spec{
			Format:        scheduling.Format(input.ScheduleType),
			SportID:       sport.ID,
			ScheduleID:    schedule.ID,
			Participants:  participants,
			StartDate:     input.StartDate,
			MatchesPerDay: input.MatchesPerDay,
			DayStart:      dayStart,
			MatchDuration: time.Duration(input.DurationMinutes) * time.Minute,
		}
		drafts, err := generator.Generate(ctx, spec)
		if err != nil {
			return fmt.Errorf("failed to generate %s draw: %w", generator.Name(), err)
		}

		matches = make([]*models.Match, 0, len(drafts))
		for _, draft := range drafts {
			match := buildMatch(draft, sport, schedule.ID)
			if err := s.matchRepo.Create(ctx, exec, match); err != nil {
				return fmt.Errorf("failed to persist match %s: %w", draft.Number, err)
			}
			if draft.Home.Kind == scheduling.KindPlayer {
				if err := s.createParticipations(ctx, exec, match.ID, draft); err != nil {
					return err
				}
			}
			matches = append(matches, match)
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	metrics.SchedulesGenerated.Inc()
	metrics.MatchesDrawn.Add(float64(len(matches)))
	s.logger.Info("schedule generated",
		slog.Int("schedule_id", schedule.ID),
		slog.String("type", string(schedule.ScheduleType)),
		slog.Int("participants", len(participants)),
		slog.Int("matches", len(matches)),
	)

	return schedule, matches, nil
}

// resolveParticipants translates the request into draw participants. The
// sport type decides the participant kind; an empty request falls back to
// the sport's full roster.
func (s *scheduleService) resolveParticipants(ctx context.Context, sport *models.Sport, input CreateScheduleInput) ([]scheduling.Participant, error) {
	var (
		ids  []int
		kind scheduling.ParticipantKind
		err  error
	)

	if sport.SportType == models.SportTypeTeam {
		kind = scheduling.KindTeam
		ids = input.TeamIDs
		if len(ids) == 0 {
			ids, err = s.teamRepo.ListIDsBySport(ctx, sport.ID)
		}
	} else {
		kind = scheduling.KindPlayer
		ids = input.PlayerIDs
		if len(ids) == 0 {
			ids, err = s.playerRepo.ListIDsBySport(ctx, sport.ID)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participants for sport %d: %w", sport.ID, err)
	}

	participants := make([]scheduling.Participant, 0, len(ids))
	for _, id := range ids {
		participants = append(participants, scheduling.Participant{ID: id, Kind: kind})
	}
	return participants, nil
}

// buildMatch assembles a generator draft into the match entity consumed by
// storage. Team sides land in the team columns; player sides are stored as
// participations instead.
func buildMatch(draft *scheduling.MatchDraft, sport *models.Sport, scheduleID int) *models.Match {
	match := &models.Match{
		MatchNumber:   draft.Number,
		Round:         draft.Round,
		ScheduledTime: draft.ScheduledAt,
		Status:        models.MatchStatusScheduled,
		SportID:       sport.ID,
		ScheduleID:    &scheduleID,
	}
	if draft.Home.Kind == scheduling.KindTeam {
		home, away := draft.Home.ID, draft.Away.ID
		match.HomeTeamID = &home
		match.AwayTeamID = &away
	}
	return match
}

func (s *scheduleService) createParticipations(ctx context.Context, exec repositories.SQLExecutor, matchID int, draft *scheduling.MatchDraft) error {
	for _, entry := range []struct {
		playerID int
		isHome   bool
	}{
		{draft.Home.ID, true},
		{draft.Away.ID, false},
	} {
		participation := &models.MatchParticipation{
			MatchID:  matchID,
			PlayerID: entry.playerID,
			IsHome:   entry.isHome,
		}
		if err := s.matchRepo.CreateParticipation(ctx, exec, participation); err != nil {
			return fmt.Errorf("failed to persist participation for match %d: %w", matchID, err)
		}
	}
	return nil
}

func (s *scheduleService) GetWithMatches(ctx context.Context, id int) (*models.Schedule, []*models.Match, error) {
	var (
		schedule *models.Schedule
		matches  []*models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedule, err = s.scheduleRepo.GetByID(gctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("failed to load schedule %d: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListBySchedule(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load matches for schedule %d: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return schedule, matches, nil
}

func (s *scheduleService) List(ctx context.Context, sportID *int) ([]*models.Schedule, error) {
	schedules, err := s.scheduleRepo.List(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// parseDayStart turns "HH:MM" into a clock offset from midnight. Empty
// input defers to the generator default.
func parseDayStart(startTime string) (time.Duration, error) {
	if startTime == "" {
		return 0, nil
	}
	parts := strings.SplitN(startTime, ":", 2)
	if len(parts) != 2 {
		return 0, ErrStartTimeFormatInvalid
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, ErrStartTimeFormatInvalid
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}
