package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/deadmouser/Uni-Arena/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchRefInvalid  = errors.New("match references an unknown sport, schedule or team")
	ErrMatchNotInStatus = errors.New("match is not in the expected status")
)

// MatchFilter narrows List; nil fields are ignored.
type MatchFilter struct {
	SportID    *int
	ScheduleID *int
	Status     *models.MatchStatus
	Limit      int
	Offset     int
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	CreateParticipation(ctx context.Context, exec SQLExecutor, participation *models.MatchParticipation) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]*models.Match, error)
	ListBySchedule(ctx context.Context, scheduleID int) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error

	// MarkLive flips a scheduled match to live and stamps the actual start
	// exactly once. Matches already past scheduled are left alone.
	MarkLive(ctx context.Context, exec SQLExecutor, id int, startedAt time.Time) error

	// MarkCompleted completes a match and stamps the actual end if unset.
	MarkCompleted(ctx context.Context, exec SQLExecutor, id int, endedAt time.Time) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, match_number, round, scheduled_time, actual_start_time, actual_end_time,
		       status, notes, sport_id, schedule_id, home_team_id, away_team_id, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(match_number, round, scheduled_time, status, notes, sport_id, schedule_id, home_team_id, away_team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := executor(exec, r.db).QueryRowContext(ctx, query,
		match.MatchNumber,
		match.Round,
		match.ScheduledTime,
		match.Status,
		match.Notes,
		match.SportID,
		match.ScheduleID,
		match.HomeTeamID,
		match.AwayTeamID,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) CreateParticipation(ctx context.Context, exec SQLExecutor, participation *models.MatchParticipation) error {
	query := `
		INSERT INTO match_participations (match_id, player_id, is_home)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := executor(exec, r.db).QueryRowContext(ctx, query,
		participation.MatchID,
		participation.PlayerID,
		participation.IsHome,
	).Scan(&participation.ID)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.MatchNumber,
		&match.Round,
		&match.ScheduledTime,
		&match.ActualStartTime,
		&match.ActualEndTime,
		&match.Status,
		&match.Notes,
		&match.SportID,
		&match.ScheduleID,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := []interface{}{}
	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		queryBuilder.WriteString(" AND " + clause + " $" + strconv.Itoa(len(args)))
	}

	if filter.SportID != nil {
		addArg("sport_id =", *filter.SportID)
	}
	if filter.ScheduleID != nil {
		addArg("schedule_id =", *filter.ScheduleID)
	}
	if filter.Status != nil {
		addArg("status =", *filter.Status)
	}

	queryBuilder.WriteString(" ORDER BY scheduled_time ASC, id ASC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		queryBuilder.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		queryBuilder.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	return r.queryMatches(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListBySchedule(ctx context.Context, scheduleID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE schedule_id = $1 ORDER BY scheduled_time ASC, id ASC`
	return r.queryMatches(ctx, query, scheduleID)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.MatchNumber,
			&match.Round,
			&match.ScheduledTime,
			&match.ActualStartTime,
			&match.ActualEndTime,
			&match.Status,
			&match.Notes,
			&match.SportID,
			&match.ScheduleID,
			&match.HomeTeamID,
			&match.AwayTeamID,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET scheduled_time = $1, actual_start_time = $2, actual_end_time = $3, status = $4, notes = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		match.ScheduledTime,
		match.ActualStartTime,
		match.ActualEndTime,
		match.Status,
		match.Notes,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) MarkLive(ctx context.Context, exec SQLExecutor, id int, startedAt time.Time) error {
	query := `
		UPDATE matches
		SET status = $1, actual_start_time = COALESCE(actual_start_time, $2)
		WHERE id = $3 AND status = $4`

	result, err := executor(exec, r.db).ExecContext(ctx, query,
		models.MatchStatusLive, startedAt, id, models.MatchStatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to mark match %d live: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotInStatus)
}

func (r *postgresMatchRepository) MarkCompleted(ctx context.Context, exec SQLExecutor, id int, endedAt time.Time) error {
	query := `
		UPDATE matches
		SET status = $1, actual_end_time = COALESCE(actual_end_time, $2)
		WHERE id = $3`

	result, err := executor(exec, r.db).ExecContext(ctx, query,
		models.MatchStatusCompleted, endedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark match %d completed: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 23503: foreign_key_violation
		if pqErr.Code == "23503" {
			return ErrMatchRefInvalid
		}
	}
	return fmt.Errorf("match repository error: %w", err)
}
