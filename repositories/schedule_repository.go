package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/deadmouser/Uni-Arena/models"
	"github.com/lib/pq"
)

var (
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrScheduleSportInvalid = errors.New("schedule references an unknown sport")
)

type ScheduleRepository interface {
	Create(ctx context.Context, exec SQLExecutor, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int) (*models.Schedule, error)
	List(ctx context.Context, sportID *int) ([]*models.Schedule, error)
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

func (r *postgresScheduleRepository) Create(ctx context.Context, exec SQLExecutor, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (name, schedule_type, sport_id, start_date, end_date, is_active, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor(exec, r.db).QueryRowContext(ctx, query,
		schedule.Name,
		schedule.ScheduleType,
		schedule.SportID,
		schedule.StartDate,
		schedule.EndDate,
		schedule.IsActive,
		schedule.Description,
	).Scan(&schedule.ID, &schedule.CreatedAt)

	return r.handleScheduleError(err)
}

func (r *postgresScheduleRepository) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	query := `
		SELECT id, name, schedule_type, sport_id, start_date, end_date, is_active, description, created_at
		FROM schedules
		WHERE id = $1`

	schedule := &models.Schedule{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.Name,
		&schedule.ScheduleType,
		&schedule.SportID,
		&schedule.StartDate,
		&schedule.EndDate,
		&schedule.IsActive,
		&schedule.Description,
		&schedule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to scan schedule by id %d: %w", id, err)
	}
	return schedule, nil
}

func (r *postgresScheduleRepository) List(ctx context.Context, sportID *int) ([]*models.Schedule, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, schedule_type, sport_id, start_date, end_date, is_active, description, created_at
		FROM schedules`)

	args := []interface{}{}
	if sportID != nil {
		queryBuilder.WriteString(" WHERE sport_id = $" + strconv.Itoa(len(args)+1))
		args = append(args, *sportID)
	}
	queryBuilder.WriteString(" ORDER BY start_date ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]*models.Schedule, 0)
	for rows.Next() {
		var schedule models.Schedule
		if scanErr := rows.Scan(
			&schedule.ID,
			&schedule.Name,
			&schedule.ScheduleType,
			&schedule.SportID,
			&schedule.StartDate,
			&schedule.EndDate,
			&schedule.IsActive,
			&schedule.Description,
			&schedule.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", scanErr)
		}
		schedules = append(schedules, &schedule)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during schedule rows iteration: %w", err)
	}
	return schedules, nil
}

func (r *postgresScheduleRepository) handleScheduleError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 23503: foreign_key_violation
		if pqErr.Code == "23503" && strings.Contains(pqErr.Constraint, "sport") {
			return ErrScheduleSportInvalid
		}
	}
	return fmt.Errorf("schedule repository error: %w", err)
}
