package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deadmouser/Uni-Arena/models"
	"github.com/lib/pq"
)

var (
	ErrScoreNotFound     = errors.New("score not found")
	ErrScoreMatchInvalid = errors.New("score references an unknown match")
)

type ScoreRepository interface {
	GetByMatch(ctx context.Context, matchID int) (*models.Score, error)

	// Upsert writes the match's single current-score row, creating it on
	// first use. scores.match_id carries a unique constraint.
	Upsert(ctx context.Context, exec SQLExecutor, score *models.Score) error

	// AppendUpdate adds one entry to the match's append-only history.
	AppendUpdate(ctx context.Context, exec SQLExecutor, update *models.ScoreUpdate) error

	// ListUpdates returns a match's history ordered by creation time ascending.
	ListUpdates(ctx context.Context, matchID int) ([]*models.ScoreUpdate, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) GetByMatch(ctx context.Context, matchID int) (*models.Score, error) {
	query := `
		SELECT id, match_id, home_score, away_score, period, additional_info, created_at, updated_at
		FROM scores
		WHERE match_id = $1`

	score := &models.Score{}
	err := r.db.QueryRowContext(ctx, query, matchID).Scan(
		&score.ID,
		&score.MatchID,
		&score.HomeScore,
		&score.AwayScore,
		&score.Period,
		&score.AdditionalInfo,
		&score.CreatedAt,
		&score.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to scan score for match %d: %w", matchID, err)
	}
	return score, nil
}

func (r *postgresScoreRepository) Upsert(ctx context.Context, exec SQLExecutor, score *models.Score) error {
	query := `
		INSERT INTO scores (match_id, home_score, away_score, period, additional_info, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (match_id) DO UPDATE
		SET home_score = EXCLUDED.home_score,
		    away_score = EXCLUDED.away_score,
		    period = EXCLUDED.period,
		    additional_info = EXCLUDED.additional_info,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := executor(exec, r.db).QueryRowContext(ctx, query,
		score.MatchID,
		score.HomeScore,
		score.AwayScore,
		score.Period,
		score.AdditionalInfo,
	).Scan(&score.ID, &score.CreatedAt, &score.UpdatedAt)

	return r.handleScoreError(err)
}

func (r *postgresScoreRepository) AppendUpdate(ctx context.Context, exec SQLExecutor, update *models.ScoreUpdate) error {
	query := `
		INSERT INTO score_updates (match_id, home_score, away_score, period, update_type, description, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor(exec, r.db).QueryRowContext(ctx, query,
		update.MatchID,
		update.HomeScore,
		update.AwayScore,
		update.Period,
		update.UpdateType,
		update.Description,
		update.UpdatedAt,
	).Scan(&update.ID, &update.CreatedAt)

	return r.handleScoreError(err)
}

func (r *postgresScoreRepository) ListUpdates(ctx context.Context, matchID int) ([]*models.ScoreUpdate, error) {
	query := `
		SELECT id, match_id, home_score, away_score, period, update_type, description, updated_at, created_at
		FROM score_updates
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score updates for match %d: %w", matchID, err)
	}
	defer rows.Close()

	updates := make([]*models.ScoreUpdate, 0)
	for rows.Next() {
		var update models.ScoreUpdate
		if scanErr := rows.Scan(
			&update.ID,
			&update.MatchID,
			&update.HomeScore,
			&update.AwayScore,
			&update.Period,
			&update.UpdateType,
			&update.Description,
			&update.UpdatedAt,
			&update.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan score update row: %w", scanErr)
		}
		updates = append(updates, &update)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during score update rows iteration: %w", err)
	}
	return updates, nil
}

func (r *postgresScoreRepository) handleScoreError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 23503: foreign_key_violation
		if pqErr.Code == "23503" {
			return ErrScoreMatchInvalid
		}
	}
	return fmt.Errorf("score repository error: %w", err)
}
