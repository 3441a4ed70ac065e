package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deadmouser/Uni-Arena/models"
)

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	List(ctx context.Context) ([]*models.Sport, error)
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	query := `
		SELECT id, name, sport_type, code
		FROM sports
		WHERE id = $1`

	sport := &models.Sport{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sport.ID,
		&sport.Name,
		&sport.SportType,
		&sport.Code,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to scan sport by id %d: %w", id, err)
	}
	return sport, nil
}

func (r *postgresSportRepository) List(ctx context.Context) ([]*models.Sport, error) {
	query := `
		SELECT id, name, sport_type, code
		FROM sports
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sports: %w", err)
	}
	defer rows.Close()

	sports := make([]*models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		if scanErr := rows.Scan(&sport.ID, &sport.Name, &sport.SportType, &sport.Code); scanErr != nil {
			return nil, fmt.Errorf("failed to scan sport row: %w", scanErr)
		}
		sports = append(sports, &sport)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during sport rows iteration: %w", err)
	}
	return sports, nil
}
