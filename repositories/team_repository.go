package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// TeamRepository exposes the slice of team data the draw needs: which teams
// play a sport. Full team CRUD lives with the roster service.
type TeamRepository interface {
	ListIDsBySport(ctx context.Context, sportID int) ([]int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) ListIDsBySport(ctx context.Context, sportID int) ([]int, error) {
	query := `
		SELECT id
		FROM teams
		WHERE sport_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for sport %d: %w", sportID, err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", scanErr)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return ids, nil
}
