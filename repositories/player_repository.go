package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// PlayerRepository exposes the players rostered under a sport, via their
// teams, for individual and mixed sport draws.
type PlayerRepository interface {
	ListIDsBySport(ctx context.Context, sportID int) ([]int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) ListIDsBySport(ctx context.Context, sportID int) ([]int, error) {
	query := `
		SELECT p.id
		FROM players p
		JOIN teams t ON t.id = p.team_id
		WHERE t.sport_id = $1
		ORDER BY p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players for sport %d: %w", sportID, err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("failed to scan player id: %w", scanErr)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return ids, nil
}
