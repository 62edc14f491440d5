package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/quoridor-backend/internal/apperror"
	"github.com/rocketscienceinc/quoridor-backend/internal/entity"
)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	conn *sql.DB
}

func NewGameRepository(conn *sql.DB) GameRepository {
	return &dbGame{
		conn: conn,
	}
}

// CreateOrUpdate upserts the serialized state blob keyed by game id.
func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	query := `INSERT INTO quoridor_games (game_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	if _, err = that.conn.ExecContext(ctx, query, game.ID, gameJSON, game.CreatedAt, game.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	query := `SELECT state FROM quoridor_games WHERE game_id = $1`

	var gameJSON []byte
	err := that.conn.QueryRowContext(ctx, query, id).Scan(&gameJSON)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal(gameJSON, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM quoridor_games WHERE game_id = $1`

	if _, err := that.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	return nil
}
