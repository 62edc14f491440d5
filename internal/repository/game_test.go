package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/quoridor-backend/internal/apperror"
	"github.com/rocketscienceinc/quoridor-backend/internal/entity"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	gameRepo := NewGameRepository(conn)

	// Given: a fresh game
	game := entity.NewGame("123", "Alice", "AI")

	// Then: the upsert carries the id, blob and timestamps
	mock.ExpectExec("INSERT INTO quoridor_games").
		WithArgs(game.ID, sqlmock.AnyArg(), game.CreatedAt, game.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// When: CreateOrUpdate is called
	err = gameRepo.CreateOrUpdate(context.Background(), game)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		gameRepo := NewGameRepository(conn)

		// Given: a stored state blob
		game := entity.NewGame("123", "Alice", "AI")
		gameJSON, err := json.Marshal(game)
		require.NoError(t, err)

		mock.ExpectQuery("SELECT state FROM quoridor_games").
			WithArgs(game.ID).
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(gameJSON))

		// When: GetByID is called with the existing id
		restored, err := gameRepo.GetByID(context.Background(), game.ID)

		// Then: the restored game matches the stored one
		require.NoError(t, err)
		require.Equal(t, game.ID, restored.ID)
		require.Equal(t, game.Status, restored.Status)
		require.Equal(t, *game.Players.Player1, *restored.Players.Player1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		gameRepo := NewGameRepository(conn)

		mock.ExpectQuery("SELECT state FROM quoridor_games").
			WithArgs("9999999").
			WillReturnRows(sqlmock.NewRows([]string{"state"}))

		// When: GetByID is called with a non-existent id
		_, err = gameRepo.GetByID(context.Background(), "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	gameRepo := NewGameRepository(conn)

	mock.ExpectExec("DELETE FROM quoridor_games").
		WithArgs("123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// When: DeleteByID is called
	err = gameRepo.DeleteByID(context.Background(), "123")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
