package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/quoridor-backend/internal/apperror"
	"github.com/rocketscienceinc/quoridor-backend/internal/entity"
	"github.com/rocketscienceinc/quoridor-backend/internal/service"
)

// GameRegistry is what the HTTP surface needs from the game registry.
type GameRegistry interface {
	CreateGame(ctx context.Context, playerName string, difficulty service.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakePawnMove(ctx context.Context, gameID string, row, col int) (*entity.Game, error)
	PlaceWall(ctx context.Context, gameID string, row, col int, orientation string) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, gameID string) (entity.Action, *entity.Game, error)
	ValidActions(ctx context.Context, gameID string) (*entity.ValidActions, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type createGameRequest struct {
	PlayerName   string `json:"player_name"`
	AIDifficulty string `json:"ai_difficulty"`
}

type createGameResponse struct {
	GameID      string `json:"game_id"`
	Status      string `json:"status"`
	CurrentTurn int    `json:"current_turn"`
	Message     string `json:"message"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type wallRequest struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation string `json:"orientation"`
}

type actionResponse struct {
	Success   bool           `json:"success"`
	GameState *entity.Game   `json:"game_state,omitempty"`
	Action    *entity.Action `json:"action,omitempty"`
	Error     string         `json:"error,omitempty"`
	Message   string         `json:"message"`
}

type handlers struct {
	logger   *slog.Logger
	registry GameRegistry
}

func newHandlers(logger *slog.Logger, registry GameRegistry) *handlers {
	return &handlers{
		logger:   logger.With("component", "rest_handlers"),
		registry: registry,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if r.Body != nil && r.ContentLength != 0 {
		// An empty body of unknown length decodes to io.EOF: keep the defaults.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			that.writeFailure(w, http.StatusBadRequest, "invalid_request", "malformed request body")
			return
		}
	}

	difficulty, err := service.ParseDifficulty(req.AIDifficulty)
	if err != nil {
		that.writeFailure(w, http.StatusBadRequest, "invalid_difficulty", "ai_difficulty must be easy, normal or hard")
		return
	}

	game, err := that.registry.CreateGame(r.Context(), req.PlayerName, difficulty)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, createGameResponse{
		GameID:      game.ID,
		Status:      game.Status,
		CurrentTurn: game.CurrentTurn,
		Message:     "Game created successfully",
	})
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.registry.GetGame(r.Context(), r.PathValue("game_id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.registry.DeleteGame(r.Context(), r.PathValue("game_id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MovePawn(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeFailure(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	game, err := that.registry.MakePawnMove(r.Context(), r.PathValue("game_id"), req.Row, req.Col)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, actionResponse{
		Success:   true,
		GameState: game,
		Message:   "Pawn moved successfully",
	})
}

func (that *handlers) PlaceWall(w http.ResponseWriter, r *http.Request) {
	var req wallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeFailure(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return
	}

	game, err := that.registry.PlaceWall(r.Context(), r.PathValue("game_id"), req.Row, req.Col, req.Orientation)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, actionResponse{
		Success:   true,
		GameState: game,
		Message:   "Wall placed successfully",
	})
}

func (that *handlers) AIMove(w http.ResponseWriter, r *http.Request) {
	action, game, err := that.registry.MakeBotTurn(r.Context(), r.PathValue("game_id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, actionResponse{
		Success:   true,
		GameState: game,
		Action:    &action,
		Message:   "AI moved successfully",
	})
}

func (that *handlers) ValidMoves(w http.ResponseWriter, r *http.Request) {
	actions, err := that.registry.ValidActions(r.Context(), r.PathValue("game_id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, actions)
}

// writeError maps rule-engine errors to their stable kind and status; every
// rule violation answers 400, unknown games 404, anything else 500.
func (that *handlers) writeError(w http.ResponseWriter, err error) {
	kind := apperror.Kind(err)
	if kind == "" {
		that.logger.Error("unhandled error", "error", err)
		that.writeFailure(w, http.StatusInternalServerError, "internal_error", "internal server error")

		return
	}

	status := http.StatusBadRequest
	if errors.Is(err, apperror.ErrGameNotFound) {
		status = http.StatusNotFound
	}

	that.writeFailure(w, status, kind, err.Error())
}

func (that *handlers) writeFailure(w http.ResponseWriter, status int, kind, message string) {
	that.writeJSON(w, status, actionResponse{
		Success: false,
		Error:   kind,
		Message: message,
	})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
