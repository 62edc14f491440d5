package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/quoridor-backend/internal/apperror"
	"github.com/rocketscienceinc/quoridor-backend/internal/entity"
	"github.com/rocketscienceinc/quoridor-backend/internal/quoridor"
	"github.com/rocketscienceinc/quoridor-backend/internal/service"
)

const defaultPlayerName = "Player"

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	SelectAction(engine *quoridor.Engine, difficulty service.Difficulty) (entity.Action, error)
}

// gameSlot holds one game's authoritative state together with its exclusive
// guard. A slot marked poisoned failed a post-apply invariant audit; it stays
// in the map so later requests answer not-found instead of serving an
// inconsistent state.
type gameSlot struct {
	mu         sync.Mutex
	engine     *quoridor.Engine
	difficulty service.Difficulty
	poisoned   bool
}

// GameManager is the game registry. Memory is the source of truth for a
// process lifetime; the repository, when attached, is a best-effort
// write-through mirror.
type GameManager struct {
	logger *slog.Logger

	mu    sync.Mutex
	games map[string]*gameSlot

	gameRepo gameRepo
	bot      botService
}

// NewGameManager builds a registry. A nil gameRepo runs memory-only.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		games:    make(map[string]*gameSlot),
		gameRepo: gameRepo,
		bot:      bot,
	}
}

// CreateGame allocates a fresh game id, seeds the initial state and persists
// it if a store is attached. Caller-supplied ids are not accepted.
func (that *GameManager) CreateGame(ctx context.Context, playerName string, difficulty service.Difficulty) (*entity.Game, error) {
	if playerName == "" {
		playerName = defaultPlayerName
	}
	if difficulty == "" {
		difficulty = service.DifficultyNormal
	}

	game := entity.NewGame(uuid.NewString(), playerName, "AI")
	slot := &gameSlot{
		engine:     quoridor.NewEngine(game),
		difficulty: difficulty,
	}

	that.mu.Lock()
	that.games[game.ID] = slot
	that.mu.Unlock()

	that.persist(ctx, game)

	return game.Clone(), nil
}

// GetGame returns a snapshot of the game state.
func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	slot, err := that.getSlot(ctx, gameID)
	if err != nil {
		return nil, err
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.poisoned {
		return nil, apperror.ErrGameNotFound
	}

	return slot.engine.Game().Clone(), nil
}

// MakePawnMove applies a pawn move for player 1. Player 2's pawn is driven
// through MakeBotTurn only.
func (that *GameManager) MakePawnMove(ctx context.Context, gameID string, row, col int) (*entity.Game, error) {
	return that.apply(ctx, gameID, func(engine *quoridor.Engine) error {
		if err := that.gatePlayer1(engine); err != nil {
			return err
		}
		return engine.MovePawn(row, col)
	})
}

// PlaceWall places a wall for player 1.
func (that *GameManager) PlaceWall(ctx context.Context, gameID string, row, col int, orientation string) (*entity.Game, error) {
	return that.apply(ctx, gameID, func(engine *quoridor.Engine) error {
		if err := that.gatePlayer1(engine); err != nil {
			return err
		}
		return engine.PlaceWall(row, col, orientation)
	})
}

// gatePlayer1 rejects a human action when it is not player 1's turn. A
// finished game reports game_finished, never not_your_turn: the turn freezes
// at whoever made the winning move, so a game the bot won would otherwise
// answer not_your_turn forever.
func (that *GameManager) gatePlayer1(engine *quoridor.Engine) error {
	if engine.Game().IsFinished() {
		return apperror.ErrGameFinished
	}
	if engine.Game().CurrentTurn != entity.Player1ID {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// MakeBotTurn asks the policy for the current turn player's action and
// routes it through the same apply path as a direct request, so no rule
// check is bypassed. The policy runs inside the per-game guard.
func (that *GameManager) MakeBotTurn(ctx context.Context, gameID string) (entity.Action, *entity.Game, error) {
	var action entity.Action

	game, err := that.apply(ctx, gameID, func(engine *quoridor.Engine) error {
		if engine.Game().IsFinished() {
			return apperror.ErrGameFinished
		}

		selected, selectErr := that.bot.SelectAction(engine, that.difficultyOf(gameID))
		if selectErr != nil {
			return fmt.Errorf("failed to select action: %w", selectErr)
		}
		action = selected

		return engine.Apply(action)
	})
	if err != nil {
		return entity.Action{}, nil, err
	}

	return action, game, nil
}

// ValidActions lists the current turn player's legal actions. Wall
// enumeration runs the speculative path check per candidate.
func (that *GameManager) ValidActions(ctx context.Context, gameID string) (*entity.ValidActions, error) {
	slot, err := that.getSlot(ctx, gameID)
	if err != nil {
		return nil, err
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.poisoned {
		return nil, apperror.ErrGameNotFound
	}

	return slot.engine.ValidActions(), nil
}

// DeleteGame destroys a game in memory and, best effort, in the store.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	that.mu.Lock()
	_, ok := that.games[gameID]
	delete(that.games, gameID)
	that.mu.Unlock()

	if !ok {
		return apperror.ErrGameNotFound
	}

	if that.gameRepo != nil {
		if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
			that.logger.Error("failed to delete game from store", "game_id", gameID, "error", err)
		}
	}

	return nil
}

// apply runs a mutation under the per-game guard, audits the invariants and
// persists the accepted result. Rule errors leave the state untouched.
func (that *GameManager) apply(ctx context.Context, gameID string, mutate func(*quoridor.Engine) error) (*entity.Game, error) {
	slot, err := that.getSlot(ctx, gameID)
	if err != nil {
		return nil, err
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.poisoned {
		return nil, apperror.ErrGameNotFound
	}

	if err = mutate(slot.engine); err != nil {
		return nil, err
	}

	if auditErr := slot.engine.AuditInvariants(); auditErr != nil {
		slot.poisoned = true
		that.logger.Error("game poisoned after invariant audit failure", "game_id", gameID, "error", auditErr)

		return nil, apperror.ErrGameNotFound
	}

	that.persist(ctx, slot.engine.Game())

	return slot.engine.Game().Clone(), nil
}

// getSlot looks the game up in memory and falls back to the store on a cold
// miss when one is attached.
func (that *GameManager) getSlot(ctx context.Context, gameID string) (*gameSlot, error) {
	that.mu.Lock()
	slot, ok := that.games[gameID]
	that.mu.Unlock()

	if ok {
		return slot, nil
	}

	if that.gameRepo == nil {
		return nil, apperror.ErrGameNotFound
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			return nil, apperror.ErrGameNotFound
		}
		that.logger.Error("failed to load game from store", "game_id", gameID, "error", err)

		return nil, apperror.ErrGameNotFound
	}

	loaded := &gameSlot{
		engine:     quoridor.NewEngine(game),
		difficulty: service.DifficultyNormal,
	}

	// A persisted row is untrusted until it passes the same audit as an
	// in-memory mutation; a corrupt row poisons the slot immediately.
	if auditErr := loaded.engine.AuditInvariants(); auditErr != nil {
		loaded.poisoned = true
		that.logger.Error("loaded game poisoned after invariant audit failure", "game_id", gameID, "error", auditErr)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	// Another request may have rehydrated the same game meanwhile.
	if existing, exists := that.games[gameID]; exists {
		return existing, nil
	}
	that.games[gameID] = loaded

	return loaded, nil
}

func (that *GameManager) difficultyOf(gameID string) service.Difficulty {
	that.mu.Lock()
	defer that.mu.Unlock()

	if slot, ok := that.games[gameID]; ok && slot.difficulty != "" {
		return slot.difficulty
	}

	return service.DifficultyNormal
}

// persist mirrors the state to the store. Failures are logged and swallowed:
// the in-memory state stays authoritative.
func (that *GameManager) persist(ctx context.Context, game *entity.Game) {
	if that.gameRepo == nil {
		return
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		that.logger.Error("failed to persist game", "game_id", game.ID, "error", err)
	}
}
