package quoridor

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/quoridor-backend/internal/apperror"
	"github.com/rocketscienceinc/quoridor-backend/internal/entity"
)

var ErrInvariantViolated = errors.New("game state invariant violated")

// Engine binds a game to its wall index and applies actions under the full
// rule checks. Actions always act for the current turn player. The engine is
// not safe for concurrent use; the registry serializes access per game.
type Engine struct {
	game  *entity.Game
	index *WallIndex
}

// NewEngine rebuilds the wall index from the game's wall list, so a game
// loaded from the store gets a consistent derived structure.
func NewEngine(game *entity.Game) *Engine {
	return &Engine{
		game:  game,
		index: NewWallIndex(game.Walls),
	}
}

func (that *Engine) Game() *entity.Game {
	return that.game
}

func (that *Engine) Index() *WallIndex {
	return that.index
}

// MovePawn moves the current player's pawn to (row, col).
func (that *Engine) MovePawn(row, col int) error {
	if that.game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !IsValidCell(row, col) {
		return fmt.Errorf("%w: cell (%d,%d) out of bounds", apperror.ErrInvalidMove, row, col)
	}

	target := entity.Position{Row: row, Col: col}
	player := that.game.CurrentPlayer()
	opponent := that.game.OpponentPlayer()

	if !IsValidPawnMove(player, opponent, target, that.index) {
		return fmt.Errorf("%w: cell (%d,%d) is not a legal destination", apperror.ErrInvalidMove, row, col)
	}

	player.Position = target
	that.game.TurnCount++
	that.game.Touch()

	if player.HasReachedGoal() {
		that.game.Finish(that.game.CurrentTurn)
		return nil
	}

	that.game.SwitchTurn()

	return nil
}

// PlaceWall places a wall for the current player.
func (that *Engine) PlaceWall(row, col int, orientation string) error {
	if that.game.IsFinished() {
		return apperror.ErrGameFinished
	}

	wall := entity.Wall{Row: row, Col: col, Orientation: orientation}
	player := that.game.CurrentPlayer()
	opponent := that.game.OpponentPlayer()

	if err := CheckWallPlacement(wall, player, opponent, that.index); err != nil {
		return err
	}

	that.index.Insert(wall)
	that.game.Walls = append(that.game.Walls, wall)
	player.WallsRemaining--
	that.game.TurnCount++
	that.game.Touch()
	that.game.SwitchTurn()

	return nil
}

// Apply routes an action record through the same rule checks as the direct
// calls, so the opponent policy cannot bypass them.
func (that *Engine) Apply(action entity.Action) error {
	switch action.Type {
	case entity.ActionTypeMove:
		return that.MovePawn(action.Row, action.Col)
	case entity.ActionTypeWall:
		return that.PlaceWall(action.Row, action.Col, action.Orientation)
	default:
		return fmt.Errorf("%w: unknown action type %q", apperror.ErrInvalidMove, action.Type)
	}
}

func (that *Engine) ValidPawnMoves() []entity.Position {
	return ValidPawnMoves(that.game.CurrentPlayer(), that.game.OpponentPlayer(), that.index)
}

func (that *Engine) ValidWallPlacements() []entity.Wall {
	return ValidWallPlacements(that.game.CurrentPlayer(), that.game.OpponentPlayer(), that.index)
}

// ValidActions snapshots everything the current player may legally do.
func (that *Engine) ValidActions() *entity.ValidActions {
	return &entity.ValidActions{
		ValidPawnMoves:      that.ValidPawnMoves(),
		ValidWallPlacements: that.ValidWallPlacements(),
		WallsRemaining:      that.game.CurrentPlayer().WallsRemaining,
	}
}

// AuditInvariants verifies the state invariants that must hold after every
// applied action. A failure means a programmer error, not a rule violation.
func (that *Engine) AuditInvariants() error {
	p1 := that.game.Players.Player1
	p2 := that.game.Players.Player2

	if !IsValidCell(p1.Position.Row, p1.Position.Col) || !IsValidCell(p2.Position.Row, p2.Position.Col) {
		return fmt.Errorf("%w: pawn out of bounds", ErrInvariantViolated)
	}
	if p1.Position == p2.Position {
		return fmt.Errorf("%w: pawns share cell (%d,%d)", ErrInvariantViolated, p1.Position.Row, p1.Position.Col)
	}

	if p1.WallsRemaining+p2.WallsRemaining+len(that.game.Walls) != 2*entity.InitialWalls {
		return fmt.Errorf("%w: wall count mismatch: %d remaining + %d placed",
			ErrInvariantViolated, p1.WallsRemaining+p2.WallsRemaining, len(that.game.Walls))
	}

	if !Reachable(p1.Position, p1.GoalRow, that.index) || !Reachable(p2.Position, p2.GoalRow, that.index) {
		return fmt.Errorf("%w: a player has no path to their goal row", ErrInvariantViolated)
	}

	p1Won := p1.HasReachedGoal()
	p2Won := p2.HasReachedGoal()
	if that.game.IsFinished() != (p1Won || p2Won) {
		return fmt.Errorf("%w: status %q inconsistent with pawn positions", ErrInvariantViolated, that.game.Status)
	}
	if that.game.IsFinished() && that.game.Winner == nil {
		return fmt.Errorf("%w: finished game has no winner", ErrInvariantViolated)
	}

	return nil
}
