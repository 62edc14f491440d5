package quoridor

import (
	"fmt"

	"github.com/rocketscienceinc/quoridor-backend/internal/apperror"
	"github.com/rocketscienceinc/quoridor-backend/internal/entity"
)

// ValidPawnMoves returns every cell the player may move to, in the fixed
// direction order. When the opponent occupies an adjacent cell, the jump
// rules apply: straight over when the cell behind is open, otherwise the two
// perpendicular cells next to the opponent.
func ValidPawnMoves(player, opponent *entity.Player, index *WallIndex) []entity.Position {
	moves := make([]entity.Position, 0, 5)
	current := player.Position

	for _, dir := range Directions {
		next := entity.Position{Row: current.Row + dir.Row, Col: current.Col + dir.Col}
		if !IsValidCell(next.Row, next.Col) {
			continue
		}
		if index.IsBlocked(current, next) {
			continue
		}
		if next == opponent.Position {
			moves = append(moves, jumpMoves(opponent.Position, dir, index)...)
			continue
		}
		moves = append(moves, next)
	}

	return moves
}

// jumpMoves handles the adjacency case: dir is the direction from the player
// to the opponent.
func jumpMoves(opponentPos entity.Position, dir entity.Position, index *WallIndex) []entity.Position {
	behind := entity.Position{Row: opponentPos.Row + dir.Row, Col: opponentPos.Col + dir.Col}
	if IsValidCell(behind.Row, behind.Col) && !index.IsBlocked(opponentPos, behind) {
		return []entity.Position{behind}
	}

	// Straight jump blocked by the board edge or a wall: sidestep to the
	// open perpendicular neighbors of the opponent.
	var perpendicular [2]entity.Position
	if dir.Row != 0 {
		perpendicular = [2]entity.Position{{Row: 0, Col: -1}, {Row: 0, Col: 1}}
	} else {
		perpendicular = [2]entity.Position{{Row: -1, Col: 0}, {Row: 1, Col: 0}}
	}

	moves := make([]entity.Position, 0, 2)
	for _, d := range perpendicular {
		diag := entity.Position{Row: opponentPos.Row + d.Row, Col: opponentPos.Col + d.Col}
		if !IsValidCell(diag.Row, diag.Col) {
			continue
		}
		if index.IsBlocked(opponentPos, diag) {
			continue
		}
		moves = append(moves, diag)
	}

	return moves
}

func IsValidPawnMove(player, opponent *entity.Player, target entity.Position, index *WallIndex) bool {
	for _, move := range ValidPawnMoves(player, opponent, index) {
		if move == target {
			return true
		}
	}

	return false
}

// CheckWallPlacement validates a wall for the player without mutating the
// index: the speculative insert is always undone before returning. The
// returned error carries the rejection kind.
func CheckWallPlacement(wall entity.Wall, player, opponent *entity.Player, index *WallIndex) error {
	if !player.HasWalls() {
		return apperror.ErrNoWallsRemaining
	}

	if !IsValidWallAnchor(wall.Row, wall.Col) {
		return fmt.Errorf("%w: anchor (%d,%d) out of range", apperror.ErrInvalidWallPosition, wall.Row, wall.Col)
	}
	if wall.Orientation != entity.OrientationHorizontal && wall.Orientation != entity.OrientationVertical {
		return fmt.Errorf("%w: unknown orientation %q", apperror.ErrInvalidWallPosition, wall.Orientation)
	}
	if index.WouldOverlap(wall) || index.WouldCross(wall) {
		return fmt.Errorf("%w: conflicts with a placed wall", apperror.ErrInvalidWallPosition)
	}

	index.Insert(wall)
	defer index.Remove(wall)

	if !Reachable(player.Position, player.GoalRow, index) || !Reachable(opponent.Position, opponent.GoalRow, index) {
		return apperror.ErrPathBlocked
	}

	return nil
}

// ValidWallPlacements enumerates every legal wall for the player, running the
// full speculative path check per candidate. Order is lexicographic by
// (row, col, orientation).
func ValidWallPlacements(player, opponent *entity.Player, index *WallIndex) []entity.Wall {
	if !player.HasWalls() {
		return []entity.Wall{}
	}

	walls := make([]entity.Wall, 0, 32)
	for row := 0; row < WallPositions; row++ {
		for col := 0; col < WallPositions; col++ {
			for _, orientation := range []string{entity.OrientationHorizontal, entity.OrientationVertical} {
				wall := entity.Wall{Row: row, Col: col, Orientation: orientation}
				if CheckWallPlacement(wall, player, opponent, index) == nil {
					walls = append(walls, wall)
				}
			}
		}
	}

	return walls
}
