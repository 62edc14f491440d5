package quoridor

import "github.com/rocketscienceinc/quoridor-backend/internal/entity"

const (
	BoardSize     = 9
	WallPositions = 8
)

// Directions is the fixed enumeration order for adjacent cells: up, right,
// down, left. Searches depend on this order being stable.
var Directions = [4]entity.Position{
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
}

func IsValidCell(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func IsValidWallAnchor(row, col int) bool {
	return row >= 0 && row < WallPositions && col >= 0 && col < WallPositions
}

// Neighbors returns the orthogonal in-bounds neighbors of pos that are not
// separated from it by a wall, in the fixed direction order.
func Neighbors(pos entity.Position, index *WallIndex) []entity.Position {
	neighbors := make([]entity.Position, 0, len(Directions))

	for _, dir := range Directions {
		next := entity.Position{Row: pos.Row + dir.Row, Col: pos.Col + dir.Col}
		if !IsValidCell(next.Row, next.Col) {
			continue
		}
		if index.IsBlocked(pos, next) {
			continue
		}
		neighbors = append(neighbors, next)
	}

	return neighbors
}
