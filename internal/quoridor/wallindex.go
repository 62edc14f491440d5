package quoridor

import "github.com/rocketscienceinc/quoridor-backend/internal/entity"

type edge struct {
	from entity.Position
	to   entity.Position
}

type anchor struct {
	row int
	col int
}

// WallIndex keeps the placed walls plus two derived structures: the set of
// directed edges blocked by walls and the set of occupied anchors. Both are
// mutated only through Insert and Remove so they stay consistent with the
// wall list, including across speculative placements.
type WallIndex struct {
	walls   []entity.Wall
	blocked map[edge]struct{}
	anchors map[anchor]string
}

func NewWallIndex(walls []entity.Wall) *WallIndex {
	index := &WallIndex{
		walls:   make([]entity.Wall, 0, len(walls)),
		blocked: make(map[edge]struct{}),
		anchors: make(map[anchor]string),
	}
	for _, wall := range walls {
		index.Insert(wall)
	}

	return index
}

// blockedEdges returns the two cell pairs a wall separates, in both
// directions.
func blockedEdges(wall entity.Wall) [4]edge {
	if wall.IsHorizontal() {
		a := entity.Position{Row: wall.Row, Col: wall.Col}
		b := entity.Position{Row: wall.Row + 1, Col: wall.Col}
		c := entity.Position{Row: wall.Row, Col: wall.Col + 1}
		d := entity.Position{Row: wall.Row + 1, Col: wall.Col + 1}

		return [4]edge{{a, b}, {b, a}, {c, d}, {d, c}}
	}

	a := entity.Position{Row: wall.Row, Col: wall.Col}
	b := entity.Position{Row: wall.Row, Col: wall.Col + 1}
	c := entity.Position{Row: wall.Row + 1, Col: wall.Col}
	d := entity.Position{Row: wall.Row + 1, Col: wall.Col + 1}

	return [4]edge{{a, b}, {b, a}, {c, d}, {d, c}}
}

func (that *WallIndex) Walls() []entity.Wall {
	walls := make([]entity.Wall, len(that.walls))
	copy(walls, that.walls)

	return walls
}

// WouldOverlap reports whether wall shares a blocked edge with a placed wall
// or sits on an anchor already holding the same orientation.
func (that *WallIndex) WouldOverlap(wall entity.Wall) bool {
	for _, e := range blockedEdges(wall) {
		if _, ok := that.blocked[e]; ok {
			return true
		}
	}

	orientation, ok := that.anchors[anchor{row: wall.Row, col: wall.Col}]

	return ok && orientation == wall.Orientation
}

// WouldCross reports whether wall's anchor already holds the opposite
// orientation.
func (that *WallIndex) WouldCross(wall entity.Wall) bool {
	orientation, ok := that.anchors[anchor{row: wall.Row, col: wall.Col}]

	return ok && orientation != wall.Orientation
}

func (that *WallIndex) IsBlocked(from, to entity.Position) bool {
	_, ok := that.blocked[edge{from: from, to: to}]

	return ok
}

func (that *WallIndex) Insert(wall entity.Wall) {
	that.walls = append(that.walls, wall)
	for _, e := range blockedEdges(wall) {
		that.blocked[e] = struct{}{}
	}
	that.anchors[anchor{row: wall.Row, col: wall.Col}] = wall.Orientation
}

// Remove undoes an Insert of the same wall. It is the undo half of the
// speculative placement done during path checks.
func (that *WallIndex) Remove(wall entity.Wall) {
	for i := len(that.walls) - 1; i >= 0; i-- {
		if that.walls[i] == wall {
			that.walls = append(that.walls[:i], that.walls[i+1:]...)
			break
		}
	}
	for _, e := range blockedEdges(wall) {
		delete(that.blocked, e)
	}
	delete(that.anchors, anchor{row: wall.Row, col: wall.Col})
}
