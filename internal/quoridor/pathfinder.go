package quoridor

import "github.com/rocketscienceinc/quoridor-backend/internal/entity"

// Unreachable is returned by ShortestDistance when no path exists.
const Unreachable = -1

// Reachable reports whether any cell on goalRow can be reached from start
// under the current walls.
func Reachable(start entity.Position, goalRow int, index *WallIndex) bool {
	return ShortestDistance(start, goalRow, index) != Unreachable
}

// ShortestDistance is a breadth-first search from start to the first cell on
// goalRow. Neighbors expand in the fixed direction order, so identical
// states always explore identically. The graph has at most 81 nodes; no
// caching.
func ShortestDistance(start entity.Position, goalRow int, index *WallIndex) int {
	if start.Row == goalRow {
		return 0
	}

	type node struct {
		pos  entity.Position
		dist int
	}

	var visited [BoardSize][BoardSize]bool
	visited[start.Row][start.Col] = true

	queue := []node{{pos: start, dist: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range Neighbors(current.pos, index) {
			if visited[next.Row][next.Col] {
				continue
			}
			if next.Row == goalRow {
				return current.dist + 1
			}
			visited[next.Row][next.Col] = true
			queue = append(queue, node{pos: next, dist: current.dist + 1})
		}
	}

	return Unreachable
}
