package entity

const InitialWalls = 10

type Player struct {
	Name           string   `json:"name"`
	Position       Position `json:"position"`
	WallsRemaining int      `json:"walls_remaining"`
	GoalRow        int      `json:"goal_row"`
}

func (that *Player) HasWalls() bool {
	return that.WallsRemaining > 0
}

func (that *Player) HasReachedGoal() bool {
	return that.Position.Row == that.GoalRow
}
