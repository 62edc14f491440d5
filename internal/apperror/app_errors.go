package apperror

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFinished        = errors.New("game is already finished")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrInvalidMove         = errors.New("invalid move")
	ErrInvalidWallPosition = errors.New("invalid wall position")
	ErrNoWallsRemaining    = errors.New("no walls remaining")
	ErrPathBlocked         = errors.New("wall would block a player's path to their goal")
)

// Kind maps an error to its stable identifier for API responses. Unknown
// errors map to the empty string.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, ErrGameFinished):
		return "game_finished"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrInvalidMove):
		return "invalid_move"
	case errors.Is(err, ErrInvalidWallPosition):
		return "invalid_wall_position"
	case errors.Is(err, ErrNoWallsRemaining):
		return "no_walls_remaining"
	case errors.Is(err, ErrPathBlocked):
		return "path_blocked"
	default:
		return ""
	}
}
