package engine

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// ApplyAction returns the board that results from the current player taking
// action. The input board is left untouched.
func ApplyAction(board Board, action Action) (Board, error) {
	if action.Row < 0 || action.Row >= Size || action.Col < 0 || action.Col >= Size {
		return board, fmt.Errorf("%w: %v is out of range", apperror.ErrInvalidAction, action)
	}

	if board[action.Row][action.Col] != Empty {
		return board, fmt.Errorf("%w: %v is already occupied", apperror.ErrInvalidAction, action)
	}

	next := board
	next[action.Row][action.Col] = CurrentPlayer(board)

	return next, nil
}

// mustApply is used by the search, which only ever applies legal actions.
func mustApply(board Board, action Action) Board {
	next, err := ApplyAction(board, action)
	if err != nil {
		panic(fmt.Errorf("search applied an illegal action: %w", err))
	}
	return next
}
