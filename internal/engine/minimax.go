package engine

// OptimalAction returns the best move for the current player using plain
// minimax over the full game tree. X maximizes utility and O minimizes it.
// Ties go to the first action in row-major order. The second result is
// false when the board is terminal.
func OptimalAction(board Board) (Action, bool) {
	if IsTerminal(board) {
		return Action{}, false
	}

	actions := LegalActions(board)
	best := actions[0]

	if CurrentPlayer(board) == PlayerX {
		bestValue := MinUtility
		for _, action := range actions {
			if value := minValue(mustApply(board, action), MaxUtility); value > bestValue {
				bestValue = value
				best = action
			}
		}
		return best, true
	}

	bestValue := MaxUtility
	for _, action := range actions {
		if value := maxValue(mustApply(board, action), MinUtility); value < bestValue {
			bestValue = value
			best = action
		}
	}

	return best, true
}

// maxValue folds the children's minValue into bound, which seeds the
// running maximum. No cutoff is taken on bound.
func maxValue(board Board, bound int) int {
	if IsTerminal(board) {
		return Utility(board)
	}

	for _, action := range LegalActions(board) {
		bound = max(bound, minValue(mustApply(board, action), MaxUtility))
	}

	return bound
}

func minValue(board Board, bound int) int {
	if IsTerminal(board) {
		return Utility(board)
	}

	for _, action := range LegalActions(board) {
		bound = min(bound, maxValue(mustApply(board, action), MinUtility))
	}

	return bound
}
