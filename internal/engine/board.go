package engine

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// Size is the side length of the square grid.
const Size = 3

const (
	MaxUtility  = 1
	MinUtility  = -1
	DrawUtility = 0
)

// Mark is the content of a single cell: Empty or one of the two players.
type Mark string

const (
	Empty   Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

// Opponent returns the other player's mark.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// Board is a value type, assigning it copies every cell.
type Board [Size][Size]Mark

// Action targets a cell by 0-indexed row and column.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell returns the flat row-major index of the action.
func (that Action) Cell() int {
	return that.Row*Size + that.Col
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

func ActionFromCell(cell int) Action {
	return Action{Row: cell / Size, Col: cell % Size}
}

func InitialState() Board {
	return Board{}
}

// CurrentPlayer returns the mark that moves next. X moves first, so O is
// to move only when it has played fewer marks than X.
func CurrentPlayer(board Board) Mark {
	xCount, oCount := countMarks(board)
	if oCount < xCount {
		return PlayerO
	}
	return PlayerX
}

// LegalActions lists the empty cells in row-major order.
func LegalActions(board Board) []Action {
	actions := make([]Action, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if board[row][col] == Empty {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}
	return actions
}

// Winner scans rows, then columns, then the main and anti diagonals and
// returns the owner of the first complete line, or Empty.
func Winner(board Board) Mark {
	for row := range Size {
		if mark := lineOwner(board, row, 0, 0, 1); mark != Empty {
			return mark
		}
	}

	for col := range Size {
		if mark := lineOwner(board, 0, col, 1, 0); mark != Empty {
			return mark
		}
	}

	if mark := lineOwner(board, 0, 0, 1, 1); mark != Empty {
		return mark
	}

	return lineOwner(board, 0, Size-1, 1, -1)
}

func IsTerminal(board Board) bool {
	return isFull(board) || Winner(board) != Empty
}

// Utility is the outcome from X's point of view. It is only meaningful on a
// terminal board.
func Utility(board Board) int {
	switch Winner(board) {
	case PlayerX:
		return MaxUtility
	case PlayerO:
		return MinUtility
	default:
		return DrawUtility
	}
}

// Validate checks that the board could be reached by alternating play
// starting with X.
func Validate(board Board) error {
	xCount, oCount := countMarks(board)
	for row := range Size {
		for col := range Size {
			switch board[row][col] {
			case Empty, PlayerX, PlayerO:
			default:
				return fmt.Errorf("%w: unknown mark %q at %v", apperror.ErrInvalidBoard, board[row][col], Action{Row: row, Col: col})
			}
		}
	}

	if diff := xCount - oCount; diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}

	return nil
}

// ParseBoard reads nine cells in row-major order. X and O are marks;
// '.', '_' and '-' are empty cells. Whitespace and '/' are ignored.
func ParseBoard(raw string) (Board, error) {
	var (
		board Board
		cell  int
	)

	for _, ch := range strings.ToUpper(raw) {
		var mark Mark

		switch ch {
		case ' ', '\t', '\n', '\r', '/':
			continue
		case 'X':
			mark = PlayerX
		case 'O':
			mark = PlayerO
		case '.', '_', '-':
			mark = Empty
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", apperror.ErrInvalidBoard, ch)
		}

		if cell >= Size*Size {
			return Board{}, fmt.Errorf("%w: more than %d cells", apperror.ErrInvalidBoard, Size*Size)
		}

		action := ActionFromCell(cell)
		board[action.Row][action.Col] = mark
		cell++
	}

	if cell != Size*Size {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", apperror.ErrInvalidBoard, cell, Size*Size)
	}

	return board, nil
}

func (that Board) String() string {
	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range Size {
			if that[row][col] == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(that[row][col]))
		}
	}
	return sb.String()
}

func countMarks(board Board) (int, int) {
	var xCount, oCount int
	for row := range Size {
		for col := range Size {
			switch board[row][col] {
			case PlayerX:
				xCount++
			case PlayerO:
				oCount++
			}
		}
	}
	return xCount, oCount
}

func isFull(board Board) bool {
	for row := range Size {
		for col := range Size {
			if board[row][col] == Empty {
				return false
			}
		}
	}
	return true
}

// lineOwner walks Size cells from (row, col) by (dRow, dCol) and returns the
// mark if all of them hold the same non-empty mark.
func lineOwner(board Board, row, col, dRow, dCol int) Mark {
	first := board[row][col]
	if first == Empty {
		return Empty
	}

	for step := 1; step < Size; step++ {
		if board[row+step*dRow][col+step*dCol] != first {
			return Empty
		}
	}

	return first
}
