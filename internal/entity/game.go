package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

// Game is a single human-versus-bot session.
type Game struct {
	ID         string       `json:"id"`
	Board      engine.Board `json:"board"`
	Winner     string       `json:"winner"`
	Status     string       `json:"status"`
	Turn       engine.Mark  `json:"player_turn"`
	PlayerMark engine.Mark  `json:"player_mark"`
	BotMark    engine.Mark  `json:"bot_mark"`
}

func NewGame(id string, playerMark engine.Mark) (*Game, error) {
	if playerMark != engine.PlayerX && playerMark != engine.PlayerO {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, playerMark)
	}

	board := engine.InitialState()

	return &Game{
		ID:         id,
		Board:      board,
		Turn:       engine.CurrentPlayer(board),
		Status:     StatusOngoing,
		PlayerMark: playerMark,
		BotMark:    playerMark.Opponent(),
	}, nil
}

// UpdateGameState derives winner, status and turn from the board.
func (that *Game) UpdateGameState() {
	if !engine.IsTerminal(that.Board) {
		that.Status = StatusOngoing
		that.Turn = engine.CurrentPlayer(that.Board)
		return
	}

	that.Status = StatusFinished
	that.Turn = engine.Empty

	if winner := engine.Winner(that.Board); winner != engine.Empty {
		that.Winner = string(winner)
		return
	}

	// tie
	that.Winner = PlayerTie
}

func (that *Game) MakeTurn(playerMark engine.Mark, action engine.Action) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	board, err := engine.ApplyAction(that.Board, action)
	if err != nil {
		return fmt.Errorf("failed to apply action: %w", err)
	}

	that.Board = board
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}
