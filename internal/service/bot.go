package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/engine"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// MakeTurn plays the minimax move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) error {
	action, ok := engine.OptimalAction(game.Board)
	if !ok {
		return apperror.ErrNoAvailableMoves
	}

	if err := game.MakeTurn(game.BotMark, action); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made turn", "gameID", game.ID, "mark", game.BotMark, "cell", action.Cell())

	return nil
}
