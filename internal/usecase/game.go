package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/engine"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type GameUseCase interface {
	StartGame(ctx context.Context, playerMark engine.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, action engine.Action) (*entity.Game, error)

	Solve(board engine.Board) (*Analysis, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// Analysis is everything the engine can say about a single board.
type Analysis struct {
	Board         engine.Board    `json:"board"`
	CurrentPlayer engine.Mark     `json:"current_player"`
	LegalActions  []engine.Action `json:"legal_actions"`
	OptimalAction *engine.Action  `json:"optimal_action"`
	Winner        engine.Mark     `json:"winner"`
	Terminal      bool            `json:"terminal"`
	Utility       int             `json:"utility"`
}

type gameUseCase struct {
	logger *slog.Logger

	gameRepo   gameRepo
	botService botService
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo, botService botService) GameUseCase {
	return &gameUseCase{
		logger:     logger.With("component", "game-usecase"),
		gameRepo:   gameRepo,
		botService: botService,
	}
}

// StartGame creates a session. When the bot holds X it opens immediately.
func (that *gameUseCase) StartGame(ctx context.Context, playerMark engine.Mark) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), playerMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game started", "gameID", game.ID, "playerMark", playerMark)

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn plays the human move and, if the game goes on, the bot reply.
// A finished game is returned to the caller and removed from storage.
func (that *gameUseCase) MakeTurn(ctx context.Context, gameID string, action engine.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.MakeTurn(game.PlayerMark, action); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)

		if err = that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
			log.Error("failed to delete finished game", "error", err)
		}

		return game, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// Solve analyses a board without touching storage.
func (that *gameUseCase) Solve(board engine.Board) (*Analysis, error) {
	if err := engine.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	analysis := &Analysis{
		Board:         board,
		CurrentPlayer: engine.CurrentPlayer(board),
		LegalActions:  engine.LegalActions(board),
		Winner:        engine.Winner(board),
		Terminal:      engine.IsTerminal(board),
		Utility:       engine.Utility(board),
	}

	if action, ok := engine.OptimalAction(board); ok {
		analysis.OptimalAction = &action
	}

	return analysis, nil
}
