package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/engine"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockBot struct {
	mock.Mock
}

func (that *mockBot) MakeTurn(game *entity.Game) error {
	args := that.Called(game)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUseCase(t *testing.T) (GameUseCase, *mockGameRepo) {
	t.Helper()

	repo := &mockGameRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	logger := newTestLogger()

	return NewGameUseCase(logger, repo, service.NewBotService(logger)), repo
}

func TestGameUseCase_StartGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human plays X and moves first", func(t *testing.T) {
		// Given: a use case backed by a repository that accepts writes
		useCase, repo := newTestUseCase(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: starting a game as X
		game, err := useCase.StartGame(ctx, engine.PlayerX)

		// Then: the board is empty and it is the human's turn
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, engine.Board{}, game.Board)
		assert.Equal(t, engine.PlayerX, game.Turn)
	})

	t.Run("Bot opens when human plays O", func(t *testing.T) {
		useCase, repo := newTestUseCase(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		game, err := useCase.StartGame(ctx, engine.PlayerO)

		require.NoError(t, err)
		assert.Len(t, engine.LegalActions(game.Board), engine.Size*engine.Size-1)
		assert.Equal(t, engine.PlayerO, game.Turn)
	})

	t.Run("Invalid mark", func(t *testing.T) {
		useCase, _ := newTestUseCase(t)

		_, err := useCase.StartGame(ctx, engine.Empty)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Storage failure", func(t *testing.T) {
		useCase, repo := newTestUseCase(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()

		game, err := useCase.StartGame(ctx, engine.PlayerX)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameUseCase_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot replies and game is saved", func(t *testing.T) {
		// Given: a stored game where the human plays X
		useCase, repo := newTestUseCase(t)
		stored, err := entity.NewGame("g1", engine.PlayerX)
		require.NoError(t, err)

		repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
		repo.On("CreateOrUpdate", ctx, stored).Return(nil).Once()

		// When: the human takes a corner
		game, err := useCase.MakeTurn(ctx, "g1", engine.Action{Row: 0, Col: 0})
		require.NoError(t, err)

		// Then: the bot answers in the centre and it is X's turn again
		assert.Equal(t, engine.PlayerX, game.Board[0][0])
		assert.Equal(t, engine.PlayerO, game.Board[1][1])
		assert.Equal(t, engine.PlayerX, game.Turn)
	})

	t.Run("Finished game is deleted", func(t *testing.T) {
		// Given: the human can complete the top row
		useCase, repo := newTestUseCase(t)
		stored := &entity.Game{
			ID: "g2",
			Board: engine.Board{
				{engine.PlayerX, engine.PlayerX, engine.Empty},
				{engine.PlayerO, engine.PlayerO, engine.Empty},
				{engine.Empty, engine.Empty, engine.Empty},
			},
			Status:     entity.StatusOngoing,
			Turn:       engine.PlayerX,
			PlayerMark: engine.PlayerX,
			BotMark:    engine.PlayerO,
		}

		repo.On("GetByID", ctx, "g2").Return(stored, nil).Once()
		repo.On("DeleteByID", ctx, "g2").Return(nil).Once()

		// When: the human wins
		game, err := useCase.MakeTurn(ctx, "g2", engine.Action{Row: 0, Col: 2})

		// Then: the finished game is returned and removed from storage
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, string(engine.PlayerX), game.Winner)
	})

	t.Run("Illegal action", func(t *testing.T) {
		useCase, repo := newTestUseCase(t)
		stored, err := entity.NewGame("g3", engine.PlayerX)
		require.NoError(t, err)
		stored.Board[0][0] = engine.PlayerX
		stored.Board[1][1] = engine.PlayerO

		repo.On("GetByID", ctx, "g3").Return(stored, nil).Once()

		_, err = useCase.MakeTurn(ctx, "g3", engine.Action{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrInvalidAction)
	})

	t.Run("Unknown game", func(t *testing.T) {
		useCase, repo := newTestUseCase(t)
		repo.On("GetByID", ctx, "nope").Return(nil, apperror.ErrGameNotFound).Once()

		_, err := useCase.MakeTurn(ctx, "nope", engine.Action{})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Bot failure is reported", func(t *testing.T) {
		repo := &mockGameRepo{}
		bot := &mockBot{}
		useCase := NewGameUseCase(newTestLogger(), repo, bot)

		stored, err := entity.NewGame("g4", engine.PlayerX)
		require.NoError(t, err)

		repo.On("GetByID", ctx, "g4").Return(stored, nil).Once()
		bot.On("MakeTurn", stored).Return(apperror.ErrNoAvailableMoves).Once()

		_, err = useCase.MakeTurn(ctx, "g4", engine.Action{Row: 2, Col: 2})

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
		repo.AssertExpectations(t)
		bot.AssertExpectations(t)
	})
}

func TestGameUseCase_Solve(t *testing.T) {
	t.Run("Winning move is reported", func(t *testing.T) {
		useCase, _ := newTestUseCase(t)

		board := engine.Board{
			{engine.PlayerX, engine.PlayerX, engine.Empty},
			{engine.PlayerO, engine.PlayerO, engine.Empty},
			{engine.Empty, engine.Empty, engine.Empty},
		}

		analysis, err := useCase.Solve(board)
		require.NoError(t, err)

		require.NotNil(t, analysis.OptimalAction)
		assert.Equal(t, engine.Action{Row: 0, Col: 2}, *analysis.OptimalAction)
		assert.Equal(t, engine.PlayerX, analysis.CurrentPlayer)
		assert.False(t, analysis.Terminal)
		assert.Len(t, analysis.LegalActions, 5)
	})

	t.Run("Terminal board has no optimal action", func(t *testing.T) {
		useCase, _ := newTestUseCase(t)

		board := engine.Board{
			{engine.PlayerX, engine.PlayerX, engine.PlayerX},
			{engine.PlayerO, engine.PlayerO, engine.Empty},
			{engine.Empty, engine.Empty, engine.Empty},
		}

		analysis, err := useCase.Solve(board)
		require.NoError(t, err)

		assert.Nil(t, analysis.OptimalAction)
		assert.True(t, analysis.Terminal)
		assert.Equal(t, engine.PlayerX, analysis.Winner)
		assert.Equal(t, engine.MaxUtility, analysis.Utility)
	})

	t.Run("Unreachable board is rejected", func(t *testing.T) {
		useCase, _ := newTestUseCase(t)

		board := engine.Board{
			{engine.PlayerX, engine.PlayerX, engine.Empty},
		}

		_, err := useCase.Solve(board)
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}
