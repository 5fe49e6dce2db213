package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-solver/internal/engine"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

type gameUseCase interface {
	StartGame(ctx context.Context, playerMark engine.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, action engine.Action) (*entity.Game, error)

	Solve(board engine.Board) (*usecase.Analysis, error)
}

type solveRequest struct {
	Board string `json:"board" binding:"required,board"`
}

type startGameRequest struct {
	Mark string `json:"mark" binding:"required,oneof=X O"`
}

type turnRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func newHandlers(logger *slog.Logger, game gameUseCase) *handlers {
	return &handlers{
		logger: logger,
		game:   game,
	}
}

func (that *handlers) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *handlers) solve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	board, err := engine.ParseBoard(req.Board)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := that.game.Solve(board)
	if err != nil {
		that.fail(c, "solve", err)
		return
	}

	successResponse(c, http.StatusOK, analysis)
}

func (that *handlers) startGame(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	game, err := that.game.StartGame(c.Request.Context(), engine.Mark(req.Mark))
	if err != nil {
		that.fail(c, "startGame", err)
		return
	}

	successResponse(c, http.StatusCreated, game)
}

func (that *handlers) getGame(c *gin.Context) {
	game, err := that.game.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "getGame", err)
		return
	}

	successResponse(c, http.StatusOK, game)
}

func (that *handlers) makeTurn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	action := engine.Action{Row: *req.Row, Col: *req.Col}

	game, err := that.game.MakeTurn(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		that.fail(c, "makeTurn", err)
		return
	}

	successResponse(c, http.StatusOK, game)
}

func (that *handlers) fail(c *gin.Context, method string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		errorResponse(c, code, "Internal Server Error")
		return
	}

	that.logger.Debug("request rejected", "method", method, "error", err)
	errorResponse(c, code, err.Error())
}
