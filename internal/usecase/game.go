package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
)

// TurnResult is the game after a human turn and the bot's answer, if any.
type TurnResult struct {
	Game     *entity.Game
	BotMove  entity.Cell
	BotMoved bool
}

type GameUseCase interface {
	NewGame(ctx context.Context, first entity.Mark) (*TurnResult, error)
	MakeTurn(ctx context.Context, game *entity.Game, cell entity.Cell) (*TurnResult, error)
}

type botService interface {
	MakeTurn(game *entity.Game) (entity.Cell, error)
}

type gameUseCase struct {
	logger     *slog.Logger
	botService botService
}

func NewGameUseCase(logger *slog.Logger, botService botService) GameUseCase {
	return &gameUseCase{
		logger:     logger.With("component", "usecase"),
		botService: botService,
	}
}

// NewGame starts a game. When the AI goes first it moves straight away.
func (that *gameUseCase) NewGame(ctx context.Context, first entity.Mark) (*TurnResult, error) {
	game := entity.NewGame(uuid.NewString(), first)
	result := &TurnResult{Game: game}

	that.logger.Info("game created", "gameID", game.ID, "first", game.Turn.String())

	if game.Turn != entity.PlayerX {
		return result, nil
	}

	if err := that.botTurn(ctx, result); err != nil {
		return nil, fmt.Errorf("bot failed to make first turn: %w", err)
	}

	return result, nil
}

// MakeTurn plays the human's move and lets the bot answer. It returns
// apperror.ErrGameFinished together with the result once the game is over.
func (that *gameUseCase) MakeTurn(ctx context.Context, game *entity.Game, cell entity.Cell) (*TurnResult, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if err := game.MakeTurn(entity.PlayerO, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	result := &TurnResult{Game: game}

	if game.IsFinished() {
		log.Info("game finished by human turn", "winner", game.Winner.String(), "tie", game.Tie)
		return result, apperror.ErrGameFinished
	}

	if err := that.botTurn(ctx, result); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished by bot turn", "winner", game.Winner.String(), "tie", game.Tie)
		return result, apperror.ErrGameFinished
	}

	return result, nil
}

func (that *gameUseCase) botTurn(ctx context.Context, result *TurnResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("bot turn canceled: %w", err)
	}

	cell, err := that.botService.MakeTurn(result.Game)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	result.BotMove = cell
	result.BotMoved = true

	return nil
}
