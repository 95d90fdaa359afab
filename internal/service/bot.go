package service

import (
	"errors"
	"fmt"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Cell, error)
}

type searcher interface {
	BestMove(board *entity.Board) (entity.Cell, bool)
}

type botService struct {
	engine searcher
}

func NewBotService(engine searcher) BotService {
	return &botService{
		engine: engine,
	}
}

// MakeTurn plays the engine's best move for X on game.
func (that *botService) MakeTurn(game *entity.Game) (entity.Cell, error) {
	if game.IsFinished() {
		return entity.Cell{}, apperror.ErrGameFinished
	}

	if game.Turn != entity.PlayerX {
		return entity.Cell{}, ErrNotBotTurn
	}

	cell, ok := that.engine.BestMove(&game.Board)
	if !ok {
		return entity.Cell{}, apperror.ErrNoAvailableMoves
	}

	if err := game.MakeTurn(entity.PlayerX, cell); err != nil {
		return entity.Cell{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}
