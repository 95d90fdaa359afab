package entity

import (
	"fmt"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Result is the outcome read off a board.
type Result int

const (
	ResultNone Result = iota
	ResultXWins
	ResultOWins
	ResultTie
)

// Game is one match between the human and the AI.
type Game struct {
	ID     string
	Board  Board
	Turn   Mark
	Winner Mark
	Tie    bool
	Status string
}

func NewGame(id string, first Mark) *Game {
	if first != PlayerX {
		first = PlayerO
	}

	return &Game{
		ID:     id,
		Board:  NewBoard(),
		Turn:   first,
		Status: StatusOngoing,
	}
}

// DetermineGameResult checks X before O, then a full board.
func (that *Game) DetermineGameResult() Result {
	switch {
	case that.Board.IsWinner(PlayerX):
		return ResultXWins
	case that.Board.IsWinner(PlayerO):
		return ResultOWins
	case that.Board.IsFull():
		return ResultTie
	default:
		return ResultNone
	}
}

func (that *Game) UpdateGameState() {
	switch that.DetermineGameResult() {
	case ResultXWins:
		that.finish(PlayerX, false)
	case ResultOWins:
		that.finish(PlayerO, false)
	case ResultTie:
		that.finish(Empty, true)
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) finish(winner Mark, tie bool) {
	that.Winner = winner
	that.Tie = tie
	that.Status = StatusFinished
	that.Turn = Empty
}

func (that *Game) MakeTurn(mark Mark, cell Cell) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !cell.Valid() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if !that.Board.Place(cell.Row, cell.Col, mark) {
		return apperror.ErrCellOccupied
	}

	that.Turn = mark.Opponent()
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
