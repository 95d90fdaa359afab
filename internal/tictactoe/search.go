package tictactoe

import (
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
)

const (
	maximizer = entity.PlayerX
	minimizer = entity.PlayerO
)

// Score is the minimax value of playing X on Cell.
type Score struct {
	Cell  entity.Cell
	Value float64
}

// Engine finds optimal moves for X by exhaustive minimax with alpha-beta
// pruning. It keeps no state between calls, so one Engine may serve many
// boards as long as each board has a single owner.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Engine{
		logger: logger.With("component", "search"),
	}
}

// search carries the per-call diagnostics of one top-level computation.
type search struct {
	logger *slog.Logger
	board  *entity.Board
	nodes  int
}

func (that *Engine) newSearch(board *entity.Board) *search {
	return &search{logger: that.logger, board: board}
}

// Evaluate returns the minimax value of board with the given side to move.
// Wins score 1/depth for X and -1/depth for O, so faster wins and slower
// losses are preferred. The board is restored before returning.
func (that *Engine) Evaluate(board *entity.Board, depth int, maximizing bool, alpha, beta float64) float64 {
	return that.newSearch(board).evaluate(depth, maximizing, alpha, beta)
}

func (that *search) evaluate(depth int, maximizing bool, alpha, beta float64) float64 {
	that.nodes++
	that.logger.Debug("minimax", "depth", depth, "maximizing", maximizing, "alpha", alpha, "beta", beta)

	// X is checked before O, and both before the draw.
	switch {
	case that.board.IsWinner(maximizer):
		return 1 / float64(depth)
	case that.board.IsWinner(minimizer):
		return -1 / float64(depth)
	case that.board.IsFull():
		return 0
	}

	if maximizing {
		best := math.Inf(-1)
		for _, cell := range that.board.EmptyCells() {
			if !that.board.Place(cell.Row, cell.Col, maximizer) {
				continue
			}
			value := that.evaluate(depth+1, false, alpha, beta)
			that.board.Clear(cell.Row, cell.Col)

			best = math.Max(best, value)
			alpha = math.Max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, cell := range that.board.EmptyCells() {
		if !that.board.Place(cell.Row, cell.Col, minimizer) {
			continue
		}
		value := that.evaluate(depth+1, true, alpha, beta)
		that.board.Clear(cell.Row, cell.Col)

		best = math.Min(best, value)
		beta = math.Min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return best
}

// BestMove returns the optimal move for X, preferring cells nearer the
// centre among equal scores. ok is false when the board has no empty cell.
func (that *Engine) BestMove(board *entity.Board) (entity.Cell, bool) {
	s := that.newSearch(board)

	var (
		best  entity.Cell
		found bool
	)
	bestScore := math.Inf(-1)

	for _, score := range s.scoreCandidates() {
		if score.Value > bestScore {
			bestScore = score.Value
			best = score.Cell
			found = true
		}
	}

	if found {
		that.logger.Info("best move selected", "move", best.String(), "score", bestScore, "nodes", s.nodes)
	}

	return best, found
}

// Analyze scores every candidate for X in the order BestMove considers them.
func (that *Engine) Analyze(board *entity.Board) []Score {
	return that.newSearch(board).scoreCandidates()
}

// scoreCandidates evaluates each empty cell for X. Every candidate starts
// from depth 1 with the widest alpha-beta window.
func (that *search) scoreCandidates() []Score {
	candidates := orderByCentre(that.board.EmptyCells())
	scores := make([]Score, 0, len(candidates))

	for _, cell := range candidates {
		if !that.board.Place(cell.Row, cell.Col, maximizer) {
			continue
		}
		value := that.evaluate(1, false, math.Inf(-1), math.Inf(1))
		that.board.Clear(cell.Row, cell.Col)

		scores = append(scores, Score{Cell: cell, Value: value})
	}

	return scores
}

// orderByCentre sorts cells by (|row-2|, |col-2|), keeping scan order on ties.
func orderByCentre(cells []entity.Cell) []entity.Cell {
	slices.SortStableFunc(cells, func(a, b entity.Cell) int {
		if d := distance(a.Row) - distance(b.Row); d != 0 {
			return d
		}
		return distance(a.Col) - distance(b.Col)
	})
	return cells
}

func distance(coord int) int {
	if coord > 2 {
		return coord - 2
	}
	return 2 - coord
}
