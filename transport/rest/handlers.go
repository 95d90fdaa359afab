package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/tictactoe"
)

const maxBodyBytes = 1 << 10

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	BestMove(w http.ResponseWriter, r *http.Request)
	Evaluate(w http.ResponseWriter, r *http.Request)
}

type engine interface {
	BestMove(board *entity.Board) (entity.Cell, bool)
	Analyze(board *entity.Board) []tictactoe.Score
}

type BoardRequest struct {
	Board []string `json:"board"`
}

type BestMoveResponse struct {
	Found bool `json:"found"`
	Row   int  `json:"row,omitempty"`
	Col   int  `json:"col,omitempty"`
}

type CellScore struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Score float64 `json:"score"`
}

type EvaluateResponse struct {
	Scores []CellScore `json:"scores"`
	Winner string      `json:"winner"`
	Full   bool        `json:"full"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	engine engine
}

func NewHandlers(logger *slog.Logger, engine engine) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		engine: engine,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

// BestMove answers with the engine's move for X on the posted board.
func (that *handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "BestMove")

	board, err := decodeBoard(w, r)
	if err != nil {
		log.Warn("bad board", "error", err)
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if winner := winnerOf(&board); winner != entity.Empty {
		that.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: fmt.Sprintf("%v: %s has won", apperror.ErrGameFinished, winner),
		})
		return
	}

	cell, found := that.engine.BestMove(&board)
	if !found {
		that.writeJSON(w, http.StatusOK, BestMoveResponse{})
		return
	}

	that.writeJSON(w, http.StatusOK, BestMoveResponse{Found: true, Row: cell.Row, Col: cell.Col})
}

// Evaluate scores every empty cell for X. A finished board has no scores.
func (that *handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Evaluate")

	board, err := decodeBoard(w, r)
	if err != nil {
		log.Warn("bad board", "error", err)
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	winner := winnerOf(&board)
	resp := EvaluateResponse{
		Scores: []CellScore{},
		Full:   board.IsFull(),
	}
	if winner != entity.Empty {
		resp.Winner = winner.String()
		that.writeJSON(w, http.StatusOK, resp)
		return
	}

	for _, score := range that.engine.Analyze(&board) {
		resp.Scores = append(resp.Scores, CellScore{Row: score.Cell.Row, Col: score.Cell.Col, Score: score.Value})
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func decodeBoard(w http.ResponseWriter, r *http.Request) (entity.Board, error) {
	var req BoardRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return entity.NewBoard(), fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		return entity.NewBoard(), err
	}

	return board, nil
}

// winnerOf reports X before O, the same order the search checks them.
func winnerOf(board *entity.Board) entity.Mark {
	switch {
	case board.IsWinner(entity.PlayerX):
		return entity.PlayerX
	case board.IsWinner(entity.PlayerO):
		return entity.PlayerO
	default:
		return entity.Empty
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
