package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/tictactoe"
)

func newTestServer() http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewServer(logger, NewHandlers(logger, tictactoe.NewEngine(nil))).Handler()
}

func post(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func TestPingHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()

	newTestServer().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestHandlers_BestMove(t *testing.T) {
	handler := newTestServer()

	tests := []struct {
		name   string
		body   string
		status int
		want   BestMoveResponse
	}{
		{
			name:   "Empty board takes the centre",
			body:   `{"board":["","","","","","","","",""]}`,
			status: http.StatusOK,
			want:   BestMoveResponse{Found: true, Row: 2, Col: 2},
		},
		{
			name:   "Completes the anti-diagonal",
			body:   `{"board":["X","O","X","O","X","O","","",""]}`,
			status: http.StatusOK,
			want:   BestMoveResponse{Found: true, Row: 3, Col: 1},
		},
		{
			name:   "Blocks the top row",
			body:   `{"board":["O","O","","","X","","","",""]}`,
			status: http.StatusOK,
			want:   BestMoveResponse{Found: true, Row: 1, Col: 3},
		},
		{
			name:   "Full board has no move",
			body:   `{"board":["X","O","X","X","O","O","O","X","X"]}`,
			status: http.StatusOK,
			want:   BestMoveResponse{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: posting the board
			rr := post(t, handler, "/api/v1/best-move", tt.body)

			// Then: the engine's choice comes back
			require.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var got BestMoveResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Rejects bad input", func(t *testing.T) {
		for _, body := range []string{
			`not json`,
			`{"board":["X"]}`,
			`{"board":["X","Q","","","","","","",""]}`,
			`{"cells":["","","","","","","","",""]}`,
		} {
			rr := post(t, handler, "/api/v1/best-move", body)

			assert.Equal(t, http.StatusBadRequest, rr.Code, body)

			var got ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.NotEmpty(t, got.Error)
		}
	})

	t.Run("Rejects a won board", func(t *testing.T) {
		rr := post(t, handler, "/api/v1/best-move", `{"board":["O","O","O","X","X","","","",""]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "O has won")
	})
}

func TestHandlers_Evaluate(t *testing.T) {
	handler := newTestServer()

	t.Run("Scores every empty cell", func(t *testing.T) {
		// Given: X to move with a win available on the anti-diagonal
		body := `{"board":["X","O","X","O","X","O","","",""]}`

		// When: evaluating the board
		rr := post(t, handler, "/api/v1/evaluate", body)

		// Then: candidates come back in centre-first order with their values
		require.Equal(t, http.StatusOK, rr.Code)

		var got EvaluateResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Empty(t, got.Winner)
		assert.False(t, got.Full)
		require.Len(t, got.Scores, 3)
		assert.Equal(t, CellScore{Row: 3, Col: 2, Score: 1.0 / 3}, got.Scores[0])
		assert.Equal(t, CellScore{Row: 3, Col: 1, Score: 1}, got.Scores[1])
		assert.Equal(t, CellScore{Row: 3, Col: 3, Score: 1}, got.Scores[2])
	})

	t.Run("Finished board reports the winner", func(t *testing.T) {
		rr := post(t, handler, "/api/v1/evaluate", `{"board":["X","X","X","O","O","","","",""]}`)

		require.Equal(t, http.StatusOK, rr.Code)

		var got EvaluateResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "X", got.Winner)
		assert.Empty(t, got.Scores)
	})

	t.Run("Full board is a draw with no scores", func(t *testing.T) {
		rr := post(t, handler, "/api/v1/evaluate", `{"board":["X","O","X","X","O","O","O","X","X"]}`)

		require.Equal(t, http.StatusOK, rr.Code)

		var got EvaluateResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.Full)
		assert.Empty(t, got.Winner)
		assert.Empty(t, got.Scores)
	})

	t.Run("Unknown route", func(t *testing.T) {
		rr := post(t, handler, "/api/v1/unknown", `{}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
