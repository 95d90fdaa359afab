package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/usecase"
)

const (
	actionNewGame  = "game:new"
	actionGameTurn = "game:turn"
	actionError    = "error"

	sendBufferSize  = 16
	shutdownTimeout = 5 * time.Second
)

type uGame interface {
	NewGame(ctx context.Context, first entity.Mark) (*usecase.TurnResult, error)
	MakeTurn(ctx context.Context, game *entity.Game, cell entity.Cell) (*usecase.TurnResult, error)
}

type handlerFunc func(ctx context.Context, session *session, message *Message) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn

	return server
}

// Handler returns the mux serving /ws. Connections live until ctx is done.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves one player.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := newSession(connCtx, entity.NewHumanPlayer(uuid.NewString()))
	log := that.logger.With("method", "upgradeToWebSocket", "playerID", sess.player.ID)
	log.Info("WebSocket connection established")

	writeErr := make(chan error, 1)
	go func() {
		writeErr <- writeWSWithHeartbeat(connCtx, conn, sess.send)
	}()

	// A canceled server context unblocks the read loop below.
	go func() {
		<-connCtx.Done()
		_ = conn.Close()
	}()

	if err = that.handleMessages(connCtx, conn, sess); err != nil && !isClosed(err) {
		log.Error("error handling messages", "error", err)
	}

	cancel()
	if err = <-writeErr; err != nil && !isClosed(err) {
		log.Error("error writing messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sess *session) error {
	log := that.logger.With("method", "handleMessages", "playerID", sess.player.ID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			sess.sendError(actionError, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			sess.sendError(message.Action, fmt.Sprintf("unknown action %q", message.Action))
			continue
		}

		if err = handler(ctx, sess, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// isClosed reports the ways a connection normally ends.
func isClosed(err error) bool {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code == websocket.CloseNormalClosure ||
			closeErr.Code == websocket.CloseGoingAway ||
			closeErr.Code == websocket.CloseNoStatusReceived
	}

	return errors.Is(err, websocket.ErrCloseSent) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, context.Canceled)
}
