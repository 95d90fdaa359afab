package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/config"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/console"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/service"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/tictactoe"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/usecase"
	"github.com/m-rishabh-007/Codsoft-Internship/transport/rest"
	"github.com/m-rishabh-007/Codsoft-Internship/transport/websocket"
)

// RunApp - runs the application in the configured mode.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	engine := tictactoe.NewEngine(logger)
	gameUseCase := usecase.NewGameUseCase(logger, service.NewBotService(engine))

	if conf.Mode == config.ModeServer {
		return runServers(ctx, logger, conf, engine, gameUseCase)
	}

	return runConsole(ctx, logger, conf, gameUseCase, os.Stdin, os.Stdout)
}

func runConsole(ctx context.Context, logger *slog.Logger, conf *config.Config, gameUseCase usecase.GameUseCase, in io.Reader, out io.Writer) error {
	game := console.New(logger, gameUseCase, in, out, console.Options{
		Plain:        conf.Console.Plain,
		XColor:       conf.Console.XColor,
		OColor:       conf.Console.OColor,
		AIMovesFirst: conf.Console.AIMovesFirst,
	})

	err := game.Play(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		logger.Info("console game ended early", "reason", err)
		return nil
	}

	return err
}

func runServers(ctx context.Context, logger *slog.Logger, conf *config.Config, engine *tictactoe.Engine, gameUseCase usecase.GameUseCase) error {
	log := logger.With("component", "app")

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpServer := rest.NewServer(logger, rest.NewHandlers(logger, engine))
		httpErrCh <- httpServer.Start(ctx, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		wsErrCh <- wsServer.Start(ctx, conf.SocketPort)
	}()

	var err error
	select {
	case err = <-httpErrCh:
		if err != nil {
			err = fmt.Errorf("HTTP server error: %w", err)
		}
	case err = <-wsErrCh:
		if err != nil {
			err = fmt.Errorf("WebSocket server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		err = errors.Join(<-httpErrCh, <-wsErrCh)
	}

	return err
}
