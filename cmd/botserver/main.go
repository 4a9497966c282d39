package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/benjamacias/chess-bot/server"
)

func main() {
	var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	var sup, err = server.New(server.Config{
		EnginePath:    enginePath(),
		StockfishPath: stockfishPath(),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("supervisor startup failed")
	}
	defer sup.Close()

	var addr = os.Getenv("BOT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	var srv = &http.Server{Addr: addr, Handler: sup.Routes()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func enginePath() string {
	if p := os.Getenv("ENGINE_PATH"); p != "" {
		return p
	}
	return "./chess-bot"
}

func stockfishPath() string {
	if p := os.Getenv("STOCKFISH_PATH"); p != "" {
		return p
	}
	var candidates = []string{
		"stockfish",
		"/usr/bin/stockfish",
		"/usr/local/bin/stockfish",
		"/opt/homebrew/bin/stockfish",
	}
	for _, candidate := range candidates {
		if p, err := exec.LookPath(candidate); err == nil {
			return p
		}
	}
	return ""
}
