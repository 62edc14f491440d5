package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, registry GameRegistry) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: newHandlers(logger, registry),
	}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.handlers.Ping)

	mux.HandleFunc("POST /api/v1/quoridor/games", that.handlers.CreateGame)
	mux.HandleFunc("GET /api/v1/quoridor/games/{game_id}", that.handlers.GetGame)
	mux.HandleFunc("DELETE /api/v1/quoridor/games/{game_id}", that.handlers.DeleteGame)
	mux.HandleFunc("POST /api/v1/quoridor/games/{game_id}/move", that.handlers.MovePawn)
	mux.HandleFunc("POST /api/v1/quoridor/games/{game_id}/wall", that.handlers.PlaceWall)
	mux.HandleFunc("POST /api/v1/quoridor/games/{game_id}/ai-move", that.handlers.AIMove)
	mux.HandleFunc("GET /api/v1/quoridor/games/{game_id}/valid-moves", that.handlers.ValidMoves)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}
