package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/quoridor-backend/internal/config"
	"github.com/rocketscienceinc/quoridor-backend/internal/repository"
	"github.com/rocketscienceinc/quoridor-backend/internal/repository/storage"
	"github.com/rocketscienceinc/quoridor-backend/internal/service"
	"github.com/rocketscienceinc/quoridor-backend/internal/usecase"
	"github.com/rocketscienceinc/quoridor-backend/transport/rest"
)

const migrationSourceURL = "file://db/migration"

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// The store is best effort: a disabled or unreachable database leaves
	// the registry memory-only.
	gameRepo := connectStore(log, conf)

	botService := service.NewBotService()
	gameManager := usecase.NewGameManager(logger, gameRepo, botService)

	server := rest.New(logger, gameManager)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err := server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func connectStore(log *slog.Logger, conf *config.Config) repository.GameRepository {
	if !conf.Database.Enabled {
		log.Info("Database disabled, running memory-only")
		return nil
	}

	conn, err := storage.New(conf.Database.URL)
	if err != nil {
		log.Warn("Could not connect to database, running memory-only", "error", err)
		return nil
	}

	if err = storage.Migrate(conn, migrationSourceURL); err != nil {
		log.Warn("Could not migrate database, running memory-only", "error", err)

		if closeErr := conn.Close(); closeErr != nil {
			log.Error("could not close database connection", "error", closeErr)
		}

		return nil
	}

	return repository.NewGameRepository(conn)
}
