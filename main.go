// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"movie-review/cmd"
	"movie-review/internal/data/repository"
	"movie-review/internal/wire"
	"movie-review/pkg/database"
	"movie-review/pkg/firebase"
	"movie-review/pkg/tmdb"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("store", config.Store.Driver),
		zap.Strings("allowed_origins", config.CORS.AllowedOrigins),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Identity provider. A failure here leaves public routes working and
	// rejects every token.
	var verifier firebase.TokenVerifier = firebase.Unavailable()
	fbApp, err := firebase.InitFirebase(ctx, config.Firebase, logger)
	if err != nil {
		logger.Error("Failed to initialize Firebase; authenticated routes will reject all tokens", zap.Error(err))
	} else {
		verifier = firebase.NewAuthVerifier(fbApp.AuthClient)
	}

	// Document store. A failure is reported per request as a misconfiguration.
	repo, closeStore := openStore(ctx, config, fbApp, logger)
	defer closeStore()

	catalog := tmdb.NewClient(config.TMDB, logger)

	// Wire all dependencies
	app, err := wire.Wiring(wire.Dependencies{
		Repo:     repo,
		Catalog:  catalog,
		Verifier: verifier,
	}, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

func openStore(ctx context.Context, config *utils.Config, fbApp *firebase.App, logger *zap.Logger) (*repository.Repository, func()) {
	noop := func() {}

	switch config.Store.Driver {
	case utils.StoreMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return repository.NewMemoryRepository(logger), noop

	case utils.StorePostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return repository.Unavailable(utils.StorePostgres), noop
		}
		logger.Info("Database connected successfully")
		return repository.NewPostgresRepository(db, logger), db.Close

	default:
		if fbApp == nil {
			logger.Warn("Firebase not initialized; Firestore operations will fail until credentials are available")
			return repository.Unavailable(utils.StoreFirestore), noop
		}

		client, err := fbApp.Firestore(ctx)
		if err != nil {
			logger.Error("Failed to create Firestore client", zap.Error(err))
			return repository.Unavailable(utils.StoreFirestore), noop
		}
		logger.Info("Firestore client ready")

		db := database.NewFirestoreClient(client, config.Store.WriteTimeout)
		return repository.NewFirestoreRepository(db, logger), func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close Firestore client", zap.Error(err))
			}
		}
	}
}
