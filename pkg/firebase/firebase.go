package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"movie-review/pkg/utils"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and its service clients
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

// InitFirebase initializes the Firebase application from a service account file,
// falling back to Application Default Credentials when the file does not exist.
func InitFirebase(ctx context.Context, cfg utils.FirebaseConfig, log *zap.Logger) (*App, error) {
	var opts []option.ClientOption
	var conf *firebase.Config
	if cfg.ProjectID != "" {
		conf = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	if _, err := os.Stat(cfg.ServiceAccountPath); err == nil {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
		log.Info("Using Firebase service account file", zap.String("path", cfg.ServiceAccountPath))
	} else if errors.Is(err, os.ErrNotExist) {
		log.Warn("Service account JSON not found, attempting Application Default Credentials",
			zap.String("path", cfg.ServiceAccountPath))
	} else {
		return nil, fmt.Errorf("stat firebase credentials %s: %w", cfg.ServiceAccountPath, err)
	}

	firebaseApp, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	log.Info("Firebase app and auth client initialized")
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient}, nil
}

// Firestore opens the document store client for this app.
func (a *App) Firestore(ctx context.Context) (*firestore.Client, error) {
	client, err := a.FirebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating firestore client: %w", err)
	}
	return client, nil
}
