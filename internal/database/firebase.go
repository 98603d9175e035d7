package database

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// Firebase bundles the admin SDK clients. It is built once in main and
// handed to the features that need it.
type Firebase struct {
	App  *firebase.App
	Auth *auth.Client
	// DB is nil when no Realtime Database URL is configured.
	DB *db.Client
}

// ConnectFirebase initializes the Firebase Admin SDK from a service account file
func ConnectFirebase(ctx context.Context, credentialsPath, databaseURL string) (*Firebase, error) {
	opt := option.WithCredentialsFile(credentialsPath)

	var conf *firebase.Config
	if databaseURL != "" {
		conf = &firebase.Config{DatabaseURL: databaseURL}
	}

	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	fb := &Firebase{App: app, Auth: authClient}

	if databaseURL != "" {
		dbClient, err := app.Database(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting firebase database client: %w", err)
		}
		fb.DB = dbClient
	}

	return fb, nil
}
