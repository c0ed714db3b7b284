package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/devfolio/portfolio-backend/config"
)

// InitializeFirebase initializes the Firebase Admin SDK from either a service
// account file or a base64-encoded service account JSON and returns the app.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*firebase.App, error) {
	opt, err := credentialOption(cfg)
	if err != nil {
		return nil, err
	}

	var fbcfg *firebase.Config
	if cfg.ProjectID != "" {
		fbcfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbcfg, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	return app, nil
}

// AuthClient returns the Admin SDK Auth client used for token verification.
func AuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return client, nil
}

// FirestoreClient returns the Admin SDK Firestore client.
func FirestoreClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}
	return client, nil
}

func credentialOption(cfg *config.FirebaseConfig) (option.ClientOption, error) {
	if cfg.CredentialsBase64 != "" {
		raw, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_BASE64 is not valid base64: %w", err)
		}
		return option.WithCredentialsJSON(raw), nil
	}
	if cfg.CredentialsPath != "" {
		return option.WithCredentialsFile(cfg.CredentialsPath), nil
	}
	return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH or FIREBASE_SERVICE_ACCOUNT_BASE64 is required")
}
