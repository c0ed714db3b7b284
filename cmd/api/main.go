package main

import (
	"context"
	"log"

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/internal/auth"
	authhttp "github.com/devfolio/portfolio-backend/internal/auth/http"
	"github.com/devfolio/portfolio-backend/internal/auth/identity"
	"github.com/devfolio/portfolio-backend/internal/bootstrap"
	"github.com/devfolio/portfolio-backend/internal/cache"
	cronjob "github.com/devfolio/portfolio-backend/internal/cache/cron"
	"github.com/devfolio/portfolio-backend/internal/projects/repository"
)

const serviceName = "portfolio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	ctx := context.Background()

	var (
		verifier auth.TokenVerifier = auth.DenyAll{}
		revoker  authhttp.TokenRevoker
		store    repository.Store = repository.NewMemoryStore()
	)

	if cfg.Firebase.CredentialsPath != "" || cfg.Firebase.CredentialsBase64 != "" {
		app, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}

		authClient, err := auth.AuthClient(ctx, app)
		if err != nil {
			log.Fatalf("firebase auth: %v", err)
		}
		verifier = authClient
		revoker = authClient

		if cfg.Store.Driver == "firestore" {
			fsClient, err := auth.FirestoreClient(ctx, app)
			if err != nil {
				log.Fatalf("firestore: %v", err)
			}
			defer fsClient.Close()
			store = repository.NewFirestoreStore(fsClient, cfg.Store.Collection)
		}
	} else {
		log.Println("Firebase credentials not configured; mutations will be rejected")
	}

	var views cache.Views = cache.NoopViews{}
	redisClient, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		views = cache.NewRedisViews(redisClient, cfg.Cache.ViewTTL)
	}

	var identityClient *identity.Client
	if cfg.Firebase.WebAPIKey != "" {
		identityClient = identity.NewClient(cfg.Firebase.WebAPIKey)
	} else {
		log.Println("FIREBASE_WEB_API_KEY not set; identity endpoints disabled")
	}

	router, projectsHandler := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Gate:        auth.NewGate(verifier, nil),
		Store:       store,
		Views:       views,
		Identity:    identityClient,
		Revoker:     revoker,
	})

	if redisClient != nil {
		warmer := cronjob.NewWarmer(cfg.Cache.WarmInterval, projectsHandler.WarmPublicView)
		warmer.Start()
		defer warmer.Stop()
	}

	log.Printf("%s %s listening on :%s (store=%s)", serviceName, cfg.App.Version, cfg.Server.Port, cfg.Store.Driver)
	log.Fatal(router.Run(":" + cfg.Server.Port))
}
