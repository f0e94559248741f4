package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-po-api/internal/config"
	"github.com/go-po-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-po-api/internal/infrastructure/jwt"
	"github.com/go-po-api/internal/infrastructure/otpcache"
	s3infra "github.com/go-po-api/internal/infrastructure/s3"
	"github.com/go-po-api/internal/infrastructure/sns"
	transporthttp "github.com/go-po-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — signature requests fall back to the
	// configured default signer when auth is not set up).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// SNS notification gateway (optional — codes are still issued without
	// it, just not pushed anywhere).
	var gateway sns.Publisher
	if p, err := sns.NewPublisher(cfg); err == nil {
		gateway = p
	} else {
		log.Printf("WARN: notification gateway not available: %v", err)
	}

	// S3 archive for signed-order documents.
	s3Client := s3infra.NewClient(cfg)
	documentStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	deps := &transporthttp.Deps{
		OrderRepo:       dynamo.NewOrderRepo(dynamoClient, cfg.DynamoTables.Orders),
		CredentialStore: otpcache.New(cfg.OTPTTL),
		Gateway:         gateway,
		DocumentStore:   documentStore,
		JWTProvider:     jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
