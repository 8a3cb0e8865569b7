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

	"connectsphere/internal/api"
	"connectsphere/internal/app/service"
	"connectsphere/internal/common/security"
	"connectsphere/internal/domain/repository"
	"connectsphere/internal/platform/config"
	"connectsphere/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize security primitives
	jwt := security.NewJWT(cfg.JWTKey, cfg.JWTExp)
	hasher := security.NewPasswordHasher(cfg.BcryptCost, cfg.HashConcurrency)

	// 3. Initialize Database
	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer database.Close(ctx, db)

	// 4. Initialize Repositories
	userRepo, err := repository.NewMongoUserRepository(ctx, db)
	if err != nil {
		log.Fatalf("Error initializing user repository: %v", err)
	}
	postRepo := repository.NewMongoPostRepository(db)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, jwt, hasher)
	postService := service.NewPostService(postRepo, userRepo)
	searchService := service.NewSearchService(userRepo, postRepo, postService)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(jwt, authService, postService, searchService, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
