package api

import (
	"net/http"
	"time"

	"connectsphere/internal/api/handler"
	"connectsphere/internal/app/service"
	"connectsphere/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwt *security.JWT,
	authService *service.AuthService,
	postService *service.PostService,
	searchService *service.SearchService,
	corsAllowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Parses "Authorization: Bearer <token>" and puts claims in context.
	// Route groups that need a valid token add middleware.Authenticator.
	r.Use(jwtauth.Verifier(jwt.TokenAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth + profile routes
	authHandler := handler.NewAuthHandler(authService)
	r.Group(func(auth chi.Router) {
		authHandler.RegisterRoutes(auth)
	})

	// Post routes (feed public, mutations authenticated)
	postHandler := handler.NewPostHandler(postService)
	r.Route("/post", postHandler.RegisterRoutes)

	// Search routes (public)
	searchHandler := handler.NewSearchHandler(searchService)
	r.Route("/search", searchHandler.RegisterRoutes)

	return r
}
