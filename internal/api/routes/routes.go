package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/graphql-go/handler"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hsm-gustavo/users-graphql/internal/api/auth"
	"github.com/hsm-gustavo/users-graphql/internal/api/graph"
	"github.com/hsm-gustavo/users-graphql/internal/api/health"
	"github.com/hsm-gustavo/users-graphql/internal/api/user"
)

func SetupRoutes(database *mongo.Database, tokens *auth.TokenService, logger *slog.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // max time in seconds for OPTIONS preflight response cache
	})

	r.Use(corsMiddleware.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(2 * time.Minute))

	store := user.NewMongoStore(database)
	resolver := graph.NewResolver(store, tokens, logger)

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, err
	}

	gqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	r.Get("/health", health.HealthHandler)

	// one endpoint serves both queries and GraphiQL; the middleware only
	// annotates the context, it never rejects
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens))
		r.Handle("/graphql", gqlHandler)
	})

	return r, nil
}
