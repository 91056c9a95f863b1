package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"juice-store/internal/config"
	"juice-store/internal/logger"
	custommiddleware "juice-store/internal/middleware"
	"juice-store/internal/repository"
	"juice-store/internal/service"
	"juice-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

func NewServer(cfg *config.Config, log *zap.Logger, db *sql.DB) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, !cfg.IsProduction()))
	router.Use(custommiddleware.LoggingMiddleware(log))
	router.Use(custommiddleware.ErrorHandlingMiddleware(log))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	audit := logger.NewAudit(log)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Services
	accessTTL := time.Duration(cfg.JWT.AccessExpiry) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshExpiry) * 24 * time.Hour
	tokens := service.NewTokenService(cfg.JWT.Secret, accessTTL, refreshTTL)
	userService := service.NewUserService(userRepo, tokens)
	productService := service.NewProductService(productRepo)

	// Handlers
	userHandler := transport.NewUserHandler(userService, audit, cfg.IsProduction(), tokens.AccessExpiry(), tokens.RefreshExpiry())
	productHandler := transport.NewProductHandler(productService, audit)

	authMiddleware := custommiddleware.AuthMiddleware(tokens, audit)

	userHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: log,
		db:     db,
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
