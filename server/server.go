package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"nameresolver/audit"
	"nameresolver/catalog"
	"nameresolver/internal/config"
	"nameresolver/server/handlers"
	"nameresolver/server/middleware"
	"nameresolver/server/services"
)

// Server HTTP сервер разрешения названий.
type Server struct {
	cfg          *config.Config
	catalogStore *catalog.Store
	auditStore   *audit.SQLiteStore
	auditSink    *audit.AsyncSink
	source       *services.SnapshotSource
	httpServer   *http.Server
	logger       *slog.Logger
	startTime    time.Time
}

// NewServer собирает сервер из конфигурации: открывает базы каталога и
// журнала, создает снимки и сервисы, регистрирует маршруты.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	catalogStore, err := catalog.NewStore(cfg.CatalogDatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	auditStore, err := audit.NewSQLiteStore(cfg.AuditDatabasePath)
	if err != nil {
		catalogStore.Close()
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	s := &Server{
		cfg:          cfg,
		catalogStore: catalogStore,
		auditStore:   auditStore,
		auditSink:    audit.NewAsyncSink(auditStore, cfg.AuditBufferSize),
		source:       services.NewSnapshotSource(catalogStore, cfg.SnapshotTTL),
		logger:       slog.Default().With("component", "server"),
		startTime:    time.Now(),
	}

	handler, err := s.buildHTTPHandler()
	if err != nil {
		s.closeResources()
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

func (s *Server) buildHTTPHandler() (http.Handler, error) {
	stopWords, err := s.cfg.StopWords()
	if err != nil {
		return nil, fmt.Errorf("failed to load stop words: %w", err)
	}

	resolutionService, err := services.NewResolutionService(
		s.source, s.auditSink, s.cfg.Thresholds, s.cfg.Weights, stopWords)
	if err != nil {
		return nil, err
	}
	similarityService := services.NewSimilarityService(s.cfg.Weights, stopWords, s.cfg.StemmerLanguage)

	resolutionHandler := handlers.NewResolutionHandler(resolutionService)
	normalizationHandler := handlers.NewNormalizationHandler()
	similarityHandler := handlers.NewSimilarityHandler(similarityService)
	auditHandler := handlers.NewAuditHandler(s.auditStore)
	catalogHandler := handlers.NewCatalogHandler(s.catalogStore, s.source)

	// Режим gin можно переопределить через GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRateLimitMiddleware(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/resolve", resolutionHandler.HandleResolve)
		api.POST("/resolve/confirm", resolutionHandler.HandleConfirm)
		api.POST("/normalize", normalizationHandler.HandleNormalize)
		api.POST("/similarity/compare", similarityHandler.HandleCompare)
		api.GET("/audit/:subject_ref", auditHandler.HandleListBySubject)

		api.POST("/catalog", catalogHandler.HandleUpsert)
		api.DELETE("/catalog/:id", catalogHandler.HandleDelete)
		api.GET("/catalog/count", catalogHandler.HandleCount)
		api.GET("/catalog/by-tin", resolutionHandler.HandleLookupByTIN)
	}

	return router, nil
}

// handleHealth проверка живости
// @Summary Проверка состояния сервиса
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Состояние"
// @Router /health [get]
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

// Start запускает HTTP сервер и блокируется до остановки.
func (s *Server) Start() error {
	s.logger.Info("server starting", "port", s.cfg.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидается доставки записей журнала
// и закрывает базы.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")

	var firstErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("failed to stop http server: %w", err)
	}

	s.closeResources()
	return firstErr
}

func (s *Server) closeResources() {
	if s.auditSink != nil {
		s.auditSink.Close()
	}
	if s.auditStore != nil {
		s.auditStore.Close()
	}
	if s.catalogStore != nil {
		s.catalogStore.Close()
	}
}
