package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Skufu/dietplan/internal/chart"
	"github.com/Skufu/dietplan/internal/diet"
	"github.com/Skufu/dietplan/internal/logging"
	"github.com/Skufu/dietplan/internal/report"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

const (
	classifierNone   = "none"
	classifierStatic = "static"
	classifierLLM    = "llm"
)

type Config struct {
	Port        string
	DatabaseURL string
	EnableDB    bool
	CatalogPath string
	LogLevel    string

	Classifier         string
	ClassifierCategory chart.Category
	LLM                chart.LLMConfig
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dietplan server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	planner, err := report.NewPlanner(catalog)
	if err != nil {
		return err
	}

	predictor, err := buildPredictor(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var db HealthChecker
	if cfg.EnableDB {
		pool, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer pool.Close()
		db = pool
	}

	router := setupRouter(routerDeps{
		db:         db,
		planner:    planner,
		charts:     chart.NewService(predictor),
		logger:     logger,
		staticRoot: detectStaticRoot(),
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logger.Info("server listening",
		zap.String("port", cfg.Port),
		zap.Bool("db", cfg.EnableDB),
		zap.String("classifier", cfg.Classifier),
		zap.String("catalog", catalogLabel(cfg.CatalogPath)),
	)
	return waitForShutdown(server, serveErr, logger)
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		EnableDB:           strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Classifier:         strings.ToLower(getEnv("CLASSIFIER", classifierNone)),
		ClassifierCategory: chart.Category(getEnv("CLASSIFIER_CATEGORY", string(chart.CategoryBalanced))),
		LLM: chart.LLMConfig{
			BaseURL: getEnv("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
			APIKey:  os.Getenv("LLM_API_KEY"),
			Model:   os.Getenv("LLM_MODEL"),
		},
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	switch cfg.Classifier {
	case classifierNone:
	case classifierStatic:
		if _, err := chart.Lookup(cfg.ClassifierCategory); err != nil {
			return nil, fmt.Errorf("CLASSIFIER_CATEGORY: %w", err)
		}
	case classifierLLM:
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required when CLASSIFIER=llm")
		}
	default:
		return nil, fmt.Errorf("CLASSIFIER must be one of none, static, llm (got %q)", cfg.Classifier)
	}

	return cfg, nil
}

func loadCatalog(path string) (*diet.Catalog, error) {
	if path == "" {
		return diet.DefaultCatalog(), nil
	}
	catalog, err := diet.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

func catalogLabel(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

func buildPredictor(cfg *Config) (chart.Predictor, error) {
	switch cfg.Classifier {
	case classifierStatic:
		return chart.StaticPredictor{Category: cfg.ClassifierCategory}, nil
	case classifierLLM:
		p, err := chart.NewLLMPredictor(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("build classifier: %w", err)
		}
		return p, nil
	default:
		return nil, nil
	}
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func waitForShutdown(server *http.Server, serveErr <-chan error, logger *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "web"
	}

	candidates := []string{
		filepath.Join(startDir, "web"),
		filepath.Join(filepath.Dir(startDir), "web"),
		filepath.Join(filepath.Dir(filepath.Dir(startDir)), "web"),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "index.html")) {
			return dir
		}
	}

	return candidates[0]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
