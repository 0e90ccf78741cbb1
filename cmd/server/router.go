package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/dietplan/internal/bmi"
	"github.com/Skufu/dietplan/internal/chart"
	"github.com/Skufu/dietplan/internal/diet"
	"github.com/Skufu/dietplan/internal/logging"
	"github.com/Skufu/dietplan/internal/report"
)

type routerDeps struct {
	db         HealthChecker
	planner    *report.Planner
	charts     *chart.Service
	logger     *zap.Logger
	staticRoot string
}

type bmiQuery struct {
	WeightKg *float64 `form:"weight_kg" binding:"required"`
	HeightCm *float64 `form:"height_cm" binding:"required"`
}

func setupRouter(deps routerDeps) *gin.Engine {
	if deps.logger == nil {
		deps.logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		logging.Middleware(deps.logger),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
			ExposeHeaders: []string{"Content-Disposition", logging.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	// Serve the profile form when a web/ directory is present.
	router.StaticFile("/", filepath.Join(deps.staticRoot, "index.html"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if deps.db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := deps.db.Ping(ctx); err != nil {
			dbStatus = fmt.Sprintf("unhealthy: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     dbStatus,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     dbStatus,
		})
	})

	api := router.Group("/api")

	api.GET("/categories", func(c *gin.Context) {
		templates, err := deps.planner.Catalog().Templates()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": templates})
	})

	api.GET("/rules", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"default": diet.DefaultCategory,
			"order":   "last-match-wins",
			"rules":   diet.Rules(),
		})
	})

	api.GET("/bmi", func(c *gin.Context) {
		var q bmiQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_query", "message": "weight_kg and height_cm are required numbers"})
			return
		}
		result, err := bmi.Compute(*q.WeightKg, *q.HeightCm)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	api.POST("/plans", func(c *gin.Context) {
		rep, ok := planFromBody(c, deps.planner)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, rep)
	})

	api.POST("/plans/pdf", func(c *gin.Context) {
		rep, ok := planFromBody(c, deps.planner)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := report.WritePDF(&buf, rep); err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.PDFFilename))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	})

	api.POST("/charts", func(c *gin.Context) {
		if !deps.charts.Enabled() {
			respondError(c, chart.ErrModelUnavailable)
			return
		}

		var payload chart.ProfileInput
		if !bindJSON(c, &payload) {
			return
		}

		rec, err := deps.charts.Recommend(c.Request.Context(), payload.WithDefaults())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	return router
}

func planFromBody(c *gin.Context, planner *report.Planner) (*report.Report, bool) {
	var payload diet.ProfileInput
	if !bindJSON(c, &payload) {
		return nil, false
	}

	rep, err := planner.Plan(payload.WithDefaults())
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return rep, true
}

func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload_too_large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
	return false
}

// respondError maps domain errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		verrs  diet.ValidationErrors
		perr   *chart.PredictionError
		cfgErr *diet.ConfigError
	)
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"message": err.Error(),
			"details": verrs,
		})
	case errors.Is(err, bmi.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_input", "message": err.Error()})
	case errors.As(err, &perr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "prediction_failed", "message": err.Error()})
	case errors.Is(err, chart.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model_unavailable", "message": err.Error()})
	case errors.Is(err, chart.ErrNoChart):
		c.JSON(http.StatusNotFound, gin.H{"error": "no_chart", "message": "No chart available for this diet type."})
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "configuration_error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
