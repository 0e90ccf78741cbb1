package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/dietplan/internal/chart"
	"github.com/Skufu/dietplan/internal/diet"
	"github.com/Skufu/dietplan/internal/report"
)

type fakeDB struct {
	err error
}

func (f fakeDB) Ping(ctx context.Context) error {
	return f.err
}

func newTestRouter(t *testing.T, db HealthChecker, predictor chart.Predictor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	planner, err := report.NewPlanner(diet.DefaultCatalog())
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	return setupRouter(routerDeps{
		db:         db,
		planner:    planner,
		charts:     chart.NewService(predictor),
		staticRoot: ".",
	})
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("ENABLE_DB", "true")
	t.Setenv("DATABASE_URL", "")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigUsesDefaults(t *testing.T) {
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("CLASSIFIER", "")
	t.Setenv("LOG_LEVEL", "")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Classifier != classifierNone || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigClassifier(t *testing.T) {
	t.Setenv("ENABLE_DB", "false")

	t.Run("llm needs a key", func(t *testing.T) {
		t.Setenv("CLASSIFIER", "llm")
		t.Setenv("LLM_API_KEY", "")
		if _, err := loadConfig(); err == nil {
			t.Fatal("expected error when LLM_API_KEY is missing")
		}
	})

	t.Run("static label must have a chart", func(t *testing.T) {
		t.Setenv("CLASSIFIER", "static")
		t.Setenv("CLASSIFIER_CATEGORY", "Keto")
		if _, err := loadConfig(); err == nil {
			t.Fatal("expected error for a label without a chart")
		}
	})

	t.Run("static", func(t *testing.T) {
		t.Setenv("CLASSIFIER", "Static")
		t.Setenv("CLASSIFIER_CATEGORY", "Low_Sodium")
		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p, err := buildPredictor(cfg)
		if err != nil {
			t.Fatalf("build predictor: %v", err)
		}
		if got, _ := p.Predict(context.Background(), chart.Profile{}); got != chart.CategoryLowSodium {
			t.Fatalf("expected Low_Sodium, got %s", got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("CLASSIFIER", "sklearn")
		if _, err := loadConfig(); err == nil {
			t.Fatal("expected error for unknown classifier")
		}
	})
}

func TestLoadCatalogFromFile(t *testing.T) {
	if _, err := loadCatalog("../../internal/diet/testdata/catalog.yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := loadCatalog("../../internal/diet/testdata/broken.yaml")
	var cfgErr *diet.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected a catalog config error, got %v", err)
	}
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t, fakeDB{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRouterReadyz(t *testing.T) {
	cases := []struct {
		name string
		db   HealthChecker
		code int
		want string
	}{
		{"disabled", nil, http.StatusOK, `"db":"disabled"`},
		{"healthy", fakeDB{}, http.StatusOK, `"db":"ok"`},
		{"down", fakeDB{err: errors.New("connection refused")}, http.StatusServiceUnavailable, `"status":"degraded"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, tc.db, nil)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/readyz", nil)
			router.ServeHTTP(w, req)

			if w.Code != tc.code || !strings.Contains(w.Body.String(), tc.want) {
				t.Fatalf("got %d %s", w.Code, w.Body.String())
			}
		})
	}
}

// Ensure limitBodySize middleware allows small payloads and blocks large ones.
func TestLimitBodySize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limitBodySize(10))
	router.POST("/echo", func(c *gin.Context) {
		_, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too large"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/echo", strings.NewReader("12345"))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/echo", strings.NewReader("01234567890"))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", w.Code)
		}
	})
}

func TestPlansValidation(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	w := doJSON(router, "POST", "/api/plans", `{
		"age": 5,
		"weight_kg": 70,
		"height_cm": 170,
		"disease": "Flu"
	}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for validation failure, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "validation_failed") || !strings.Contains(body, `"field":"age"`) || !strings.Contains(body, `"field":"disease"`) {
		t.Fatalf("expected validation error response, got %s", body)
	}
}

func TestPlansRejectsExplicitZero(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	for body, field := range map[string]string{
		`{"height_cm": 0}`: "height_cm",
		`{"weight_kg": 0}`: "weight_kg",
		`{"age": 0}`:       "age",
	} {
		w := doJSON(router, "POST", "/api/plans", body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d: %s", body, w.Code, w.Body.String())
		}
		got := w.Body.String()
		if !strings.Contains(got, "validation_failed") || !strings.Contains(got, `"field":"`+field+`"`) {
			t.Fatalf("%s: expected validation error for %s, got %s", body, field, got)
		}
	}
}

func TestPlansDefaultsAbsentFields(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	w := doJSON(router, "POST", "/api/plans", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Profile != diet.DefaultProfile() {
		t.Fatalf("expected form defaults, got %+v", rep.Profile)
	}
}

func TestPlansMalformedJSON(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	w := doJSON(router, "POST", "/api/plans", `{"age":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPlans(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	w := doJSON(router, "POST", "/api/plans", `{
		"age": 40,
		"weight_kg": 70,
		"height_cm": 170,
		"gender": "Female",
		"disease": "Diabetes",
		"severity": "Moderate",
		"activity_level": "High",
		"diet_preference": "None"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Category != diet.CategoryDiabetesFriendly {
		t.Fatalf("expected Diabetes_Friendly, got %s", rep.Category)
	}
	if rep.BMI.Value != 24.22 || rep.BMI.Band != "Normal" {
		t.Fatalf("unexpected bmi: %+v", rep.BMI)
	}
	if len(rep.Week) != 7 || len(rep.Meals) != 4 || rep.ID == "" {
		t.Fatalf("incomplete report: %+v", rep)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestPlansPDF(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	w := doJSON(router, "POST", "/api/plans/pdf", `{"diet_preference": "Vegan"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "My_Diet_Plan.pdf") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Fatal("expected a PDF document")
	}
}

func TestCategoriesAndRules(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	w := doJSON(router, "GET", "/api/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, c := range diet.Categories() {
		if !strings.Contains(w.Body.String(), `"category":"`+string(c)+`"`) {
			t.Fatalf("missing %s in %s", c, w.Body.String())
		}
	}

	w = doJSON(router, "GET", "/api/rules", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"default":"Balanced"`) {
		t.Fatalf("unexpected rules response %d %s", w.Code, w.Body.String())
	}
}

func TestBMIEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	w := doJSON(router, "GET", "/api/bmi?weight_kg=50&height_cm=170", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"band":"Underweight"`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/bmi?weight_kg=50&height_cm=-1", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	w = doJSON(router, "GET", "/api/bmi?weight_kg=70&height_cm=0", "")
	if w.Code != http.StatusUnprocessableEntity || !strings.Contains(w.Body.String(), "invalid_input") {
		t.Fatalf("expected 422 invalid_input for zero height, got %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/bmi?weight_kg=70", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing height, got %d", w.Code)
	}

	w = doJSON(router, "GET", "/api/bmi?weight_kg=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestChartsDisabled(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	w := doJSON(router, "POST", "/api/charts", `{}`)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "model_unavailable") {
		t.Fatalf("expected 503 model_unavailable, got %d %s", w.Code, w.Body.String())
	}
}

func TestCharts(t *testing.T) {
	router := newTestRouter(t, nil, chart.StaticPredictor{Category: chart.CategoryLowCarb})

	w := doJSON(router, "POST", "/api/charts", `{"disease": "Diabetes", "allergies": "nuts"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"category":"Low_Carb"`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "POST", "/api/charts", `{"disease": "PCOS"}`)
	if w.Code != http.StatusUnprocessableEntity || !strings.Contains(w.Body.String(), "prediction_failed") {
		t.Fatalf("expected 422 prediction_failed, got %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "POST", "/api/charts", `{"height_cm": 0}`)
	if w.Code != http.StatusUnprocessableEntity || !strings.Contains(w.Body.String(), `"field":"height_cm"`) {
		t.Fatalf("expected 422 validation_failed for zero height, got %d %s", w.Code, w.Body.String())
	}
}

func TestChartsNoChart(t *testing.T) {
	router := newTestRouter(t, nil, chart.StaticPredictor{Category: "Vegan"})
	w := doJSON(router, "POST", "/api/charts", `{}`)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "no_chart") {
		t.Fatalf("expected 404 no_chart, got %d %s", w.Code, w.Body.String())
	}
}
