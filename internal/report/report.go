// Package report assembles the diet report for a profile and renders it as
// a PDF document.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skufu/dietplan/internal/bmi"
	"github.com/Skufu/dietplan/internal/diet"
	"github.com/Skufu/dietplan/internal/schedule"
)

// Report is the complete output of one planning request. Renderers consume
// it as plain data.
type Report struct {
	ID            string              `json:"id"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	Profile       diet.Profile        `json:"profile"`
	Category      diet.Category       `json:"category"`
	BMI           bmi.Result          `json:"bmi"`
	Meals         []diet.Meal         `json:"meals"`
	Macros        diet.Macros         `json:"macros"`
	TotalCalories int                 `json:"totalCalories"`
	CalorieShares []diet.CalorieShare `json:"calorieShares"`
	Grocery       []string            `json:"grocery"`
	Week          schedule.Week       `json:"week"`
}

// Planner turns profiles into reports. It holds no per-request state and is
// safe for concurrent use when its Permuter is.
type Planner struct {
	catalog *diet.Catalog
	perm    schedule.Permuter
	now     func() time.Time
	newID   func() string
}

type Option func(*Planner)

func WithPermuter(p schedule.Permuter) Option {
	return func(pl *Planner) { pl.perm = p }
}

func WithClock(now func() time.Time) Option {
	return func(pl *Planner) { pl.now = now }
}

func WithIDs(newID func() string) Option {
	return func(pl *Planner) { pl.newID = newID }
}

// NewPlanner checks the catalog once and returns a planner bound to it.
func NewPlanner(catalog *diet.Catalog, opts ...Option) (*Planner, error) {
	if catalog == nil {
		return nil, fmt.Errorf("new planner: nil catalog")
	}
	if err := catalog.Check(); err != nil {
		return nil, fmt.Errorf("new planner: %w", err)
	}
	pl := &Planner{
		catalog: catalog,
		perm:    schedule.Random(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl, nil
}

func (pl *Planner) Catalog() *diet.Catalog {
	return pl.catalog
}

// Plan validates p as given and builds its report. Callers holding a
// partial submission resolve it with diet.ProfileInput.WithDefaults first.
func (pl *Planner) Plan(p diet.Profile) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b, err := bmi.Compute(p.WeightKg, p.HeightCm)
	if err != nil {
		return nil, err
	}

	category := diet.Select(p)
	tmpl, err := pl.catalog.Expand(category)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", category, err)
	}

	week, err := schedule.Generate(tmpl.Recommendations(), pl.perm)
	if err != nil {
		return nil, fmt.Errorf("weekly schedule: %w", err)
	}

	return &Report{
		ID:            pl.newID(),
		GeneratedAt:   pl.now().UTC(),
		Profile:       p,
		Category:      category,
		BMI:           b,
		Meals:         tmpl.Meals,
		Macros:        tmpl.Macros,
		TotalCalories: tmpl.TotalCalories(),
		CalorieShares: tmpl.CalorieShares(),
		Grocery:       tmpl.Grocery,
		Week:          week,
	}, nil
}
