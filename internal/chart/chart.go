// Package chart serves the classifier-based diet chart. Its category
// vocabulary is separate from the rule-based templates in package diet.
package chart

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skufu/dietplan/internal/diet"
)

type Category string

const (
	CategoryBalanced  Category = "Balanced"
	CategoryLowCarb   Category = "Low_Carb"
	CategoryLowSodium Category = "Low_Sodium"
)

// Labels is the classifier's output vocabulary.
var Labels = []Category{CategoryBalanced, CategoryLowCarb, CategoryLowSodium}

var (
	ErrModelUnavailable = errors.New("diet classifier unavailable")
	ErrNoChart          = errors.New("no chart available for this diet type")
)

// PredictionError reports a profile the classifier cannot score or an answer
// outside its vocabulary.
type PredictionError struct {
	Reason string
	Err    error
}

func (e *PredictionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prediction failed: %s: %v", e.Reason, e.Err)
	}
	return "prediction failed: " + e.Reason
}

func (e *PredictionError) Unwrap() error { return e.Err }

type Entry struct {
	Slot diet.MealSlot `json:"slot"`
	Item string        `json:"item"`
}

type Chart []Entry

var charts = map[Category]Chart{
	CategoryBalanced: {
		{diet.SlotBreakfast, "Oats + Fruits + Milk"},
		{diet.SlotLunch, "Rice / Roti + Dal + Sabzi + Curd"},
		{diet.SlotSnack, "Peanuts / Fruit Salad"},
		{diet.SlotDinner, "Chapati + Vegetables + Soup"},
	},
	CategoryLowCarb: {
		{diet.SlotBreakfast, "Egg/Oats + Nuts"},
		{diet.SlotLunch, "Grilled Paneer/Chicken + Salad"},
		{diet.SlotSnack, "Cucumber / Greek Yogurt"},
		{diet.SlotDinner, "Low-carb roti + Veggies"},
	},
	CategoryLowSodium: {
		{diet.SlotBreakfast, "Poha without salt + Fruits"},
		{diet.SlotLunch, "Chapati + Dal (low salt) + Veggies"},
		{diet.SlotSnack, "Fruit bowl"},
		{diet.SlotDinner, "Khichdi + Curd (low salt)"},
	},
}

// Lookup returns a copy of the chart for c.
func Lookup(c Category) (Chart, error) {
	ch, ok := charts[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoChart, c)
	}
	return append(Chart(nil), ch...), nil
}

// Predictor classifies a profile into one of Labels.
type Predictor interface {
	Predict(ctx context.Context, p Profile) (Category, error)
}

// StaticPredictor always answers Category. It stands in for a trained model
// in tests and demos.
type StaticPredictor struct {
	Category Category
}

func (s StaticPredictor) Predict(ctx context.Context, _ Profile) (Category, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Category, nil
}

type Recommendation struct {
	Category Category `json:"category"`
	Chart    Chart    `json:"chart"`
}

type Service struct {
	predictor Predictor
}

// NewService returns a Service. A nil predictor yields a service whose
// Recommend always fails with ErrModelUnavailable.
func NewService(p Predictor) *Service {
	return &Service{predictor: p}
}

func (s *Service) Enabled() bool {
	return s != nil && s.predictor != nil
}

func (s *Service) Recommend(ctx context.Context, p Profile) (*Recommendation, error) {
	if !s.Enabled() {
		return nil, ErrModelUnavailable
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.checkFeatures(); err != nil {
		return nil, err
	}

	label, err := s.predictor.Predict(ctx, p)
	if err != nil {
		return nil, err
	}
	ch, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	return &Recommendation{Category: label, Chart: ch}, nil
}
