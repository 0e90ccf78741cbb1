// Package bmi computes body mass index and its advisory band.
package bmi

import (
	"errors"
	"fmt"
	"math"
)

type Band string

const (
	Underweight Band = "Underweight"
	Normal      Band = "Normal"
	Overweight  Band = "Overweight"
)

// Band thresholds in kg/m².
const (
	UnderweightBelow = 18.5
	OverweightFrom   = 25.0
)

var advice = map[Band]string{
	Underweight: "High protein intake recommended.",
	Normal:      "Keep maintaining your lifestyle.",
	Overweight:  "Calorie deficit recommended.",
}

// ErrInvalidInput is returned for a non-positive weight or height.
var ErrInvalidInput = errors.New("bmi: weight and height must be positive")

type Result struct {
	Value  float64 `json:"value"`
	Band   Band    `json:"band"`
	Advice string  `json:"advice"`
}

// String renders the result as a single advisory line.
func (r Result) String() string {
	return fmt.Sprintf("BMI: %.2f | %s - %s", r.Value, r.Band, r.Advice)
}

// Compute returns the BMI rounded to two decimals and its band. The band is
// chosen from the rounded value.
func Compute(weightKg, heightCm float64) (Result, error) {
	if !(weightKg > 0) || !(heightCm > 0) || math.IsInf(weightKg, 0) || math.IsInf(heightCm, 0) {
		return Result{}, fmt.Errorf("%w: weight=%v height=%v", ErrInvalidInput, weightKg, heightCm)
	}
	m := heightCm / 100
	value := math.Round(weightKg/(m*m)*100) / 100
	band := Classify(value)
	return Result{Value: value, Band: band, Advice: advice[band]}, nil
}

// Classify buckets a BMI value.
func Classify(value float64) Band {
	switch {
	case value < UnderweightBelow:
		return Underweight
	case value < OverweightFrom:
		return Normal
	default:
		return Overweight
	}
}
