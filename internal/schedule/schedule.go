// Package schedule builds a randomised weekly meal table.
package schedule

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// MealsPerDay is the number of slots filled for every day.
const MealsPerDay = 4

var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var ErrTooFewMeals = errors.New("schedule: not enough meals to fill a day")

// Permuter returns a random permutation of [0, n). *rand.Rand satisfies it.
type Permuter interface {
	Perm(n int) []int
}

type globalPermuter struct{}

func (globalPermuter) Perm(n int) []int { return rand.Perm(n) }

// Random returns a Permuter backed by the goroutine-safe global source.
func Random() Permuter { return globalPermuter{} }

type Day struct {
	Day   string   `json:"day"`
	Meals []string `json:"meals"`
}

type Week []Day

// Generate fills each weekday with MealsPerDay items drawn without
// replacement from meals. Every day is sampled independently, so two calls
// rarely agree.
func Generate(meals []string, perm Permuter) (Week, error) {
	if len(meals) < MealsPerDay {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewMeals, len(meals), MealsPerDay)
	}
	if perm == nil {
		perm = Random()
	}

	week := make(Week, 0, len(Weekdays))
	for _, d := range Weekdays {
		idx := perm.Perm(len(meals))[:MealsPerDay]
		row := make([]string, 0, MealsPerDay)
		for _, i := range idx {
			row = append(row, meals[i])
		}
		week = append(week, Day{Day: d, Meals: row})
	}
	return week, nil
}
