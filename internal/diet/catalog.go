package diet

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type MealSlot string

const (
	SlotBreakfast MealSlot = "Breakfast"
	SlotLunch     MealSlot = "Lunch"
	SlotSnack     MealSlot = "Snack"
	SlotDinner    MealSlot = "Dinner"
)

var slots = []MealSlot{SlotBreakfast, SlotLunch, SlotSnack, SlotDinner}

// Slots returns the daily meal slots in serving order.
func Slots() []MealSlot {
	return append([]MealSlot(nil), slots...)
}

const macroParts = 3

// ErrUnknownCategory is wrapped by lookups for a category with no template.
var ErrUnknownCategory = errors.New("unknown diet category")

// ConfigError reports a catalog table that cannot serve a category. It is a
// startup error; a checked catalog never produces one per request.
type ConfigError struct {
	Category Category
	Table    string
	Reason   string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("catalog: %s: %s", e.Category, e.Reason)
	}
	return fmt.Sprintf("catalog: %s table: %s: %s", e.Table, e.Category, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// tables is both the in-memory layout and the YAML file layout of a catalog.
type tables struct {
	Meals    map[Category][]string `yaml:"meals"`
	Calories map[Category][]int    `yaml:"calories"`
	Macros   map[Category][]int    `yaml:"macros"`
	Grocery  map[Category][]string `yaml:"grocery"`
}

var defaultTables = tables{
	Meals: map[Category][]string{
		CategoryBalanced:         {"Oats with Berries", "Grilled Chicken Salad", "Greek Yogurt", "Baked Salmon with Veggies"},
		CategoryKeto:             {"Avocado & Eggs", "Steak with Butter", "Almonds", "Cheesy Spinach & Chicken"},
		CategoryVegan:            {"Smoothie Bowl", "Chickpea Curry", "Fruit Salad", "Tofu Stir-fry"},
		CategoryDiabetesFriendly: {"Whole Grain Toast", "Lentil Soup", "Walnuts", "Roasted Cauliflower"},
	},
	Calories: map[Category][]int{
		CategoryBalanced:         {400, 700, 200, 600},
		CategoryKeto:             {500, 800, 300, 700},
		CategoryVegan:            {350, 600, 150, 500},
		CategoryDiabetesFriendly: {300, 500, 100, 400},
	},
	Macros: map[Category][]int{
		CategoryBalanced:         {25, 50, 25},
		CategoryKeto:             {20, 5, 75},
		CategoryVegan:            {15, 65, 20},
		CategoryDiabetesFriendly: {30, 40, 30},
	},
	Grocery: map[Category][]string{
		CategoryBalanced:         {"Oats", "Berries", "Chicken", "Salmon", "Mixed Veggies"},
		CategoryKeto:             {"Eggs", "Avocado", "Butter", "Cheese", "Steak"},
		CategoryVegan:            {"Tofu", "Chickpeas", "Fruits", "Soy Milk", "Lentils"},
		CategoryDiabetesFriendly: {"Whole Grains", "Lentils", "Walnuts", "Leafy Greens"},
	},
}

// Catalog holds the static diet templates. It is read-only once built and
// safe to share between requests.
type Catalog struct {
	t tables
}

// DefaultCatalog returns the builtin templates.
func DefaultCatalog() *Catalog {
	return &Catalog{t: defaultTables}
}

// LoadCatalog reads a YAML catalog from path and checks it.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and checks it.
func ParseCatalog(data []byte) (*Catalog, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{t: t}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}

// Check verifies that every category has a complete entry in all four
// tables. All violations are reported together.
func (c *Catalog) Check() error {
	var errs []error
	add := func(cat Category, table, reason string) {
		errs = append(errs, &ConfigError{Category: cat, Table: table, Reason: reason})
	}

	for _, cat := range categories {
		meals, ok := c.t.Meals[cat]
		switch {
		case !ok:
			add(cat, "meals", "missing entry")
		case len(meals) != len(slots):
			add(cat, "meals", fmt.Sprintf("want %d meals, got %d", len(slots), len(meals)))
		default:
			for i, m := range meals {
				if strings.TrimSpace(m) == "" {
					add(cat, "meals", fmt.Sprintf("empty recommendation for %s", slots[i]))
				}
			}
		}

		cals, ok := c.t.Calories[cat]
		switch {
		case !ok:
			add(cat, "calories", "missing entry")
		case len(cals) != len(slots):
			add(cat, "calories", fmt.Sprintf("want %d values, got %d", len(slots), len(cals)))
		default:
			for i, v := range cals {
				if v <= 0 {
					add(cat, "calories", fmt.Sprintf("non-positive calories for %s", slots[i]))
				}
			}
		}

		macros, ok := c.t.Macros[cat]
		switch {
		case !ok:
			add(cat, "macros", "missing entry")
		case len(macros) != macroParts:
			add(cat, "macros", fmt.Sprintf("want %d percentages, got %d", macroParts, len(macros)))
		default:
			sum := 0
			for _, v := range macros {
				if v < 0 {
					add(cat, "macros", "negative percentage")
				}
				sum += v
			}
			if sum != 100 {
				add(cat, "macros", fmt.Sprintf("percentages sum to %d, want 100", sum))
			}
		}

		grocery, ok := c.t.Grocery[cat]
		switch {
		case !ok:
			add(cat, "grocery", "missing entry")
		case len(grocery) == 0:
			add(cat, "grocery", "empty list")
		default:
			for i, item := range grocery {
				if strings.TrimSpace(item) == "" {
					add(cat, "grocery", fmt.Sprintf("empty item at index %d", i))
				}
			}
		}
	}

	for _, table := range []struct {
		name string
		keys []Category
	}{
		{"meals", keysOf(c.t.Meals)},
		{"calories", keysOf(c.t.Calories)},
		{"macros", keysOf(c.t.Macros)},
		{"grocery", keysOf(c.t.Grocery)},
	} {
		for _, k := range table.keys {
			if !k.Valid() {
				add(k, table.name, "unknown category")
			}
		}
	}

	return errors.Join(errs...)
}

func keysOf[V any](m map[Category]V) []Category {
	out := make([]Category, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

type Meal struct {
	Slot           MealSlot `json:"slot"`
	Recommendation string   `json:"recommendation"`
	Calories       int      `json:"calories"`
}

// Macros is the protein/carbs/fat split in percent.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// CalorieShare is one slice of the daily calorie chart.
type CalorieShare struct {
	Slot    MealSlot `json:"slot"`
	Percent float64  `json:"percent"`
}

// Template is the expanded daily plan of one category.
type Template struct {
	Category Category `json:"category"`
	Meals    []Meal   `json:"meals"`
	Macros   Macros   `json:"macros"`
	Grocery  []string `json:"grocery"`
}

func (t Template) Recommendations() []string {
	out := make([]string, 0, len(t.Meals))
	for _, m := range t.Meals {
		out = append(out, m.Recommendation)
	}
	return out
}

func (t Template) TotalCalories() int {
	total := 0
	for _, m := range t.Meals {
		total += m.Calories
	}
	return total
}

// CalorieShares returns each meal's share of the daily total in percent,
// rounded to one decimal place.
func (t Template) CalorieShares() []CalorieShare {
	total := t.TotalCalories()
	out := make([]CalorieShare, 0, len(t.Meals))
	for _, m := range t.Meals {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(m.Calories)*1000/float64(total)) / 10
		}
		out = append(out, CalorieShare{Slot: m.Slot, Percent: pct})
	}
	return out
}

// Expand assembles the daily template for c.
func (c *Catalog) Expand(cat Category) (Template, error) {
	meals, ok := c.t.Meals[cat]
	if !ok || len(meals) != len(slots) {
		return Template{}, &ConfigError{Category: cat, Table: "meals", Reason: "no template", Err: ErrUnknownCategory}
	}
	cals, ok := c.t.Calories[cat]
	if !ok || len(cals) != len(slots) {
		return Template{}, &ConfigError{Category: cat, Table: "calories", Reason: "no template", Err: ErrUnknownCategory}
	}
	macros, ok := c.t.Macros[cat]
	if !ok || len(macros) != macroParts {
		return Template{}, &ConfigError{Category: cat, Table: "macros", Reason: "no template", Err: ErrUnknownCategory}
	}
	grocery, ok := c.t.Grocery[cat]
	if !ok {
		return Template{}, &ConfigError{Category: cat, Table: "grocery", Reason: "no template", Err: ErrUnknownCategory}
	}

	t := Template{
		Category: cat,
		Meals:    make([]Meal, 0, len(slots)),
		Macros:   Macros{Protein: macros[0], Carbs: macros[1], Fat: macros[2]},
		Grocery:  append([]string(nil), grocery...),
	}
	for i, slot := range slots {
		t.Meals = append(t.Meals, Meal{Slot: slot, Recommendation: meals[i], Calories: cals[i]})
	}
	return t, nil
}

// Templates expands every category in display order.
func (c *Catalog) Templates() ([]Template, error) {
	out := make([]Template, 0, len(categories))
	for _, cat := range categories {
		t, err := c.Expand(cat)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
