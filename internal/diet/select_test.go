package diet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	allDiseases = []Disease{
		DiseaseNone, DiseaseDiabetes, DiseaseHypertension, DiseaseHeart,
		DiseasePCOS, DiseaseThyroid, DiseaseObesity,
	}
	allPreferences = []DietPreference{
		PreferenceNone, PreferenceVegan, PreferenceVegetarian, PreferenceGlutenFree,
	}
)

func TestSelect(t *testing.T) {
	for _, d := range allDiseases {
		for _, pref := range allPreferences {
			p := DefaultProfile()
			p.Disease, p.DietPreference = d, pref
			got := Select(p)

			switch {
			case pref == PreferenceVegan:
				assert.Equal(t, CategoryVegan, got, "disease=%s pref=%s", d, pref)
			case d == DiseaseDiabetes:
				assert.Equal(t, CategoryDiabetesFriendly, got, "disease=%s pref=%s", d, pref)
			default:
				assert.Equal(t, CategoryBalanced, got, "disease=%s pref=%s", d, pref)
			}
		}
	}
}

func TestSelectVeganOverridesDiabetes(t *testing.T) {
	p := Profile{Disease: DiseaseDiabetes, DietPreference: PreferenceVegan}
	assert.Equal(t, CategoryVegan, Select(p))
}

func TestSelectIgnoresBodyMetrics(t *testing.T) {
	base := DefaultProfile()
	base.Disease = DiseaseHypertension
	heavy := base
	heavy.WeightKg = 190
	heavy.Age = 90
	heavy.ActivityLevel = ActivityHigh
	heavy.Severity = SeverityHigh
	heavy.Gender = GenderFemale

	assert.Equal(t, Select(base), Select(heavy))
}

func TestRulesOrder(t *testing.T) {
	rules := Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, CategoryDiabetesFriendly, rules[0].Category)
	assert.Equal(t, CategoryVegan, rules[1].Category)
}

// Expansion of a selection never fails for in-range profiles.
func TestSelectedCategoryAlwaysExpands(t *testing.T) {
	c := DefaultCatalog()
	for _, age := range []int{MinAge, 25, MaxAge} {
		for _, weight := range []float64{MinWeightKg, 70, MaxWeightKg} {
			for _, height := range []float64{MinHeightCm, 170, MaxHeightCm} {
				for _, d := range allDiseases {
					for _, pref := range allPreferences {
						p := DefaultProfile()
						p.Age, p.WeightKg, p.HeightCm = age, weight, height
						p.Disease, p.DietPreference = d, pref
						require.NoError(t, p.Validate())
						_, err := c.Expand(Select(p))
						require.NoError(t, err)
					}
				}
			}
		}
	}
}
