package chart

import (
	"fmt"

	"github.com/Skufu/dietplan/internal/diet"
)

// Profile is the wider attribute set scored by the classifier.
type Profile struct {
	Age                 int                `json:"age" validate:"min=10,max=100"`
	Gender              diet.Gender        `json:"gender" validate:"enum"`
	WeightKg            float64            `json:"weight_kg" validate:"min=10,max=200"`
	HeightCm            float64            `json:"height_cm" validate:"min=100,max=220"`
	Disease             diet.Disease       `json:"disease" validate:"enum"`
	Severity            diet.Severity      `json:"severity" validate:"enum"`
	ActivityLevel       diet.ActivityLevel `json:"activity_level" validate:"enum"`
	DietaryRestrictions string             `json:"dietary_restrictions"`
	Allergies           string             `json:"allergies"`
}

// modelDiseases are the disease values seen by the classifier. The
// rule-based form offers more, which the model cannot score.
var modelDiseases = map[diet.Disease]bool{
	diet.DiseaseNone:         true,
	diet.DiseaseDiabetes:     true,
	diet.DiseaseHypertension: true,
	diet.DiseaseHeart:        true,
}

// DefaultProfile returns the classifier form defaults: the lowest value of
// each numeric widget, the first option of each select and "None" for the
// free-text fields.
func DefaultProfile() Profile {
	return Profile{
		Age:                 diet.MinAge,
		Gender:              diet.GenderMale,
		WeightKg:            diet.MinWeightKg,
		HeightCm:            diet.MinHeightCm,
		Disease:             diet.DiseaseNone,
		Severity:            diet.SeverityNone,
		ActivityLevel:       diet.ActivityLow,
		DietaryRestrictions: "None",
		Allergies:           "None",
	}
}

// ProfileInput is a classifier profile as submitted; nil fields were left out.
type ProfileInput struct {
	Age                 *int                `json:"age"`
	Gender              *diet.Gender        `json:"gender"`
	WeightKg            *float64            `json:"weight_kg"`
	HeightCm            *float64            `json:"height_cm"`
	Disease             *diet.Disease       `json:"disease"`
	Severity            *diet.Severity      `json:"severity"`
	ActivityLevel       *diet.ActivityLevel `json:"activity_level"`
	DietaryRestrictions *string             `json:"dietary_restrictions"`
	Allergies           *string             `json:"allergies"`
}

func (in ProfileInput) WithDefaults() Profile {
	p := DefaultProfile()
	diet.SetIfPresent(&p.Age, in.Age)
	diet.SetIfPresent(&p.Gender, in.Gender)
	diet.SetIfPresent(&p.WeightKg, in.WeightKg)
	diet.SetIfPresent(&p.HeightCm, in.HeightCm)
	diet.SetIfPresent(&p.Disease, in.Disease)
	diet.SetIfPresent(&p.Severity, in.Severity)
	diet.SetIfPresent(&p.ActivityLevel, in.ActivityLevel)
	diet.SetIfPresent(&p.DietaryRestrictions, in.DietaryRestrictions)
	diet.SetIfPresent(&p.Allergies, in.Allergies)
	return p
}

func (p Profile) Validate() error {
	return diet.ValidateStruct(p)
}

func (p Profile) checkFeatures() error {
	if !modelDiseases[p.Disease] {
		return &PredictionError{Reason: fmt.Sprintf("disease %q is not a model feature value", p.Disease)}
	}
	return nil
}

// Feature is one named model input column.
type Feature struct {
	Name  string
	Value string
}

// Features returns the model input row in column order.
func (p Profile) Features() []Feature {
	return []Feature{
		{"Age", fmt.Sprint(p.Age)},
		{"Gender", string(p.Gender)},
		{"Weight_kg", fmt.Sprint(p.WeightKg)},
		{"Height_cm", fmt.Sprint(p.HeightCm)},
		{"Disease_Type", string(p.Disease)},
		{"Severity", string(p.Severity)},
		{"Physical_Activity_Level", string(p.ActivityLevel)},
		{"Dietary_Restrictions", p.DietaryRestrictions},
		{"Allergies", p.Allergies},
	}
}
