package diet

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Disease string

const (
	DiseaseNone         Disease = "None"
	DiseaseDiabetes     Disease = "Diabetes"
	DiseaseHypertension Disease = "Hypertension"
	DiseaseHeart        Disease = "Heart Disease"
	DiseasePCOS         Disease = "PCOS"
	DiseaseThyroid      Disease = "Thyroid"
	DiseaseObesity      Disease = "Obesity"
)

func (d Disease) Valid() bool {
	switch d {
	case DiseaseNone, DiseaseDiabetes, DiseaseHypertension, DiseaseHeart,
		DiseasePCOS, DiseaseThyroid, DiseaseObesity:
		return true
	}
	return false
}

type Severity string

const (
	SeverityNone     Severity = "None"
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityNone, SeverityLow, SeverityModerate, SeverityHigh:
		return true
	}
	return false
}

type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "Low"
	ActivityModerate ActivityLevel = "Moderate"
	ActivityHigh     ActivityLevel = "High"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivityLow, ActivityModerate, ActivityHigh:
		return true
	}
	return false
}

type DietPreference string

const (
	PreferenceNone       DietPreference = "None"
	PreferenceVegan      DietPreference = "Vegan"
	PreferenceVegetarian DietPreference = "Vegetarian"
	PreferenceGlutenFree DietPreference = "Gluten-Free"
)

func (d DietPreference) Valid() bool {
	switch d {
	case PreferenceNone, PreferenceVegan, PreferenceVegetarian, PreferenceGlutenFree:
		return true
	}
	return false
}

// Input ranges accepted by the profile form.
const (
	MinAge      = 10
	MaxAge      = 100
	MinWeightKg = 10.0
	MaxWeightKg = 200.0
	MinHeightCm = 100.0
	MaxHeightCm = 220.0
)

// Profile is the set of health attributes collected per request. It is never
// stored.
type Profile struct {
	Age            int            `json:"age" validate:"min=10,max=100"`
	WeightKg       float64        `json:"weight_kg" validate:"min=10,max=200"`
	HeightCm       float64        `json:"height_cm" validate:"min=100,max=220"`
	Gender         Gender         `json:"gender" validate:"enum"`
	Disease        Disease        `json:"disease" validate:"enum"`
	Severity       Severity       `json:"severity" validate:"enum"`
	ActivityLevel  ActivityLevel  `json:"activity_level" validate:"enum"`
	DietPreference DietPreference `json:"diet_preference" validate:"enum"`
}

// DefaultProfile returns the form defaults: age 25, 70 kg, 170 cm and the
// first option of each select.
func DefaultProfile() Profile {
	return Profile{
		Age:            25,
		WeightKg:       70.0,
		HeightCm:       170.0,
		Gender:         GenderMale,
		Disease:        DiseaseNone,
		Severity:       SeverityNone,
		ActivityLevel:  ActivityLow,
		DietPreference: PreferenceNone,
	}
}

// ProfileInput is a profile as submitted. A nil field was left out and takes
// its form default; a present field is kept as sent, zero included.
type ProfileInput struct {
	Age            *int            `json:"age"`
	WeightKg       *float64        `json:"weight_kg"`
	HeightCm       *float64        `json:"height_cm"`
	Gender         *Gender         `json:"gender"`
	Disease        *Disease        `json:"disease"`
	Severity       *Severity       `json:"severity"`
	ActivityLevel  *ActivityLevel  `json:"activity_level"`
	DietPreference *DietPreference `json:"diet_preference"`
}

// WithDefaults returns the profile with every absent field set to its form
// default. It does not validate.
func (in ProfileInput) WithDefaults() Profile {
	p := DefaultProfile()
	SetIfPresent(&p.Age, in.Age)
	SetIfPresent(&p.WeightKg, in.WeightKg)
	SetIfPresent(&p.HeightCm, in.HeightCm)
	SetIfPresent(&p.Gender, in.Gender)
	SetIfPresent(&p.Disease, in.Disease)
	SetIfPresent(&p.Severity, in.Severity)
	SetIfPresent(&p.ActivityLevel, in.ActivityLevel)
	SetIfPresent(&p.DietPreference, in.DietPreference)
	return p
}

// SetIfPresent copies *src into dst when src is non-nil.
func SetIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
