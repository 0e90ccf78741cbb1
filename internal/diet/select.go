package diet

type Category string

const (
	CategoryBalanced         Category = "Balanced"
	CategoryKeto             Category = "Keto"
	CategoryVegan            Category = "Vegan"
	CategoryDiabetesFriendly Category = "Diabetes_Friendly"
)

var categories = []Category{
	CategoryBalanced,
	CategoryKeto,
	CategoryVegan,
	CategoryDiabetesFriendly,
}

// Categories returns every template category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultCategory is the selection when no rule matches.
const DefaultCategory = CategoryBalanced

// Rule overrides the selected category when Match holds.
type Rule struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	match    func(Profile) bool
}

// ruleTable is evaluated top to bottom and the last matching rule wins, so a
// vegan preference overrides the diabetes rule. Age, weight, height, gender,
// severity and activity level are collected but take no part in selection.
var ruleTable = []Rule{
	{
		Name:     "disease=Diabetes",
		Category: CategoryDiabetesFriendly,
		match:    func(p Profile) bool { return p.Disease == DiseaseDiabetes },
	},
	{
		Name:     "diet_preference=Vegan",
		Category: CategoryVegan,
		match:    func(p Profile) bool { return p.DietPreference == PreferenceVegan },
	},
}

// Rules returns the selector's decision table in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), ruleTable...)
}

// Select maps a profile to exactly one category.
func Select(p Profile) Category {
	selected := DefaultCategory
	for _, r := range ruleTable {
		if r.match(p) {
			selected = r.Category
		}
	}
	return selected
}
