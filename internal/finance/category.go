package finance

import "fmt"

// Category is a closed set of spending categories. Keyword rules, labels, and
// challenge templates are all keyed by it, so additions here must be mirrored
// in those tables.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryGifts         Category = "gifts"
	CategoryCoffee        Category = "coffee"
	CategorySubscriptions Category = "subscriptions"
	CategoryIncome        Category = "income"
	CategoryOther         Category = "other"
)

// CategoryGeneral scopes badges and challenge keys that are not tied to a
// single spending category. It is not a transaction category and is excluded
// from AllCategories.
const CategoryGeneral Category = "general"

// AllCategories returns every transaction category in a fixed order.
func AllCategories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryHealthcare,
		CategoryEducation,
		CategoryGifts,
		CategoryCoffee,
		CategorySubscriptions,
		CategoryIncome,
		CategoryOther,
	}
}

var categoryLabels = map[Category]string{
	CategoryFood:          "food",
	CategoryTransport:     "transport",
	CategoryShopping:      "shopping",
	CategoryEntertainment: "entertainment",
	CategoryUtilities:     "utilities",
	CategoryHealthcare:    "healthcare",
	CategoryEducation:     "education",
	CategoryGifts:         "gifts",
	CategoryCoffee:        "coffee",
	CategorySubscriptions: "subscriptions",
	CategoryIncome:        "income",
	CategoryOther:         "other",
}

// Label returns the display label used in user-facing message templates.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is a known transaction category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory converts a wire string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
