package entity

import "strings"

// Category labels a newsletter topic. The set is closed.
type Category string

const (
	CategoryTechnology    Category = "Technology"
	CategoryArt           Category = "Art"
	CategoryPolitics      Category = "Politics"
	CategoryLifestyle     Category = "Lifestyle"
	CategoryBusiness      Category = "Business"
	CategoryScience       Category = "Science"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

// Categories lists every accepted label in display order.
var Categories = []Category{
	CategoryTechnology,
	CategoryArt,
	CategoryPolitics,
	CategoryLifestyle,
	CategoryBusiness,
	CategoryScience,
	CategoryHealth,
	CategoryEducation,
	CategoryEntertainment,
	CategoryOther,
}

// ParseCategory matches s against the closed set, ignoring case and
// surrounding whitespace or punctuation.
func ParseCategory(s string) (Category, bool) {
	s = strings.Trim(strings.TrimSpace(s), ".\"'")
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }
