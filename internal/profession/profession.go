// Package profession maps a chosen profession to the default tag set
// created at onboarding. It is a static lookup with no storage access.
package profession

import "github.com/example/preplab/pkg/models"

// Profession identifiers offered during onboarding
const (
	DataScience         = "data_science"
	SoftwareEngineering = "software_engineering"
	Product             = "product"
	Design              = "design"
	Marketing           = "marketing"
	Finance             = "finance"
	MachineLearning     = "machine_learning"
	Other               = "other"
)

// Option is a selectable profession
type Option struct {
	ID    string
	Label string
}

// Options returns the professions in display order
func Options() []Option {
	return []Option{
		{ID: DataScience, Label: "Data Science"},
		{ID: SoftwareEngineering, Label: "Software Engineering"},
		{ID: Product, Label: "Product"},
		{ID: Design, Label: "Design"},
		{ID: Marketing, Label: "Marketing"},
		{ID: Finance, Label: "Finance"},
		{ID: MachineLearning, Label: "Machine Learning"},
		{ID: Other, Label: "Other"},
	}
}

var defaultTags = map[string][]models.Tag{
	DataScience: {
		{Name: "SQL", Slug: "sql"},
		{Name: "ML", Slug: "ml"},
		{Name: "Stats", Slug: "stats"},
		{Name: "Python", Slug: "python"},
		{Name: "Behavioral", Slug: "behavioral"},
	},
	SoftwareEngineering: {
		{Name: "System Design", Slug: "system-design"},
		{Name: "Algorithms", Slug: "algorithms"},
		{Name: "Coding", Slug: "coding"},
		{Name: "Behavioral", Slug: "behavioral"},
		{Name: "Other", Slug: "other"},
	},
	Product: {
		{Name: "Product Sense", Slug: "product-sense"},
		{Name: "Analytics", Slug: "analytics"},
		{Name: "Strategy", Slug: "strategy"},
		{Name: "Behavioral", Slug: "behavioral"},
		{Name: "Other", Slug: "other"},
	},
	Design: {
		{Name: "Portfolio", Slug: "portfolio"},
		{Name: "UX", Slug: "ux"},
		{Name: "Whiteboard", Slug: "whiteboard"},
		{Name: "Behavioral", Slug: "behavioral"},
		{Name: "Other", Slug: "other"},
	},
	Marketing: {
		{Name: "Brand", Slug: "brand"},
		{Name: "Growth", Slug: "growth"},
		{Name: "Content", Slug: "content"},
		{Name: "Analytics", Slug: "analytics"},
		{Name: "Behavioral", Slug: "behavioral"},
		{Name: "Other", Slug: "other"},
	},
	Finance: {
		{Name: "Accounting", Slug: "accounting"},
		{Name: "Valuation", Slug: "valuation"},
		{Name: "Markets", Slug: "markets"},
		{Name: "Technical", Slug: "technical"},
		{Name: "Behavioral", Slug: "behavioral"},
		{Name: "Other", Slug: "other"},
	},
	MachineLearning: {
		{Name: "ML Fundamentals", Slug: "ml-fundamentals"},
		{Name: "Deep Learning", Slug: "deep-learning"},
		{Name: "Stats", Slug: "stats"},
		{Name: "Python", Slug: "python"},
		{Name: "System Design", Slug: "system-design"},
		{Name: "Behavioral", Slug: "behavioral"},
		{Name: "Other", Slug: "other"},
	},
	Other: {
		{Name: "Technical", Slug: "technical"},
		{Name: "Behavioral", Slug: "behavioral"},
		{Name: "Other", Slug: "other"},
	},
}

// DefaultTagsFor returns the default tags for a profession. Unknown or
// legacy values fall back to the "other" set.
func DefaultTagsFor(professionID string) []models.Tag {
	tags, ok := defaultTags[Resolve(professionID)]
	if !ok {
		tags = defaultTags[Other]
	}
	out := make([]models.Tag, len(tags))
	copy(out, tags)
	return out
}

// Resolve normalizes a stored profession value to a known identifier
func Resolve(professionID string) string {
	if _, ok := defaultTags[professionID]; ok {
		return professionID
	}
	return Other
}

// IsValid reports whether the value is a known profession identifier
func IsValid(professionID string) bool {
	_, ok := defaultTags[professionID]
	return ok
}

// Label returns the display label for a profession identifier
func Label(professionID string) string {
	for _, opt := range Options() {
		if opt.ID == professionID {
			return opt.Label
		}
	}
	return "Other"
}
