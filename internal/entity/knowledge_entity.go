package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is the closed enumeration of knowledge document categories.
type Category string

const (
	CategoryAcademic       Category = "academic"
	CategoryAdministrative Category = "administrative"
	CategoryFacilities     Category = "facilities"
	CategoryEvents         Category = "events"
	CategoryPolicies       Category = "policies"
	CategoryFaq            Category = "faq"
	CategoryGeneral        Category = "general"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryAcademic,
	CategoryAdministrative,
	CategoryFacilities,
	CategoryEvents,
	CategoryPolicies,
	CategoryFaq,
	CategoryGeneral,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

type KnowledgeDocument struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Category  Category
	Tags      []string
	Source    string
	Embedding []float32 // nil when embeddings were never computed
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
