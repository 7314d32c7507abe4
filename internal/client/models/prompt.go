package models

import (
	"fmt"
	"strings"

	"github.com/vpetrenko/promptmart/internal/common"
)

// Categories a prompt may belong to. "All" is a filter value only, never a
// prompt category.
var Categories = []string{
	"Business",
	"Creative",
	"Development",
	"Marketing",
	"Education",
	"Design",
	"Research",
	"Social Media",
	"E-commerce",
	"Healthcare",
}

// CategoryAll is the filter value that disables category filtering.
const CategoryAll = "All"

// ValidCategory reports whether c names a real prompt category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Prompt is a catalog entity owned by the remote backend. The client holds
// a read-through copy; see catalog.Cache. Content arrives empty for premium
// prompts the viewer has not purchased.
type Prompt struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	Tags      []string   `json:"tags,omitempty"`
	Username  string     `json:"username"`
	IsPremium bool       `json:"is_premium"`
	Price     float64    `json:"price"`
	Likes     int        `json:"likes"`
	Downloads int        `json:"downloads"`
	Rating    float64    `json:"rating"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// ContentHidden reports whether the prompt's body was withheld by the
// backend (premium prompt, not purchased by the viewer).
func (p *Prompt) ContentHidden() bool {
	return p.IsPremium && p.Content == ""
}

// Draft carries the fields a user submits when creating or editing a prompt.
type Draft struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Category  string  `json:"category"`
	IsPremium bool    `json:"isPremium"`
	Price     float64 `json:"price"`
}

// Validate enforces the client-side creation rules: title and content are
// required, the category must be known, and price > 0 exactly when the
// prompt is premium.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("%w: title and content are required", common.ErrValidation)
	}
	if d.Category != "" && !ValidCategory(d.Category) {
		return fmt.Errorf("%w: unknown category %q", common.ErrValidation, d.Category)
	}
	if d.IsPremium && d.Price <= 0 {
		return fmt.Errorf("%w: premium prompts need a positive price", common.ErrValidation)
	}
	if !d.IsPremium && d.Price > 0 {
		return fmt.Errorf("%w: free prompts cannot carry a price", common.ErrValidation)
	}
	return nil
}
