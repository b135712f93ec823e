// Package model defines the persisted record types and the vocabularies
// (categories, statuses, MIME types) shared across the content service.
package model

import (
	"time"
)

// Blog post categories offered by the authoring form.
var BlogCategories = []string{"tips", "projects", "trends", "guides", "news"}

// Portfolio project categories offered by the authoring form.
var PortfolioCategories = []string{"windows", "doors", "exterior", "interior"}

// Portfolio project statuses.
var PortfolioStatuses = []string{"Completed", "In Progress", "Planned"}

// Product categories offered by the authoring form.
var ProductCategories = []string{
	"plumbing", "electrical", "carpentry", "painting",
	"flooring", "roofing", "windows", "doors", "siding",
}

// BlogPost is a published article on the blog listing surface.
type BlogPost struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	ReadTime    string    `json:"read_time"`
	ImageURL    string    `json:"image_url"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedBy   int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Testimonial is the optional client quote attached to a portfolio project.
type Testimonial struct {
	Content string `json:"content"`
	Author  string `json:"author"`
	Role    string `json:"role,omitempty"`
}

// PortfolioProject is a completed (or planned) renovation shown on the
// portfolio listing surface with before/after imagery.
type PortfolioProject struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Location       string       `json:"location"`
	Date           string       `json:"date"`
	Status         string       `json:"status"`
	Details        []string     `json:"details"`
	BeforeImageURL string       `json:"before_image_url,omitempty"`
	AfterImageURL  string       `json:"after_image_url"`
	Testimonial    *Testimonial `json:"testimonial,omitempty"`
	CreatedBy      int64        `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ProductVariant is a purchasable variation of a product.
type ProductVariant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Product is a catalog entry on the products listing surface.
type Product struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category"`
	Price       float64          `json:"price"`
	ImageURL    string           `json:"image_url"`
	InStock     bool             `json:"in_stock"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	CreatedBy   int64            `json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
}

// IsValidCategory reports whether category is one of the allowed values.
func IsValidCategory(category string, allowed []string) bool {
	for _, c := range allowed {
		if c == category {
			return true
		}
	}
	return false
}

// DedupeTags removes duplicate tags while preserving order. Comparison is
// case-sensitive: "Oak" and "oak" are distinct tags.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
