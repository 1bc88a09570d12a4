package dto

import "time"

// CreateCategoryRequest is the JSON body for POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
	Type string `json:"type" binding:"required,oneof=income expense"`
	Icon string `json:"icon" binding:"max=16"` // optional glyph
}

// CategoryResponse is a single category row.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCategoriesResponse wraps the ordered category list.
type ListCategoriesResponse struct {
	Items []CategoryResponse `json:"items"`
}
