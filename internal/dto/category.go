package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCategoryRequest is the payload for creating a budget category
type CreateCategoryRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=255"`
	Type   string `json:"type" validate:"omitempty,category_type"`
	Amount string `json:"amount" validate:"omitempty"`
}

// CategoryResponse represents a budget category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListCategoriesResponse represents the response for listing categories
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}
