package handlers

import (
	"net/http"

	"github.com/heinrichwest/Personal-budget-sub000/internal/dto"
	"github.com/heinrichwest/Personal-budget-sub000/internal/errors"
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CategoryHandler handles budget category HTTP requests
type CategoryHandler struct {
	categoryRepo repositories.BudgetCategoryRepositoryInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryRepo repositories.BudgetCategoryRepositoryInterface) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

// ListCategories returns all budget categories for an owner
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	categories, err := h.categoryRepo.GetByOwnerID(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	response := dto.ListCategoriesResponse{
		Categories: make([]dto.CategoryResponse, 0, len(categories)),
		Total:      len(categories),
	}
	for i := range categories {
		response.Categories = append(response.Categories, toCategoryResponse(&categories[i]))
	}

	return c.JSON(http.StatusOK, response)
}

// GetCategory retrieves a specific budget category by ID
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	categoryID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	category, err := h.categoryRepo.GetByIDForOwner(categoryID, ownerID)
	if err != nil {
		if err == repositories.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// CreateCategory creates a budget category for an owner. Names are unique
// per owner after normalization, so "Pet Food" and "pet  food" collide.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat,
				errors.WithDetails("amount must be a decimal number"))
		}
	}

	if existing, err := h.categoryRepo.FindByName(ownerID, req.Name); err == nil {
		return c.JSON(http.StatusOK, toCategoryResponse(existing))
	} else if err != repositories.ErrCategoryNotFound {
		return SendSystemError(c, err)
	}

	category := &models.BudgetCategory{
		OwnerID: ownerID,
		Name:    req.Name,
		Type:    req.Type,
		Amount:  amount,
	}

	if err := h.categoryRepo.Create(category); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func toCategoryResponse(category *models.BudgetCategory) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID,
		OwnerID:   category.OwnerID,
		Name:      category.Name,
		Type:      category.Type,
		Amount:    category.Amount.String(),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
