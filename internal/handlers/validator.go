package handlers

import (
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new custom validator with budget-domain tags
// registered
func NewValidator() echo.Validator {
	v := validator.New()

	// category_type: income, fixed or variable
	_ = v.RegisterValidation("category_type", func(fl validator.FieldLevel) bool {
		return models.IsValidCategoryType(fl.Field().String())
	})

	// rule_scope: the SYSTEM scope or an owner UUID
	_ = v.RegisterValidation("rule_scope", func(fl validator.FieldLevel) bool {
		scope := fl.Field().String()
		if scope == models.ScopeSystem {
			return true
		}
		_, err := uuid.Parse(scope)
		return err == nil
	})

	return &CustomValidator{validator: v}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
