// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fintrack/internal/models"
)

var validCategories = func() map[string]bool {
	m := make(map[string]bool, len(models.Categories))
	for _, c := range models.Categories {
		m[string(c)] = true
	}
	return m
}()

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("transaction_category", validateTransactionCategory)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateTransactionCategory(fl validator.FieldLevel) bool {
	return validCategories[fl.Field().String()]
}
