package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if a number is non-negative
func ValidateNonNegative(value float64, fieldName string) error {
	if value < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateOneOf checks that value is one of the allowed values
func ValidateOneOf(value, fieldName string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return NewValidationError(fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(allowed, ", ")))
}

// ValidateCategory checks that a category is one of the accepted categories
func ValidateCategory(category string) error {
	return ValidateOneOf(category, "category", Categories)
}

// ValidateSplitType checks that a split type is one of the accepted types
func ValidateSplitType(splitType string) error {
	return ValidateOneOf(splitType, "splitType", SplitTypes)
}
