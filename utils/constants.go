package utils

const (
	// Split types
	SplitTypeEqual      = "equal"
	SplitTypeExact      = "exact"
	SplitTypePercentage = "percentage"

	// Defaults
	DefaultCurrency = "INR"
	DefaultCategory = "Other"

	// Common error messages
	ErrInvalidRequest   = "Invalid request"
	ErrGroupNotFound    = "Group not found"
	ErrExpenseNotFound  = "Expense not found"
	ErrNotGroupMember   = "You are not a member of this group"
	ErrNotGroupAdmin    = "Only group admin can perform this action"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"

	// Precision for monetary calculations
	MoneyPrecision = 100.0
)

// SplitTypes lists the accepted split types.
var SplitTypes = []string{SplitTypeEqual, SplitTypeExact, SplitTypePercentage}

// Categories lists the accepted expense categories.
var Categories = []string{"Food", "Transport", "Shopping", "Entertainment", "Bills", "Health", "Travel", "Other"}
