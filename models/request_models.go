package models

import "time"

// CreateGroupRequest request model
type CreateGroupRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Thumbnail    string   `json:"thumbnail"`
	MembersEmail []string `json:"membersEmail"`
}

// UpdateGroupRequest request model; nil fields are left untouched
type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
}

// MembersRequest request model for add/remove member operations
type MembersRequest struct {
	Emails []string `json:"emails" binding:"required,min=1"`
}

// SplitInput is one split line as supplied by the client
type SplitInput struct {
	Email      string  `json:"email" binding:"required"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount" binding:"min=0"`
	Percentage float64 `json:"percentage"`
}

// CreateExpenseRequest request model
type CreateExpenseRequest struct {
	Title        string       `json:"title" binding:"required"`
	Description  string       `json:"description"`
	Amount       float64      `json:"amount" binding:"min=0"`
	Currency     string       `json:"currency"`
	Category     string       `json:"category"`
	GroupID      string       `json:"groupId" binding:"required"`
	SplitType    string       `json:"splitType"`
	SplitDetails []SplitInput `json:"splitDetails" binding:"required,min=1"`
	Date         *time.Time   `json:"date"`
	Attachments  []Attachment `json:"attachments"`
}

// UpdateExpenseRequest request model; nil fields are left untouched
type UpdateExpenseRequest struct {
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	Amount       *float64     `json:"amount"`
	Currency     *string      `json:"currency"`
	Category     *string      `json:"category"`
	SplitType    *string      `json:"splitType"`
	SplitDetails []SplitInput `json:"splitDetails"`
	Date         *time.Time   `json:"date"`
	Attachments  []Attachment `json:"attachments"`
}

// DateRangeRequest query model for date-range expense listing
type DateRangeRequest struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}
