package models

import "time"

// Principal is the already-verified identity of the caller, supplied by the
// auth middleware. The services never authenticate, they only consume it.
type Principal struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Group represents a group of people sharing expenses
type Group struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	AdminEmail   string     `json:"adminEmail"`
	MembersEmail []string   `json:"membersEmail"`
	IsSettled    bool       `json:"isSettled"`
	SettledAt    *time.Time `json:"settledAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsMember reports whether email belongs to the group. The admin counts as a
// member even when absent from the explicit member list; every membership
// check in the codebase goes through this predicate.
func (g *Group) IsMember(email string) bool {
	if email == g.AdminEmail {
		return true
	}
	for _, member := range g.MembersEmail {
		if member == email {
			return true
		}
	}
	return false
}

// IsAdmin reports whether email is the group admin.
func (g *Group) IsAdmin(email string) bool {
	return email == g.AdminEmail
}

// PaidBy identifies who fronted the money for an expense
type PaidBy struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SplitDetail is one participant's owed share of an expense
type SplitDetail struct {
	Email      string  `json:"email"`
	Name       string  `json:"name,omitempty"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage,omitempty"`
	IsPaid     bool    `json:"isPaid"`
}

// Attachment is a free-form file reference on an expense
type Attachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// Expense represents a shared expense
type Expense struct {
	ID           string        `json:"_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Amount       float64       `json:"amount"`
	Currency     string        `json:"currency"`
	Category     string        `json:"category"`
	GroupID      string        `json:"groupId"`
	PaidBy       PaidBy        `json:"paidBy"`
	SplitType    string        `json:"splitType"`
	SplitDetails []SplitDetail `json:"splitDetails"`
	Date         time.Time     `json:"date"`
	Attachments  []Attachment  `json:"attachments,omitempty"`
	CreatedBy    string        `json:"createdBy"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsSettled reports whether every split line of the expense is paid.
// Expense settlement is derived state, never stored.
func (e *Expense) IsSettled() bool {
	for _, split := range e.SplitDetails {
		if !split.IsPaid {
			return false
		}
	}
	return true
}

// BalanceSummary is one user's position inside a group, derived from unpaid
// split lines only
type BalanceSummary struct {
	TotalPaid float64 `json:"totalPaid"`
	TotalOwed float64 `json:"totalOwed"`
	Balance   float64 `json:"balance"`
}

// MemberBalance is one member's position in a group-wide balance summary
type MemberBalance struct {
	Email      string  `json:"email"`
	Name       string  `json:"name,omitempty"`
	TotalPaid  float64 `json:"totalPaid"`
	TotalOwed  float64 `json:"totalOwed"`
	NetBalance float64 `json:"netBalance"`
}

// GroupBalanceSummary is the full set of member positions for a group
type GroupBalanceSummary struct {
	GroupID   string          `json:"groupId"`
	GroupName string          `json:"groupName,omitempty"`
	IsSettled bool            `json:"isSettled"`
	Balances  []MemberBalance `json:"balances"`
}

// CategoryStat aggregates expenses of one category
type CategoryStat struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

// GroupStatistics aggregates a group's expenses by category
type GroupStatistics struct {
	CategoryStats []CategoryStat `json:"categoryStats"`
	Overall       OverallStat    `json:"overall"`
}

// OverallStat is the group-wide expense rollup
type OverallStat struct {
	TotalExpenses float64 `json:"totalExpenses"`
	ExpenseCount  int     `json:"expenseCount"`
}

// GroupSummary is one group's entry in a user's financial summary
type GroupSummary struct {
	GroupID     string  `json:"groupId"`
	GroupName   string  `json:"groupName"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	NetBalance  float64 `json:"netBalance"`
	TotalPaid   float64 `json:"totalPaid"`
	TotalShare  float64 `json:"totalShare"`
	MemberCount int     `json:"memberCount"`
	IsSettled   bool    `json:"isSettled"`
	IsAdmin     bool    `json:"isAdmin"`
}

// FinancialSummary is a user's position across all their groups
type FinancialSummary struct {
	TotalToPay     float64        `json:"totalToPay"`
	TotalToReceive float64        `json:"totalToReceive"`
	NetBalance     float64        `json:"netBalance"`
	GroupCount     int            `json:"groupCount"`
	Groups         []GroupSummary `json:"groups"`
}
