package services

import (
	"time"

	"github.com/splitmate-app/splitmate-backend/models"
)

// ExpenseStore is the persistence collaborator for expenses. Get methods
// return (nil, nil) when the entity is absent; mutation methods report
// whether a matching record was found.
type ExpenseStore interface {
	Insert(expense *models.Expense) error
	GetByID(expenseID string) (*models.Expense, error)
	GetByGroup(groupID string) ([]*models.Expense, error)
	GetByUser(email string) ([]*models.Expense, error)
	GetByCategory(groupID, category string) ([]*models.Expense, error)
	GetByDateRange(groupID string, start, end time.Time) ([]*models.Expense, error)
	Update(expense *models.Expense) (bool, error)
	Delete(expenseID string) (bool, error)
	MarkSplitPaid(expenseID, email string) (bool, error)
	SettleExpense(expenseID string) (bool, error)
	SettleGroupExpenses(groupID string) error
}

// GroupStore is the persistence collaborator for groups.
type GroupStore interface {
	Insert(group *models.Group) error
	GetByID(groupID string) (*models.Group, error)
	GetByMember(email string) ([]*models.Group, error)
	GetBySettled(settled bool) ([]*models.Group, error)
	Update(group *models.Group) (bool, error)
	AddMembers(groupID string, emails []string) error
	RemoveMembers(groupID string, emails []string) error
	MarkSettled(groupID string, settledAt time.Time) (bool, error)
	Delete(groupID string) (bool, error)
}
