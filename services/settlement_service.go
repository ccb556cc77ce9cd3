package services

import (
	"net/http"
	"time"

	"github.com/splitmate-app/splitmate-backend/logger"
	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// SettlementService owns the one-way transitions that retire debt: a single
// split line, every line of an expense, or every line of every expense in a
// group. There is no un-pay operation at any granularity.
type SettlementService struct {
	expenses ExpenseStore
	groups   GroupStore
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(expenses ExpenseStore, groups GroupStore) *SettlementService {
	return &SettlementService{
		expenses: expenses,
		groups:   groups,
	}
}

// MarkSplitPaid flips the caller's split line on an expense to paid and
// returns the updated expense. Fails with NotFound when no expense/participant
// pairing matches.
func (s *SettlementService) MarkSplitPaid(user models.Principal, expenseID string) (*models.Expense, error) {
	found, err := s.expenses.MarkSplitPaid(expenseID, user.Email)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !found {
		return nil, &utils.AppError{
			Code:    http.StatusNotFound,
			Message: "Expense not found or you are not part of this expense",
		}
	}

	expense, err := s.expenses.GetByID(expenseID)
	if err != nil || expense == nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	logger.GetLogger().Infow("Split marked as paid", "expenseId", expenseID, "email", user.Email)
	return expense, nil
}

// SettleExpense flips every split line of an expense to paid in one bulk
// operation. Only the creator or the group admin may settle. Settling an
// already-settled expense is a no-op.
func (s *SettlementService) SettleExpense(user models.Principal, expenseID string) (*models.Expense, error) {
	expense, err := s.expenses.GetByID(expenseID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if expense == nil {
		return nil, utils.NewNotFoundError("Expense")
	}
	if err := s.checkOwnership(user, expense); err != nil {
		return nil, err
	}

	found, err := s.expenses.SettleExpense(expenseID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !found {
		return nil, utils.NewNotFoundError("Expense")
	}

	expense, err = s.expenses.GetByID(expenseID)
	if err != nil || expense == nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	logger.GetLogger().Infow("Expense settled", "expenseId", expenseID, "by", user.Email)
	return expense, nil
}

// SettleGroupResult carries the settled group along with the balances as they
// stood immediately before settlement.
type SettleGroupResult struct {
	Group         *models.Group          `json:"group"`
	FinalBalances []models.MemberBalance `json:"finalBalances"`
}

// SettleGroup settles an entire group: it captures the final balance summary,
// flips every split line of every group expense to paid, then marks the group
// settled. Restricted to the group admin. Re-settling a settled group is a
// no-op beyond refreshing the settled timestamp.
//
// The split sweep and the flag write are independently-atomic updates, not one
// transaction; a balance read racing this call may observe a partially settled
// group.
func (s *SettlementService) SettleGroup(user models.Principal, groupID string) (*SettleGroupResult, error) {
	group, err := s.groups.GetByID(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, utils.NewNotFoundError("Group")
	}
	if !group.IsAdmin(user.Email) {
		return nil, utils.NewForbiddenError(utils.ErrNotGroupAdmin)
	}

	expenses, err := s.expenses.GetByGroup(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	finalBalances := computeGroupBalances(group, expenses)

	if err := s.expenses.SettleGroupExpenses(groupID); err != nil {
		return nil, utils.NewInternalError("Failed to settle group expenses")
	}

	settledAt := time.Now().UTC()
	if _, err := s.groups.MarkSettled(groupID, settledAt); err != nil {
		return nil, utils.NewInternalError("Failed to mark group as settled")
	}

	group.IsSettled = true
	group.SettledAt = &settledAt
	group.UpdatedAt = settledAt

	logger.GetLogger().Infow("Group settled", "groupId", groupID, "admin", user.Email, "expenses", len(expenses))
	return &SettleGroupResult{
		Group:         group,
		FinalBalances: finalBalances,
	}, nil
}

func (s *SettlementService) checkOwnership(user models.Principal, expense *models.Expense) error {
	if expense.CreatedBy == user.Email {
		return nil
	}
	group, err := s.groups.GetByID(expense.GroupID)
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil || !group.IsAdmin(user.Email) {
		return utils.NewForbiddenError("You don't have permission to settle this expense")
	}
	return nil
}
