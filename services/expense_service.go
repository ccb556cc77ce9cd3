package services

import (
	"sort"
	"time"

	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// ExpenseService handles expense CRUD, listing and statistics
type ExpenseService struct {
	expenses ExpenseStore
	groups   GroupStore
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenses ExpenseStore, groups GroupStore) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		groups:   groups,
	}
}

// CreateExpense validates and stores a new expense. The caller must be a
// member of the target group. For equal splits, each line's amount is
// recomputed as amount/lineCount rounded to 2 decimals, overriding any
// client-supplied values; the rounding residue is not redistributed.
func (s *ExpenseService) CreateExpense(user models.Principal, request *models.CreateExpenseRequest) (*models.Expense, error) {
	group, err := s.groups.GetByID(request.GroupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, utils.NewNotFoundError("Group")
	}
	if !group.IsMember(user.Email) {
		return nil, utils.NewForbiddenError(utils.ErrNotGroupMember)
	}

	expense := &models.Expense{
		ID:          utils.GenerateID(),
		Title:       request.Title,
		Description: request.Description,
		Amount:      request.Amount,
		Currency:    request.Currency,
		Category:    request.Category,
		GroupID:     request.GroupID,
		PaidBy:      models.PaidBy{Email: user.Email, Name: user.Name},
		SplitType:   request.SplitType,
		Attachments: request.Attachments,
		CreatedBy:   user.Email,
	}

	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	if request.Date != nil {
		expense.Date = *request.Date
	} else {
		expense.Date = now
	}

	for _, split := range request.SplitDetails {
		expense.SplitDetails = append(expense.SplitDetails, models.SplitDetail{
			Email:      utils.NormalizeEmail(split.Email),
			Name:       split.Name,
			Amount:     split.Amount,
			Percentage: split.Percentage,
		})
	}

	if err := normalizeAndValidateExpense(expense); err != nil {
		return nil, err
	}

	if err := s.expenses.Insert(expense); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(expenseID string) (*models.Expense, error) {
	expense, err := s.expenses.GetByID(expenseID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if expense == nil {
		return nil, utils.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListByGroup lists a group's expenses for a member, newest first
func (s *ExpenseService) ListByGroup(user models.Principal, groupID string) ([]*models.Expense, error) {
	if _, err := s.memberGroup(user, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.GetByGroup(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return expenses, nil
}

// ListByUser lists every expense the caller is involved in, as payer or participant
func (s *ExpenseService) ListByUser(user models.Principal) ([]*models.Expense, error) {
	expenses, err := s.expenses.GetByUser(user.Email)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return expenses, nil
}

// ListByCategory lists a group's expenses of one category
func (s *ExpenseService) ListByCategory(user models.Principal, groupID, category string) ([]*models.Expense, error) {
	if err := utils.ValidateCategory(category); err != nil {
		return nil, err
	}
	if _, err := s.memberGroup(user, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.GetByCategory(groupID, category)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return expenses, nil
}

// ListByDateRange lists a group's expenses dated within [start, end].
// Dates are accepted as RFC 3339 timestamps or plain YYYY-MM-DD dates.
func (s *ExpenseService) ListByDateRange(user models.Principal, groupID, startDate, endDate string) ([]*models.Expense, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, utils.NewValidationError("Invalid start date")
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, utils.NewValidationError("Invalid end date")
	}
	if _, err := s.memberGroup(user, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.GetByDateRange(groupID, start, end)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return expenses, nil
}

// UpdateExpense merges the provided fields into an existing expense.
// Only the creator or the group admin may update. Supplying an amount with an
// equal split type recomputes every line's share; supplying new split details
// replaces the lines outright, resetting their paid state.
func (s *ExpenseService) UpdateExpense(user models.Principal, expenseID string, request *models.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.GetExpense(expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(user, expense); err != nil {
		return nil, err
	}

	if request.Title != nil {
		expense.Title = *request.Title
	}
	if request.Description != nil {
		expense.Description = *request.Description
	}
	if request.Amount != nil {
		expense.Amount = *request.Amount
	}
	if request.Currency != nil {
		expense.Currency = *request.Currency
	}
	if request.Category != nil {
		expense.Category = *request.Category
	}
	if request.SplitType != nil {
		expense.SplitType = *request.SplitType
	}
	if request.Date != nil {
		expense.Date = *request.Date
	}
	if request.Attachments != nil {
		expense.Attachments = request.Attachments
	}
	if request.SplitDetails != nil {
		expense.SplitDetails = nil
		for _, split := range request.SplitDetails {
			expense.SplitDetails = append(expense.SplitDetails, models.SplitDetail{
				Email:      utils.NormalizeEmail(split.Email),
				Name:       split.Name,
				Amount:     split.Amount,
				Percentage: split.Percentage,
			})
		}
	}

	if err := normalizeAndValidateExpense(expense); err != nil {
		return nil, err
	}
	expense.UpdatedAt = time.Now().UTC()

	found, err := s.expenses.Update(expense)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !found {
		return nil, utils.NewNotFoundError("Expense")
	}
	return expense, nil
}

// DeleteExpense permanently removes an expense. Only the creator or the
// group admin may delete.
func (s *ExpenseService) DeleteExpense(user models.Principal, expenseID string) error {
	expense, err := s.GetExpense(expenseID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(user, expense); err != nil {
		return err
	}

	found, err := s.expenses.Delete(expenseID)
	if err != nil {
		return utils.NewInternalError("Failed to delete expense")
	}
	if !found {
		return utils.NewNotFoundError("Expense")
	}
	return nil
}

// GetStatistics aggregates a group's expenses by category, largest first,
// along with the group-wide totals
func (s *ExpenseService) GetStatistics(user models.Principal, groupID string) (*models.GroupStatistics, error) {
	if _, err := s.memberGroup(user, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.GetByGroup(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	byCategory := make(map[string]*models.CategoryStat)
	overall := models.OverallStat{}
	for _, expense := range expenses {
		stat, exists := byCategory[expense.Category]
		if !exists {
			stat = &models.CategoryStat{Category: expense.Category}
			byCategory[expense.Category] = stat
		}
		stat.TotalAmount = utils.Round(stat.TotalAmount + expense.Amount)
		stat.Count++
		overall.TotalExpenses = utils.Round(overall.TotalExpenses + expense.Amount)
		overall.ExpenseCount++
	}

	stats := make([]models.CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalAmount != stats[j].TotalAmount {
			return stats[i].TotalAmount > stats[j].TotalAmount
		}
		return stats[i].Category < stats[j].Category
	})

	return &models.GroupStatistics{
		CategoryStats: stats,
		Overall:       overall,
	}, nil
}

// memberGroup fetches a group and verifies the caller belongs to it
func (s *ExpenseService) memberGroup(user models.Principal, groupID string) (*models.Group, error) {
	group, err := s.groups.GetByID(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, utils.NewNotFoundError("Group")
	}
	if !group.IsMember(user.Email) {
		return nil, utils.NewForbiddenError(utils.ErrNotGroupMember)
	}
	return group, nil
}

// checkOwnership allows the expense creator, falling back to a group admin check
func (s *ExpenseService) checkOwnership(user models.Principal, expense *models.Expense) error {
	if expense.CreatedBy == user.Email {
		return nil
	}
	group, err := s.groups.GetByID(expense.GroupID)
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil || !group.IsAdmin(user.Email) {
		return utils.NewForbiddenError("You don't have permission to modify this expense")
	}
	return nil
}

// normalizeAndValidateExpense applies defaults and checks the expense shape.
// Equal splits get their line amounts recomputed here.
func normalizeAndValidateExpense(expense *models.Expense) error {
	if expense.Currency == "" {
		expense.Currency = utils.DefaultCurrency
	}
	if expense.Category == "" {
		expense.Category = utils.DefaultCategory
	}
	if expense.SplitType == "" {
		expense.SplitType = utils.SplitTypeEqual
	}

	if err := utils.ValidateRequired(expense.Title, "title"); err != nil {
		return err
	}
	if err := utils.ValidateNonNegative(expense.Amount, "amount"); err != nil {
		return err
	}
	if err := utils.ValidateCategory(expense.Category); err != nil {
		return err
	}
	if err := utils.ValidateSplitType(expense.SplitType); err != nil {
		return err
	}
	if err := utils.ValidateNotEmpty(expense.SplitDetails, "splitDetails"); err != nil {
		return err
	}
	for _, split := range expense.SplitDetails {
		if err := utils.ValidateRequired(split.Email, "split email"); err != nil {
			return err
		}
		if err := utils.ValidateNonNegative(split.Amount, "split amount"); err != nil {
			return err
		}
	}

	// exact and percentage splits are stored as supplied; their sums are not
	// reconciled against the expense amount
	if expense.SplitType == utils.SplitTypeEqual {
		share := utils.Round(expense.Amount / float64(len(expense.SplitDetails)))
		for i := range expense.SplitDetails {
			expense.SplitDetails[i].Amount = share
		}
	}

	return nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
