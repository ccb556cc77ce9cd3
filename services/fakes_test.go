package services

import (
	"sort"
	"time"

	"github.com/splitmate-app/splitmate-backend/models"
)

// In-memory store fakes. They clone on read and write the way the SQL
// repositories rebuild rows, so service-side mutations never leak in.

type fakeExpenseStore struct {
	expenses map[string]*models.Expense
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[string]*models.Expense)}
}

func cloneExpense(expense *models.Expense) *models.Expense {
	clone := *expense
	clone.SplitDetails = append([]models.SplitDetail(nil), expense.SplitDetails...)
	clone.Attachments = append([]models.Attachment(nil), expense.Attachments...)
	return &clone
}

func (s *fakeExpenseStore) Insert(expense *models.Expense) error {
	s.expenses[expense.ID] = cloneExpense(expense)
	return nil
}

func (s *fakeExpenseStore) GetByID(expenseID string) (*models.Expense, error) {
	expense, exists := s.expenses[expenseID]
	if !exists {
		return nil, nil
	}
	return cloneExpense(expense), nil
}

func (s *fakeExpenseStore) collect(match func(*models.Expense) bool) []*models.Expense {
	var result []*models.Expense
	for _, expense := range s.expenses {
		if match(expense) {
			result = append(result, cloneExpense(expense))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result
}

func (s *fakeExpenseStore) GetByGroup(groupID string) ([]*models.Expense, error) {
	return s.collect(func(e *models.Expense) bool { return e.GroupID == groupID }), nil
}

func (s *fakeExpenseStore) GetByUser(email string) ([]*models.Expense, error) {
	return s.collect(func(e *models.Expense) bool {
		if e.PaidBy.Email == email {
			return true
		}
		for _, split := range e.SplitDetails {
			if split.Email == email {
				return true
			}
		}
		return false
	}), nil
}

func (s *fakeExpenseStore) GetByCategory(groupID, category string) ([]*models.Expense, error) {
	return s.collect(func(e *models.Expense) bool {
		return e.GroupID == groupID && e.Category == category
	}), nil
}

func (s *fakeExpenseStore) GetByDateRange(groupID string, start, end time.Time) ([]*models.Expense, error) {
	return s.collect(func(e *models.Expense) bool {
		return e.GroupID == groupID && !e.Date.Before(start) && !e.Date.After(end)
	}), nil
}

func (s *fakeExpenseStore) Update(expense *models.Expense) (bool, error) {
	if _, exists := s.expenses[expense.ID]; !exists {
		return false, nil
	}
	s.expenses[expense.ID] = cloneExpense(expense)
	return true, nil
}

func (s *fakeExpenseStore) Delete(expenseID string) (bool, error) {
	if _, exists := s.expenses[expenseID]; !exists {
		return false, nil
	}
	delete(s.expenses, expenseID)
	return true, nil
}

func (s *fakeExpenseStore) MarkSplitPaid(expenseID, email string) (bool, error) {
	expense, exists := s.expenses[expenseID]
	if !exists {
		return false, nil
	}
	found := false
	for i := range expense.SplitDetails {
		if expense.SplitDetails[i].Email == email {
			expense.SplitDetails[i].IsPaid = true
			found = true
		}
	}
	return found, nil
}

func (s *fakeExpenseStore) SettleExpense(expenseID string) (bool, error) {
	expense, exists := s.expenses[expenseID]
	if !exists {
		return false, nil
	}
	for i := range expense.SplitDetails {
		expense.SplitDetails[i].IsPaid = true
	}
	return true, nil
}

func (s *fakeExpenseStore) SettleGroupExpenses(groupID string) error {
	for _, expense := range s.expenses {
		if expense.GroupID != groupID {
			continue
		}
		for i := range expense.SplitDetails {
			expense.SplitDetails[i].IsPaid = true
		}
	}
	return nil
}

type fakeGroupStore struct {
	groups map[string]*models.Group
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: make(map[string]*models.Group)}
}

func cloneGroup(group *models.Group) *models.Group {
	clone := *group
	clone.MembersEmail = append([]string(nil), group.MembersEmail...)
	if group.SettledAt != nil {
		settledAt := *group.SettledAt
		clone.SettledAt = &settledAt
	}
	return &clone
}

func (s *fakeGroupStore) Insert(group *models.Group) error {
	s.groups[group.ID] = cloneGroup(group)
	return nil
}

func (s *fakeGroupStore) GetByID(groupID string) (*models.Group, error) {
	group, exists := s.groups[groupID]
	if !exists {
		return nil, nil
	}
	return cloneGroup(group), nil
}

func (s *fakeGroupStore) GetByMember(email string) ([]*models.Group, error) {
	var result []*models.Group
	for _, group := range s.groups {
		if group.IsMember(email) {
			result = append(result, cloneGroup(group))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *fakeGroupStore) GetBySettled(settled bool) ([]*models.Group, error) {
	var result []*models.Group
	for _, group := range s.groups {
		if group.IsSettled == settled {
			result = append(result, cloneGroup(group))
		}
	}
	return result, nil
}

func (s *fakeGroupStore) Update(group *models.Group) (bool, error) {
	existing, exists := s.groups[group.ID]
	if !exists {
		return false, nil
	}
	updated := cloneGroup(group)
	updated.MembersEmail = append([]string(nil), existing.MembersEmail...)
	s.groups[group.ID] = updated
	return true, nil
}

func (s *fakeGroupStore) AddMembers(groupID string, emails []string) error {
	group, exists := s.groups[groupID]
	if !exists {
		return nil
	}
	for _, email := range emails {
		present := false
		for _, member := range group.MembersEmail {
			if member == email {
				present = true
				break
			}
		}
		if !present {
			group.MembersEmail = append(group.MembersEmail, email)
		}
	}
	return nil
}

func (s *fakeGroupStore) RemoveMembers(groupID string, emails []string) error {
	group, exists := s.groups[groupID]
	if !exists {
		return nil
	}
	remove := make(map[string]bool, len(emails))
	for _, email := range emails {
		remove[email] = true
	}
	var kept []string
	for _, member := range group.MembersEmail {
		if !remove[member] {
			kept = append(kept, member)
		}
	}
	group.MembersEmail = kept
	return nil
}

func (s *fakeGroupStore) MarkSettled(groupID string, settledAt time.Time) (bool, error) {
	group, exists := s.groups[groupID]
	if !exists {
		return false, nil
	}
	group.IsSettled = true
	group.SettledAt = &settledAt
	group.UpdatedAt = settledAt
	return true, nil
}

func (s *fakeGroupStore) Delete(groupID string) (bool, error) {
	if _, exists := s.groups[groupID]; !exists {
		return false, nil
	}
	delete(s.groups, groupID)
	return true, nil
}
