package services

import (
	"testing"

	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestCreateExpense_EqualSplitRounding(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com", "carol@example.com")

	service := NewExpenseService(expenses, groups)
	expense, err := service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title:   "Taxi",
		Amount:  10.00,
		GroupID: group.ID,
		SplitDetails: []models.SplitInput{
			{Email: "alice@example.com"},
			{Email: "bob@example.com"},
			{Email: "carol@example.com"},
		},
	})
	assert.NoError(t, err)

	// 10.00 / 3 rounds to 3.33 per head; the residue is not redistributed
	assert.Len(t, expense.SplitDetails, 3)
	for _, split := range expense.SplitDetails {
		assert.Equal(t, 3.33, split.Amount)
		assert.False(t, split.IsPaid)
	}
}

func TestCreateExpense_Defaults(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")

	service := NewExpenseService(expenses, groups)
	expense, err := service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title:   "Groceries",
		Amount:  80.00,
		GroupID: group.ID,
		SplitDetails: []models.SplitInput{
			{Email: "Bob@Example.com "},
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, utils.DefaultCurrency, expense.Currency)
	assert.Equal(t, utils.DefaultCategory, expense.Category)
	assert.Equal(t, utils.SplitTypeEqual, expense.SplitType)
	assert.Equal(t, "alice@example.com", expense.PaidBy.Email)
	assert.Equal(t, "alice@example.com", expense.CreatedBy)
	assert.Equal(t, "bob@example.com", expense.SplitDetails[0].Email)
	assert.False(t, expense.Date.IsZero())
}

func TestCreateExpense_ExactSplitsStoredAsSupplied(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")

	service := NewExpenseService(expenses, groups)
	expense, err := service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title:     "Hotel",
		Amount:    100.00,
		GroupID:   group.ID,
		SplitType: utils.SplitTypeExact,
		SplitDetails: []models.SplitInput{
			{Email: "alice@example.com", Amount: 70.00},
			{Email: "bob@example.com", Amount: 30.00},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 70.00, expense.SplitDetails[0].Amount)
	assert.Equal(t, 30.00, expense.SplitDetails[1].Amount)
}

func TestCreateExpense_Validation(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")
	service := NewExpenseService(expenses, groups)

	splits := []models.SplitInput{{Email: "bob@example.com"}}

	_, err := service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Amount: 10, GroupID: group.ID, SplitDetails: splits,
	})
	assert.Error(t, err, "missing title")

	_, err = service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title: "Taxi", Amount: -5, GroupID: group.ID, SplitDetails: splits,
	})
	assert.Error(t, err, "negative amount")

	_, err = service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title: "Taxi", Amount: 10, GroupID: group.ID, Category: "Nonsense", SplitDetails: splits,
	})
	assert.Error(t, err, "unknown category")

	_, err = service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title: "Taxi", Amount: 10, GroupID: group.ID,
	})
	assert.Error(t, err, "no split lines")

	_, err = service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title: "Taxi", Amount: 10, GroupID: "missing-group", SplitDetails: splits,
	})
	assert.True(t, utils.IsNotFound(err))

	outsider := models.Principal{Email: "mallory@example.com"}
	_, err = service.CreateExpense(outsider, &models.CreateExpenseRequest{
		Title: "Taxi", Amount: 10, GroupID: group.ID, SplitDetails: splits,
	})
	assert.True(t, utils.IsForbidden(err))
}

func TestUpdateExpense_OwnershipAndMerge(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com", "carol@example.com")

	service := NewExpenseService(expenses, groups)
	bob := models.Principal{Email: "bob@example.com", Name: "Bob"}
	expense, err := service.CreateExpense(bob, &models.CreateExpenseRequest{
		Title:   "Lunch",
		Amount:  30.00,
		GroupID: group.ID,
		SplitDetails: []models.SplitInput{
			{Email: "bob@example.com"},
			{Email: "carol@example.com"},
		},
	})
	assert.NoError(t, err)

	// Carol is neither the creator nor the admin
	carol := models.Principal{Email: "carol@example.com"}
	title := "Brunch"
	_, err = service.UpdateExpense(carol, expense.ID, &models.UpdateExpenseRequest{Title: &title})
	assert.True(t, utils.IsForbidden(err))

	// The group admin may update someone else's expense; a new amount
	// recomputes the equal shares
	amount := 50.00
	updated, err := service.UpdateExpense(alicePrincipal(), expense.ID, &models.UpdateExpenseRequest{
		Title:  &title,
		Amount: &amount,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Brunch", updated.Title)
	assert.Equal(t, 50.00, updated.Amount)
	for _, split := range updated.SplitDetails {
		assert.Equal(t, 25.00, split.Amount)
	}
}

func TestUpdateExpense_ReplacingSplitsResetsPaidState(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")

	service := NewExpenseService(expenses, groups)
	expense, err := service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title:   "Tickets",
		Amount:  40.00,
		GroupID: group.ID,
		SplitDetails: []models.SplitInput{
			{Email: "alice@example.com"},
			{Email: "bob@example.com"},
		},
	})
	assert.NoError(t, err)

	found, err := expenses.MarkSplitPaid(expense.ID, "bob@example.com")
	assert.NoError(t, err)
	assert.True(t, found)

	updated, err := service.UpdateExpense(alicePrincipal(), expense.ID, &models.UpdateExpenseRequest{
		SplitDetails: []models.SplitInput{
			{Email: "alice@example.com"},
			{Email: "bob@example.com"},
		},
	})
	assert.NoError(t, err)
	for _, split := range updated.SplitDetails {
		assert.False(t, split.IsPaid)
	}
}

func TestDeleteExpense(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")
	service := NewExpenseService(expenses, groups)

	expense, err := service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
		Title:   "Snacks",
		Amount:  12.00,
		GroupID: group.ID,
		SplitDetails: []models.SplitInput{
			{Email: "bob@example.com"},
		},
	})
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteExpense(alicePrincipal(), expense.ID))

	err = service.DeleteExpense(alicePrincipal(), expense.ID)
	assert.True(t, utils.IsNotFound(err))
}

func TestGetStatistics_SortsByAmount(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")
	service := NewExpenseService(expenses, groups)

	create := func(title, category string, amount float64) {
		_, err := service.CreateExpense(alicePrincipal(), &models.CreateExpenseRequest{
			Title:    title,
			Amount:   amount,
			Category: category,
			GroupID:  group.ID,
			SplitDetails: []models.SplitInput{
				{Email: "bob@example.com"},
			},
		})
		assert.NoError(t, err)
	}
	create("Dinner", "Food", 60.00)
	create("Taxi", "Transport", 25.00)
	create("Coffee", "Food", 8.50)

	stats, err := service.GetStatistics(alicePrincipal(), group.ID)
	assert.NoError(t, err)

	assert.Equal(t, 3, stats.Overall.ExpenseCount)
	assert.Equal(t, 93.50, stats.Overall.TotalExpenses)
	assert.Len(t, stats.CategoryStats, 2)
	assert.Equal(t, "Food", stats.CategoryStats[0].Category)
	assert.Equal(t, 68.50, stats.CategoryStats[0].TotalAmount)
	assert.Equal(t, 2, stats.CategoryStats[0].Count)
	assert.Equal(t, "Transport", stats.CategoryStats[1].Category)
}

func TestListByDateRange_RejectsBadDates(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups)
	service := NewExpenseService(expenses, groups)

	_, err := service.ListByDateRange(alicePrincipal(), group.ID, "not-a-date", "2026-01-31")
	assert.Error(t, err)

	_, err = service.ListByDateRange(alicePrincipal(), group.ID, "2026-01-01", "2026-01-31")
	assert.NoError(t, err)
}
