package services

import (
	"testing"

	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestMarkSplitPaid(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")
	expense := seedExpense(expenses, group.ID, "alice@example.com", 20.00,
		models.SplitDetail{Email: "alice@example.com", Amount: 10.00},
		models.SplitDetail{Email: "bob@example.com", Amount: 10.00},
	)

	service := NewSettlementService(expenses, groups)
	bob := models.Principal{Email: "bob@example.com"}

	updated, err := service.MarkSplitPaid(bob, expense.ID)
	assert.NoError(t, err)
	for _, split := range updated.SplitDetails {
		assert.Equal(t, split.Email == "bob@example.com", split.IsPaid)
	}
	assert.False(t, updated.IsSettled(), "alice's own line is still unpaid")

	// Paying an already-paid split is a harmless repeat
	again, err := service.MarkSplitPaid(bob, expense.ID)
	assert.NoError(t, err)
	assert.Equal(t, updated.SplitDetails, again.SplitDetails)
}

func TestMarkSplitPaid_NotAParticipant(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com")
	expense := seedExpense(expenses, group.ID, "alice@example.com", 20.00,
		models.SplitDetail{Email: "bob@example.com", Amount: 20.00},
	)

	service := NewSettlementService(expenses, groups)

	outsider := models.Principal{Email: "mallory@example.com"}
	_, err := service.MarkSplitPaid(outsider, expense.ID)
	assert.True(t, utils.IsNotFound(err))

	_, err = service.MarkSplitPaid(models.Principal{Email: "bob@example.com"}, "missing-expense")
	assert.True(t, utils.IsNotFound(err))
}

func TestSettleExpense(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com", "carol@example.com")
	expense := seedExpense(expenses, group.ID, "bob@example.com", 30.00,
		models.SplitDetail{Email: "alice@example.com", Amount: 10.00},
		models.SplitDetail{Email: "bob@example.com", Amount: 10.00},
		models.SplitDetail{Email: "carol@example.com", Amount: 10.00},
	)

	service := NewSettlementService(expenses, groups)

	// Carol created nothing and administers nothing
	carol := models.Principal{Email: "carol@example.com"}
	_, err := service.SettleExpense(carol, expense.ID)
	assert.True(t, utils.IsForbidden(err))

	// The group admin settles on the creator's behalf
	settled, err := service.SettleExpense(alicePrincipal(), expense.ID)
	assert.NoError(t, err)
	assert.True(t, settled.IsSettled())
	for _, split := range settled.SplitDetails {
		assert.True(t, split.IsPaid)
	}

	// Settling again is a no-op
	resettled, err := service.SettleExpense(alicePrincipal(), expense.ID)
	assert.NoError(t, err)
	assert.Equal(t, settled.SplitDetails, resettled.SplitDetails)
}

func TestSettleGroup(t *testing.T) {
	expenses := newFakeExpenseStore()
	groups := newFakeGroupStore()
	group := seedGroup(groups, "bob@example.com", "carol@example.com")

	seedExpense(expenses, group.ID, "alice@example.com", 30.00,
		models.SplitDetail{Email: "alice@example.com", Amount: 10.00},
		models.SplitDetail{Email: "bob@example.com", Amount: 10.00},
		models.SplitDetail{Email: "carol@example.com", Amount: 10.00},
	)
	seedExpense(expenses, group.ID, "bob@example.com", 12.00,
		models.SplitDetail{Email: "alice@example.com", Amount: 6.00},
		models.SplitDetail{Email: "bob@example.com", Amount: 6.00},
	)

	settlements := NewSettlementService(expenses, groups)
	balances := NewBalanceService(expenses, groups)

	// Only the admin may settle the group
	bob := models.Principal{Email: "bob@example.com"}
	_, err := settlements.SettleGroup(bob, group.ID)
	assert.True(t, utils.IsForbidden(err))

	result, err := settlements.SettleGroup(alicePrincipal(), group.ID)
	assert.NoError(t, err)
	assert.True(t, result.Group.IsSettled)
	assert.NotNil(t, result.Group.SettledAt)

	// Final balances reflect the ledger as it stood before the sweep
	assert.Equal(t, 14.00, findBalance(t, result.FinalBalances, "alice@example.com").NetBalance)
	assert.Equal(t, -4.00, findBalance(t, result.FinalBalances, "bob@example.com").NetBalance)
	assert.Equal(t, -10.00, findBalance(t, result.FinalBalances, "carol@example.com").NetBalance)
	assertZeroSum(t, result.FinalBalances)

	// After settlement every position reads zero
	summary, err := balances.GetGroupBalanceSummary(alicePrincipal(), group.ID)
	assert.NoError(t, err)
	assert.True(t, summary.IsSettled)
	for _, balance := range summary.Balances {
		assert.Equal(t, 0.00, balance.NetBalance)
	}

	// Settling a settled group succeeds with all-zero final balances
	result, err = settlements.SettleGroup(alicePrincipal(), group.ID)
	assert.NoError(t, err)
	for _, balance := range result.FinalBalances {
		assert.Equal(t, 0.00, balance.NetBalance)
	}
}

func TestSettleGroup_MissingGroup(t *testing.T) {
	service := NewSettlementService(newFakeExpenseStore(), newFakeGroupStore())
	_, err := service.SettleGroup(alicePrincipal(), "missing-group")
	assert.True(t, utils.IsNotFound(err))
}
