package services

import (
	"sort"

	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// BalanceService derives debt positions from the expense ledger. All balances
// are computed from unpaid split lines only: settlement retires debt by
// flipping paid flags, and paid lines become inert history. Split lines where
// the payer is also the participant never generate a debt edge.
type BalanceService struct {
	expenses ExpenseStore
	groups   GroupStore
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(expenses ExpenseStore, groups GroupStore) *BalanceService {
	return &BalanceService{
		expenses: expenses,
		groups:   groups,
	}
}

// GetBalanceSummary computes the caller's position inside a group
func (s *BalanceService) GetBalanceSummary(user models.Principal, groupID string) (*models.BalanceSummary, error) {
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

	expenses, err := s.expenses.GetByGroup(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	summary := computeUserBalance(expenses, user.Email)
	return &summary, nil
}

// GetGroupBalanceSummary computes every member's position inside a group
func (s *BalanceService) GetGroupBalanceSummary(user models.Principal, groupID string) (*models.GroupBalanceSummary, error) {
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

	expenses, err := s.expenses.GetByGroup(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	return &models.GroupBalanceSummary{
		GroupID:   group.ID,
		GroupName: group.Name,
		IsSettled: group.IsSettled,
		Balances:  computeGroupBalances(group, expenses),
	}, nil
}

// GetUserFinancialSummary rolls up the caller's position across all their groups
func (s *BalanceService) GetUserFinancialSummary(user models.Principal) (*models.FinancialSummary, error) {
	groups, err := s.groups.GetByMember(user.Email)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	summary := &models.FinancialSummary{
		GroupCount: len(groups),
		Groups:     []models.GroupSummary{},
	}

	for _, group := range groups {
		expenses, err := s.expenses.GetByGroup(group.ID)
		if err != nil {
			return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
		}

		balance := computeUserBalance(expenses, user.Email)
		if balance.Balance > 0 {
			summary.TotalToReceive = utils.Round(summary.TotalToReceive + balance.Balance)
		} else if balance.Balance < 0 {
			summary.TotalToPay = utils.Round(summary.TotalToPay - balance.Balance)
		}

		summary.Groups = append(summary.Groups, models.GroupSummary{
			GroupID:     group.ID,
			GroupName:   group.Name,
			Thumbnail:   group.Thumbnail,
			NetBalance:  balance.Balance,
			TotalPaid:   balance.TotalPaid,
			TotalShare:  balance.TotalOwed,
			MemberCount: len(group.MembersEmail),
			IsSettled:   group.IsSettled,
			IsAdmin:     group.IsAdmin(user.Email),
		})
	}

	summary.NetBalance = utils.Round(summary.TotalToReceive - summary.TotalToPay)
	return summary, nil
}

// computeUserBalance derives one user's position from a group's expenses.
// When the user is the payer, the unpaid shares of the other participants
// count as money fronted; when someone else paid, the user's own unpaid
// share counts as money owed.
func computeUserBalance(expenses []*models.Expense, email string) models.BalanceSummary {
	var totalPaid, totalOwed float64

	for _, expense := range expenses {
		if expense.PaidBy.Email == email {
			for _, split := range expense.SplitDetails {
				if split.Email == email || split.IsPaid {
					continue
				}
				totalPaid += split.Amount
			}
			continue
		}

		for _, split := range expense.SplitDetails {
			if split.Email == email && !split.IsPaid {
				totalOwed += split.Amount
			}
		}
	}

	totalPaid = utils.Round(totalPaid)
	totalOwed = utils.Round(totalOwed)
	return models.BalanceSummary{
		TotalPaid: totalPaid,
		TotalOwed: totalOwed,
		Balance:   utils.Round(totalPaid - totalOwed),
	}
}

// computeGroupBalances derives one position per member. Positions are seeded
// from the roster (admin folded in) and grown on demand for identities found
// only on split lines, so a debt edge is never dropped because its participant
// left the group. Net balances across the result always sum to zero.
func computeGroupBalances(group *models.Group, expenses []*models.Expense) []models.MemberBalance {
	positions := make(map[string]*models.MemberBalance)

	admit := func(email, name string) *models.MemberBalance {
		position, exists := positions[email]
		if !exists {
			position = &models.MemberBalance{Email: email}
			positions[email] = position
		}
		if position.Name == "" && name != "" {
			position.Name = name
		}
		return position
	}

	admit(group.AdminEmail, "")
	for _, email := range group.MembersEmail {
		admit(email, "")
	}

	for _, expense := range expenses {
		for _, split := range expense.SplitDetails {
			if split.IsPaid || split.Email == expense.PaidBy.Email {
				continue
			}
			payer := admit(expense.PaidBy.Email, expense.PaidBy.Name)
			participant := admit(split.Email, split.Name)
			payer.TotalPaid += split.Amount
			participant.TotalOwed += split.Amount
		}
	}

	balances := make([]models.MemberBalance, 0, len(positions))
	for _, position := range positions {
		position.TotalPaid = utils.Round(position.TotalPaid)
		position.TotalOwed = utils.Round(position.TotalOwed)
		position.NetBalance = utils.Round(position.TotalPaid - position.TotalOwed)
		balances = append(balances, *position)
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Email < balances[j].Email
	})
	return balances
}
