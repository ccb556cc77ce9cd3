package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// ExportService generates Excel reports for groups
type ExportService struct {
	expenses ExpenseStore
	groups   GroupStore
}

// NewExportService creates a new ExportService
func NewExportService(expenses ExpenseStore, groups GroupStore) *ExportService {
	return &ExportService{
		expenses: expenses,
		groups:   groups,
	}
}

// ExportGroupReport generates an Excel workbook for a group: a balance
// summary sheet and an expense sheet with one share column per member.
// Member-gated.
func (s *ExportService) ExportGroupReport(user models.Principal, groupID string) (*excelize.File, string, error) {
	group, err := s.groups.GetByID(groupID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, "", utils.NewNotFoundError("Group")
	}
	if !group.IsMember(user.Email) {
		return nil, "", utils.NewForbiddenError(utils.ErrNotGroupMember)
	}

	expenses, err := s.expenses.GetByGroup(groupID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	balances := computeGroupBalances(group, expenses)

	f := excelize.NewFile()
	if err := s.createSummarySheet(f, group, balances); err != nil {
		return nil, "", utils.NewInternalError("Failed to create summary sheet")
	}
	if err := s.createExpenseSheet(f, balances, expenses); err != nil {
		return nil, "", utils.NewInternalError("Failed to create expense sheet")
	}
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Report_%s.xlsx",
		utils.CleanFileName(group.Name),
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

func (s *ExportService) createSummarySheet(f *excelize.File, group *models.Group, balances []models.MemberBalance) error {
	sheetName := "Summary"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A1", group.Name); err != nil {
		return err
	}
	status := "Open"
	if group.IsSettled {
		status = "Settled"
	}
	if err := f.SetCellValue(sheetName, "B1", status); err != nil {
		return err
	}

	headers := []string{"Member", "Total Fronted", "Total Owed", "Net Balance"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for i, balance := range balances {
		row := i + 4
		values := []interface{}{balance.Email, balance.TotalPaid, balance.TotalOwed, balance.NetBalance}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ExportService) createExpenseSheet(f *excelize.File, balances []models.MemberBalance, expenses []*models.Expense) error {
	sheetName := "Expenses"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	headers := []string{"Date", "Title", "Category", "Paid By", "Amount"}
	memberCol := make(map[string]int)
	for _, balance := range balances {
		memberCol[balance.Email] = len(headers) + 1
		headers = append(headers, balance.Email)
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for i, expense := range expenses {
		row := i + 2
		values := []interface{}{
			expense.Date.Format("2006-01-02"),
			expense.Title,
			expense.Category,
			expense.PaidBy.Email,
			expense.Amount,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}

		for _, split := range expense.SplitDetails {
			col, ok := memberCol[split.Email]
			if !ok {
				// participant no longer on the roster and carrying no open
				// balance; skip the matrix cell
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col, row)
			value := fmt.Sprintf("%.2f", split.Amount)
			if split.IsPaid {
				value += " (paid)"
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
