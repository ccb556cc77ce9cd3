package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/splitmate-app/splitmate-backend/models"
)

// ExpenseRepository handles database operations for expenses
type ExpenseRepository struct {
	DB *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{
		DB: GetDB(),
	}
}

const expenseColumns = `id, group_id, title, description, amount, currency, category,
    paid_by_email, paid_by_name, split_type, date, created_by, created_at, updated_at`

// Insert saves an expense with its split lines and attachments
func (r *ExpenseRepository) Insert(expense *models.Expense) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO expenses
         (id, group_id, title, description, amount, currency, category,
          paid_by_email, paid_by_name, split_type, date, created_by, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		expense.ID, expense.GroupID, expense.Title, expense.Description, expense.Amount,
		expense.Currency, expense.Category, expense.PaidBy.Email, expense.PaidBy.Name,
		expense.SplitType, expense.Date, expense.CreatedBy, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}

	if err = insertSplitsAndAttachments(tx, expense); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves an expense by ID; returns (nil, nil) when absent
func (r *ExpenseRepository) GetByID(expenseID string) (*models.Expense, error) {
	row := r.DB.QueryRow(
		"SELECT "+expenseColumns+" FROM expenses WHERE id = $1",
		expenseID,
	)

	var expense models.Expense
	err := scanExpenseRow(row.Scan, &expense)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %v", err)
	}

	if err := r.loadDetails(&expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// GetByGroup retrieves all expenses for a group, newest first
func (r *ExpenseRepository) GetByGroup(groupID string) ([]*models.Expense, error) {
	return r.queryExpenses(
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = $1 ORDER BY date DESC",
		groupID,
	)
}

// GetByUser retrieves all expenses the given email is involved in,
// either as payer or as a split participant
func (r *ExpenseRepository) GetByUser(email string) ([]*models.Expense, error) {
	return r.queryExpenses(
		`SELECT `+expenseColumns+` FROM expenses
         WHERE paid_by_email = $1
            OR id IN (SELECT expense_id FROM expense_splits WHERE email = $1)
         ORDER BY date DESC`,
		email,
	)
}

// GetByCategory retrieves a group's expenses of one category, newest first
func (r *ExpenseRepository) GetByCategory(groupID, category string) ([]*models.Expense, error) {
	return r.queryExpenses(
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = $1 AND category = $2 ORDER BY date DESC",
		groupID, category,
	)
}

// GetByDateRange retrieves a group's expenses dated within [start, end], newest first
func (r *ExpenseRepository) GetByDateRange(groupID string, start, end time.Time) ([]*models.Expense, error) {
	return r.queryExpenses(
		`SELECT `+expenseColumns+` FROM expenses
         WHERE group_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC`,
		groupID, start, end,
	)
}

// Update rewrites an expense and its split lines; returns false when absent
func (r *ExpenseRepository) Update(expense *models.Expense) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE expenses SET title = $2, description = $3, amount = $4, currency = $5,
            category = $6, split_type = $7, date = $8, updated_at = $9
         WHERE id = $1`,
		expense.ID, expense.Title, expense.Description, expense.Amount, expense.Currency,
		expense.Category, expense.SplitType, expense.Date, expense.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update expense: %v", err)
	}
	found, err := rowsAffected(result)
	if err != nil || !found {
		return false, err
	}

	if _, err = tx.Exec("DELETE FROM expense_splits WHERE expense_id = $1", expense.ID); err != nil {
		return false, fmt.Errorf("failed to clear expense splits: %v", err)
	}
	if _, err = tx.Exec("DELETE FROM expense_attachments WHERE expense_id = $1", expense.ID); err != nil {
		return false, fmt.Errorf("failed to clear expense attachments: %v", err)
	}
	if err = insertSplitsAndAttachments(tx, expense); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// Delete permanently removes an expense; splits and attachments cascade
func (r *ExpenseRepository) Delete(expenseID string) (bool, error) {
	result, err := r.DB.Exec("DELETE FROM expenses WHERE id = $1", expenseID)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %v", err)
	}
	return rowsAffected(result)
}

// MarkSplitPaid flips the single split line matching the expense/email pairing.
// Returns false when no such pairing exists.
func (r *ExpenseRepository) MarkSplitPaid(expenseID, email string) (bool, error) {
	result, err := r.DB.Exec(
		"UPDATE expense_splits SET is_paid = TRUE WHERE expense_id = $1 AND email = $2",
		expenseID, email,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark split as paid: %v", err)
	}
	return rowsAffected(result)
}

// SettleExpense flips every split line of the expense to paid.
// Returns false when the expense does not exist.
func (r *ExpenseRepository) SettleExpense(expenseID string) (bool, error) {
	var count int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM expenses WHERE id = $1", expenseID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check expense: %v", err)
	}
	if count == 0 {
		return false, nil
	}

	_, err = r.DB.Exec("UPDATE expense_splits SET is_paid = TRUE WHERE expense_id = $1", expenseID)
	if err != nil {
		return false, fmt.Errorf("failed to settle expense: %v", err)
	}
	return true, nil
}

// SettleGroupExpenses flips every split line of every expense in the group.
// This is a single bulk update over the splits, separate from the group's
// settled-flag write; a concurrent balance read may observe the sweep mid-flight.
func (r *ExpenseRepository) SettleGroupExpenses(groupID string) error {
	_, err := r.DB.Exec(
		`UPDATE expense_splits SET is_paid = TRUE
         WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = $1)`,
		groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle group expenses: %v", err)
	}
	return nil
}

func (r *ExpenseRepository) queryExpenses(query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := scanExpenseRow(rows.Scan, &expense); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		expenses = append(expenses, &expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %v", err)
	}

	for _, expense := range expenses {
		if err := r.loadDetails(expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (r *ExpenseRepository) loadDetails(expense *models.Expense) error {
	rows, err := r.DB.Query(
		`SELECT email, name, amount, percentage, is_paid
         FROM expense_splits WHERE expense_id = $1 ORDER BY id`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense splits: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.SplitDetail
		if err := rows.Scan(&split.Email, &split.Name, &split.Amount, &split.Percentage, &split.IsPaid); err != nil {
			return fmt.Errorf("failed to scan expense split: %v", err)
		}
		expense.SplitDetails = append(expense.SplitDetails, split)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	aRows, err := r.DB.Query(
		"SELECT url, filename FROM expense_attachments WHERE expense_id = $1 ORDER BY id",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense attachments: %v", err)
	}
	defer aRows.Close()

	for aRows.Next() {
		var attachment models.Attachment
		if err := aRows.Scan(&attachment.URL, &attachment.Filename); err != nil {
			return fmt.Errorf("failed to scan expense attachment: %v", err)
		}
		expense.Attachments = append(expense.Attachments, attachment)
	}
	return aRows.Err()
}

func scanExpenseRow(scan func(dest ...interface{}) error, expense *models.Expense) error {
	return scan(
		&expense.ID, &expense.GroupID, &expense.Title, &expense.Description, &expense.Amount,
		&expense.Currency, &expense.Category, &expense.PaidBy.Email, &expense.PaidBy.Name,
		&expense.SplitType, &expense.Date, &expense.CreatedBy, &expense.CreatedAt, &expense.UpdatedAt,
	)
}

func insertSplitsAndAttachments(tx *sql.Tx, expense *models.Expense) error {
	for _, split := range expense.SplitDetails {
		_, err := tx.Exec(
			`INSERT INTO expense_splits (expense_id, email, name, amount, percentage, is_paid)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			expense.ID, split.Email, split.Name, split.Amount, split.Percentage, split.IsPaid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %v", err)
		}
	}

	for _, attachment := range expense.Attachments {
		_, err := tx.Exec(
			"INSERT INTO expense_attachments (expense_id, url, filename) VALUES ($1, $2, $3)",
			expense.ID, attachment.URL, attachment.Filename,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense attachment: %v", err)
		}
	}
	return nil
}
