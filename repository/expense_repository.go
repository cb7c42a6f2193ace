package repository

import (
	"database/sql"
	"fmt"

	"github.com/dailyudhari/udhari-backend/models"
)

// ExpenseRepository handles database operations for expenses and their splits
type ExpenseRepository struct {
	DB *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{
		DB: GetDB(),
	}
}

// GroupSplit is one expense-split row within a group, carrying who paid the
// underlying expense.
type GroupSplit struct {
	PayerID int64
	UserID  int64
	Amount  float64
}

// StoreExpense saves an expense and all of its splits in one transaction.
// Either everything is written or nothing is.
func (r *ExpenseRepository) StoreExpense(expense *models.Expense, splits []models.Split) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO expenses (description, amount, payer_id, group_id, split_type)
         VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		expense.Description, expense.Amount, expense.PayerID, expense.GroupID, expense.SplitType,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}

	for _, split := range splits {
		_, err = tx.Exec(
			"INSERT INTO expense_splits (expense_id, user_id, amount) VALUES ($1, $2, $3)",
			expense.ID, split.UserID, split.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %v", err)
		}
	}

	return tx.Commit()
}

// ListByUser retrieves the user's most recent expense entries: every expense
// the user has a split on, with their share and whether they paid or owe.
// Optionally scoped to one group.
func (r *ExpenseRepository) ListByUser(userID int64, groupID *int64) ([]models.ExpenseEntry, error) {
	query := `
        SELECT e.id, e.description, e.amount, e.payer_id, e.group_id, e.split_type, e.created_at,
               s.amount AS user_share,
               CASE WHEN e.payer_id = $1 THEN 'PAID' ELSE 'OWED' END AS user_role
        FROM expenses e
        JOIN expense_splits s ON e.id = s.expense_id
        WHERE s.user_id = $1`
	params := []interface{}{userID}

	if groupID != nil {
		query += " AND e.group_id = $2"
		params = append(params, *groupID)
	}
	query += " ORDER BY e.created_at DESC LIMIT 20"

	rows, err := r.DB.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var entries []models.ExpenseEntry
	for rows.Next() {
		var entry models.ExpenseEntry
		err := rows.Scan(&entry.ID, &entry.Description, &entry.Amount, &entry.PayerID,
			&entry.GroupID, &entry.SplitType, &entry.CreatedAt, &entry.UserShare, &entry.UserRole)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListByGroup retrieves all expenses recorded against a group, oldest first
func (r *ExpenseRepository) ListByGroup(groupID int64) ([]models.Expense, error) {
	rows, err := r.DB.Query(
		`SELECT id, description, amount, payer_id, group_id, split_type, created_at
         FROM expenses WHERE group_id = $1 ORDER BY created_at ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group expenses: %v", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PayerID, &e.GroupID,
			&e.SplitType, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GroupSplits retrieves every expense-split row in a group, joined with the
// expense payer. Input to the debt simplifier.
func (r *ExpenseRepository) GroupSplits(groupID int64) ([]GroupSplit, error) {
	rows, err := r.DB.Query(
		`SELECT e.payer_id, es.user_id, es.amount
         FROM expense_splits es
         JOIN expenses e ON es.expense_id = e.id
         WHERE e.group_id = $1`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group splits: %v", err)
	}
	defer rows.Close()

	var splits []GroupSplit
	for rows.Next() {
		var s GroupSplit
		if err := rows.Scan(&s.PayerID, &s.UserID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan group split: %v", err)
		}
		splits = append(splits, s)
	}
	return splits, rows.Err()
}

// SumOwedToUser sums split amounts owed by others on expenses this user paid,
// optionally scoped to one group.
func (r *ExpenseRepository) SumOwedToUser(userID int64, groupID *int64) (float64, error) {
	query := `
        SELECT COALESCE(SUM(s.amount), 0)
        FROM expense_splits s
        JOIN expenses e ON s.expense_id = e.id
        WHERE e.payer_id = $1 AND s.user_id != $1`
	params := []interface{}{userID}
	if groupID != nil {
		query += " AND e.group_id = $2"
		params = append(params, *groupID)
	}

	var total float64
	if err := r.DB.QueryRow(query, params...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum owed amounts: %v", err)
	}
	return total, nil
}

// SumOwedByUser sums this user's split amounts on expenses others paid,
// optionally scoped to one group.
func (r *ExpenseRepository) SumOwedByUser(userID int64, groupID *int64) (float64, error) {
	query := `
        SELECT COALESCE(SUM(s.amount), 0)
        FROM expense_splits s
        JOIN expenses e ON s.expense_id = e.id
        WHERE s.user_id = $1 AND e.payer_id != $1`
	params := []interface{}{userID}
	if groupID != nil {
		query += " AND e.group_id = $2"
		params = append(params, *groupID)
	}

	var total float64
	if err := r.DB.QueryRow(query, params...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum owed amounts: %v", err)
	}
	return total, nil
}
