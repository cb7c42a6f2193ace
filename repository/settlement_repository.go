package repository

import (
	"database/sql"
	"fmt"

	"github.com/dailyudhari/udhari-backend/models"
)

// SettlementRepository handles database operations for settlements
type SettlementRepository struct {
	DB *sql.DB
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{
		DB: GetDB(),
	}
}

// GroupSettlement is one settled settlement between two members of a group
type GroupSettlement struct {
	PayerID int64
	PayeeID int64
	Amount  float64
}

// Create inserts a settlement in PENDING status and returns its ID
func (r *SettlementRepository) Create(q Querier, payerID, payeeID int64, amount float64) (int64, error) {
	if q == nil {
		q = r.DB
	}
	var id int64
	err := q.QueryRow(
		`INSERT INTO settlements (payer_id, payee_id, amount, status)
         VALUES ($1, $2, $3, 'PENDING') RETURNING id`,
		payerID, payeeID, amount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert settlement: %v", err)
	}
	return id, nil
}

// SetKey stores the generated key and advances the status in one update
func (r *SettlementRepository) SetKey(q Querier, id int64, key, status string) error {
	if q == nil {
		q = r.DB
	}
	_, err := q.Exec(
		"UPDATE settlements SET settlement_key = $1, status = $2 WHERE id = $3",
		key, status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set settlement key: %v", err)
	}
	return nil
}

// GetForUpdate retrieves a settlement and row-locks it for the duration of
// the caller's transaction. Returns nil when absent.
func (r *SettlementRepository) GetForUpdate(q Querier, id int64) (*models.Settlement, error) {
	if q == nil {
		q = r.DB
	}
	var s models.Settlement
	var key sql.NullString
	err := q.QueryRow(
		`SELECT id, payer_id, payee_id, amount, status, settlement_key, created_at
         FROM settlements WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&s.ID, &s.PayerID, &s.PayeeID, &s.Amount, &s.Status, &key, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %v", err)
	}
	if key.Valid {
		s.SettlementKey = key.String
	}
	return &s, nil
}

// UpdateStatus sets the settlement status
func (r *SettlementRepository) UpdateStatus(q Querier, id int64, status string) error {
	if q == nil {
		q = r.DB
	}
	_, err := q.Exec("UPDATE settlements SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update settlement status: %v", err)
	}
	return nil
}

// SumSettledReceived sums settled settlements paid to this user
func (r *SettlementRepository) SumSettledReceived(userID int64) (float64, error) {
	var total float64
	err := r.DB.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM settlements WHERE payee_id = $1 AND status = 'SETTLED'",
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum received settlements: %v", err)
	}
	return total, nil
}

// SumSettledPaid sums settled settlements this user paid
func (r *SettlementRepository) SumSettledPaid(userID int64) (float64, error) {
	var total float64
	err := r.DB.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM settlements WHERE payer_id = $1 AND status = 'SETTLED'",
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum paid settlements: %v", err)
	}
	return total, nil
}

// SettledBetweenMembers retrieves settled settlements where both parties are
// members of the group. Input to the debt simplifier.
func (r *SettlementRepository) SettledBetweenMembers(groupID int64) ([]GroupSettlement, error) {
	rows, err := r.DB.Query(
		`SELECT s.payer_id, s.payee_id, s.amount
         FROM settlements s
         WHERE s.status = 'SETTLED'
           AND s.payer_id IN (SELECT user_id FROM user_groups WHERE group_id = $1)
           AND s.payee_id IN (SELECT user_id FROM user_groups WHERE group_id = $1)`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group settlements: %v", err)
	}
	defer rows.Close()

	var settlements []GroupSettlement
	for rows.Next() {
		var s GroupSettlement
		if err := rows.Scan(&s.PayerID, &s.PayeeID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %v", err)
		}
		settlements = append(settlements, s)
	}
	return settlements, rows.Err()
}
