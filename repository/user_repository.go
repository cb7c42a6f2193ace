package repository

import (
	"database/sql"
	"fmt"

	"github.com/dailyudhari/udhari-backend/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		DB: GetDB(),
	}
}

// CreateUser saves a new user and fills in the generated ID
func (r *UserRepository) CreateUser(user *models.User) error {
	err := r.DB.QueryRow(
		`INSERT INTO users (name, email, mobile_number, password_hash)
         VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		user.Name, user.Email, user.MobileNumber, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.MobileNumber,
		&user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}
	return &user, nil
}

// FindByID retrieves a user by ID; returns nil when absent
func (r *UserRepository) FindByID(id int64) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(
		"SELECT id, name, email, mobile_number, password_hash, created_at FROM users WHERE id = $1", id))
}

// FindByEmail retrieves a user by email; returns nil when absent
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(
		"SELECT id, name, email, mobile_number, password_hash, created_at FROM users WHERE email = $1", email))
}

// FindByMobile retrieves a user by mobile number; returns nil when absent
func (r *UserRepository) FindByMobile(mobile string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(
		"SELECT id, name, email, mobile_number, password_hash, created_at FROM users WHERE mobile_number = $1", mobile))
}

// GetFriends returns every distinct co-member across the user's groups with
// the net balance against each: what they owe me via expense splits, minus
// what I owe them, adjusted by settled settlements in both directions.
func (r *UserRepository) GetFriends(userID int64) ([]models.FriendBalance, error) {
	rows, err := r.DB.Query(`
        SELECT
            u.id, u.name, u.email, u.mobile_number,
            COALESCE(they_owe.total, 0) - COALESCE(i_owe.total, 0)
            - COALESCE(they_settled.total, 0) + COALESCE(i_settled.total, 0) AS balance
        FROM users u
        JOIN user_groups ug ON u.id = ug.user_id
        LEFT JOIN LATERAL (
            SELECT SUM(es.amount) AS total
            FROM expense_splits es
            JOIN expenses e ON es.expense_id = e.id
            WHERE e.payer_id = $1 AND es.user_id = u.id
        ) they_owe ON true
        LEFT JOIN LATERAL (
            SELECT SUM(es.amount) AS total
            FROM expense_splits es
            JOIN expenses e ON es.expense_id = e.id
            WHERE e.payer_id = u.id AND es.user_id = $1
        ) i_owe ON true
        LEFT JOIN LATERAL (
            SELECT SUM(s.amount) AS total
            FROM settlements s
            WHERE s.payer_id = u.id AND s.payee_id = $1 AND s.status = 'SETTLED'
        ) they_settled ON true
        LEFT JOIN LATERAL (
            SELECT SUM(s.amount) AS total
            FROM settlements s
            WHERE s.payer_id = $1 AND s.payee_id = u.id AND s.status = 'SETTLED'
        ) i_settled ON true
        WHERE ug.group_id IN (SELECT group_id FROM user_groups WHERE user_id = $1)
          AND u.id != $1
        GROUP BY u.id, u.name, u.email, u.mobile_number,
                 they_owe.total, i_owe.total, they_settled.total, i_settled.total
        ORDER BY u.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %v", err)
	}
	defer rows.Close()

	var friends []models.FriendBalance
	for rows.Next() {
		var f models.FriendBalance
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.MobileNumber, &f.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %v", err)
		}
		friends = append(friends, f)
	}

	return friends, rows.Err()
}
