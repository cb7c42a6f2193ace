package repository

import (
	"database/sql"
	"fmt"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/utils"
)

// GroupRepository handles database operations for groups and memberships
type GroupRepository struct {
	DB *sql.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{
		DB: GetDB(),
	}
}

// CreateGroup saves a group and enrolls the creator as its first member,
// atomically.
func (r *GroupRepository) CreateGroup(name string, createdBy int64) (*models.Group, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var group models.Group
	group.Name = name
	group.CreatedBy = createdBy
	err = tx.QueryRow(
		"INSERT INTO groups (name, created_by) VALUES ($1, $2) RETURNING id, created_at",
		name, createdBy,
	).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %v", err)
	}

	if err := r.addMember(tx, group.ID, createdBy); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return &group, nil
}

func (r *GroupRepository) addMember(q Querier, groupID, userID int64) error {
	// Every member joins with a settlement key already in place.
	_, err := q.Exec(
		`INSERT INTO user_groups (group_id, user_id, settlement_key)
         VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		groupID, userID, utils.GenerateMemberKey(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %v", err)
	}
	return nil
}

// AddMember enrolls a user into a group with a fresh settlement key.
// Adding an existing member is a no-op.
func (r *GroupRepository) AddMember(groupID, userID int64) error {
	return r.addMember(r.DB, groupID, userID)
}

// FindByID retrieves a group by ID; returns nil when absent
func (r *GroupRepository) FindByID(id int64) (*models.Group, error) {
	var group models.Group
	err := r.DB.QueryRow(
		"SELECT id, name, created_by, created_at FROM groups WHERE id = $1", id,
	).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %v", err)
	}
	return &group, nil
}

// FindByUserID retrieves all groups a user belongs to
func (r *GroupRepository) FindByUserID(userID int64) ([]models.Group, error) {
	rows, err := r.DB.Query(
		`SELECT g.id, g.name, g.created_by, g.created_at
         FROM groups g
         JOIN user_groups ug ON g.id = ug.group_id
         WHERE ug.user_id = $1
         ORDER BY g.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %v", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %v", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetMembers retrieves all members of a group with their settlement keys
func (r *GroupRepository) GetMembers(groupID int64) ([]models.GroupMember, error) {
	rows, err := r.DB.Query(
		`SELECT u.id, u.name, u.email, u.mobile_number, ug.settlement_key
         FROM users u
         JOIN user_groups ug ON u.id = ug.user_id
         WHERE ug.group_id = $1
         ORDER BY u.id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %v", err)
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.MobileNumber, &m.SettlementKey); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %v", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// RotateMemberKey overwrites the settlement key for a (group, user) pair with
// a fresh random value. Accepts a Querier so it composes into the settlement
// confirmation transaction.
func (r *GroupRepository) RotateMemberKey(q Querier, groupID, userID int64) (string, error) {
	if q == nil {
		q = r.DB
	}
	newKey := utils.GenerateMemberKey()
	result, err := q.Exec(
		"UPDATE user_groups SET settlement_key = $1 WHERE group_id = $2 AND user_id = $3",
		newKey, groupID, userID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to rotate member key: %v", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return "", fmt.Errorf("no membership row for user %d in group %d", userID, groupID)
	}
	return newKey, nil
}

// FindPayeeKeyGroup looks up a group where the payee's current settlement key
// equals the supplied key and the payer is also a member. Returns the matched
// group ID, or sql.ErrNoRows when no such membership exists.
func (r *GroupRepository) FindPayeeKeyGroup(q Querier, payeeID int64, key string, payerID int64) (int64, error) {
	if q == nil {
		q = r.DB
	}
	var groupID int64
	err := q.QueryRow(
		`SELECT ug.group_id FROM user_groups ug
         WHERE ug.user_id = $1
           AND ug.settlement_key = $2
           AND ug.group_id IN (SELECT group_id FROM user_groups WHERE user_id = $3)
         LIMIT 1`,
		payeeID, key, payerID,
	).Scan(&groupID)
	if err != nil {
		return 0, err
	}
	return groupID, nil
}

// IsMember reports whether the user belongs to the group
func (r *GroupRepository) IsMember(groupID, userID int64) (bool, error) {
	var count int
	err := r.DB.QueryRow(
		"SELECT COUNT(*) FROM user_groups WHERE group_id = $1 AND user_id = $2",
		groupID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %v", err)
	}
	return count > 0, nil
}

// CreatePendingInvitation records an invitation for a mobile number that has
// no account yet; fulfilled when that number registers.
func (r *GroupRepository) CreatePendingInvitation(groupID int64, mobileNumber string, invitedBy int64) error {
	_, err := r.DB.Exec(
		`INSERT INTO pending_invitations (group_id, mobile_number, invited_by)
         VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		groupID, mobileNumber, invitedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert pending invitation: %v", err)
	}
	return nil
}

// GetPendingInvitations returns the group IDs a mobile number has been invited to
func (r *GroupRepository) GetPendingInvitations(mobileNumber string) ([]int64, error) {
	rows, err := r.DB.Query(
		"SELECT group_id FROM pending_invitations WHERE mobile_number = $1",
		mobileNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending invitations: %v", err)
	}
	defer rows.Close()

	var groupIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pending invitation: %v", err)
		}
		groupIDs = append(groupIDs, id)
	}
	return groupIDs, rows.Err()
}

// DeletePendingInvitations removes all invitations for a mobile number
func (r *GroupRepository) DeletePendingInvitations(mobileNumber string) error {
	_, err := r.DB.Exec("DELETE FROM pending_invitations WHERE mobile_number = $1", mobileNumber)
	if err != nil {
		return fmt.Errorf("failed to delete pending invitations: %v", err)
	}
	return nil
}
