package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/splitmate-app/splitmate-backend/models"
)

// GroupRepository handles database operations for groups
type GroupRepository struct {
	DB *sql.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{
		DB: GetDB(),
	}
}

// Insert saves a group and its member list to the database
func (r *GroupRepository) Insert(group *models.Group) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO groups
         (id, name, description, thumbnail, admin_email, is_settled, settled_at, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		group.ID, group.Name, group.Description, group.Thumbnail, group.AdminEmail,
		group.IsSettled, group.SettledAt, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %v", err)
	}

	for _, email := range group.MembersEmail {
		_, err = tx.Exec(
			"INSERT INTO group_members (group_id, email) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			group.ID, email,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %v", err)
		}
	}

	return tx.Commit()
}

// GetByID retrieves a group by its ID; returns (nil, nil) when absent
func (r *GroupRepository) GetByID(groupID string) (*models.Group, error) {
	group, err := r.scanGroup(r.DB.QueryRow(
		`SELECT id, name, description, thumbnail, admin_email, is_settled, settled_at, created_at, updated_at
         FROM groups WHERE id = $1`,
		groupID,
	))
	if err != nil || group == nil {
		return nil, err
	}

	if err := r.loadMembers(group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetByMember retrieves all groups the given email belongs to, admin included
func (r *GroupRepository) GetByMember(email string) ([]*models.Group, error) {
	rows, err := r.DB.Query(
		`SELECT DISTINCT g.id, g.name, g.description, g.thumbnail, g.admin_email,
                g.is_settled, g.settled_at, g.created_at, g.updated_at
         FROM groups g
         LEFT JOIN group_members m ON m.group_id = g.id
         WHERE m.email = $1 OR g.admin_email = $1
         ORDER BY g.created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %v", err)
	}
	defer rows.Close()

	return r.collectGroups(rows)
}

// GetBySettled retrieves groups filtered by settlement state
func (r *GroupRepository) GetBySettled(settled bool) ([]*models.Group, error) {
	rows, err := r.DB.Query(
		`SELECT id, name, description, thumbnail, admin_email, is_settled, settled_at, created_at, updated_at
         FROM groups WHERE is_settled = $1 ORDER BY created_at DESC`,
		settled,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %v", err)
	}
	defer rows.Close()

	return r.collectGroups(rows)
}

// Update saves group metadata changes; returns false when the group is absent
func (r *GroupRepository) Update(group *models.Group) (bool, error) {
	result, err := r.DB.Exec(
		`UPDATE groups SET name = $2, description = $3, thumbnail = $4, updated_at = $5 WHERE id = $1`,
		group.ID, group.Name, group.Description, group.Thumbnail, group.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update group: %v", err)
	}
	return rowsAffected(result)
}

// AddMembers adds emails to the group member list (set union)
func (r *GroupRepository) AddMembers(groupID string, emails []string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, email := range emails {
		_, err = tx.Exec(
			"INSERT INTO group_members (group_id, email) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			groupID, email,
		)
		if err != nil {
			return fmt.Errorf("failed to add group member: %v", err)
		}
	}

	if _, err = tx.Exec("UPDATE groups SET updated_at = $2 WHERE id = $1", groupID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to stamp group: %v", err)
	}

	return tx.Commit()
}

// RemoveMembers removes emails from the group member list (set difference).
// Historical expense split lines referencing removed members are untouched.
func (r *GroupRepository) RemoveMembers(groupID string, emails []string) error {
	_, err := r.DB.Exec(
		"DELETE FROM group_members WHERE group_id = $1 AND email = ANY($2)",
		groupID, pq.Array(emails),
	)
	if err != nil {
		return fmt.Errorf("failed to remove group members: %v", err)
	}
	return nil
}

// MarkSettled sets the group's settled flag and timestamp
func (r *GroupRepository) MarkSettled(groupID string, settledAt time.Time) (bool, error) {
	result, err := r.DB.Exec(
		"UPDATE groups SET is_settled = TRUE, settled_at = $2, updated_at = $2 WHERE id = $1",
		groupID, settledAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to settle group: %v", err)
	}
	return rowsAffected(result)
}

// Delete permanently removes a group; expenses cascade
func (r *GroupRepository) Delete(groupID string) (bool, error) {
	result, err := r.DB.Exec("DELETE FROM groups WHERE id = $1", groupID)
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %v", err)
	}
	return rowsAffected(result)
}

func (r *GroupRepository) scanGroup(row *sql.Row) (*models.Group, error) {
	var group models.Group
	var settledAt sql.NullTime

	err := row.Scan(
		&group.ID, &group.Name, &group.Description, &group.Thumbnail, &group.AdminEmail,
		&group.IsSettled, &settledAt, &group.CreatedAt, &group.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan group: %v", err)
	}

	if settledAt.Valid {
		group.SettledAt = &settledAt.Time
	}
	return &group, nil
}

func (r *GroupRepository) collectGroups(rows *sql.Rows) ([]*models.Group, error) {
	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		var settledAt sql.NullTime

		err := rows.Scan(
			&group.ID, &group.Name, &group.Description, &group.Thumbnail, &group.AdminEmail,
			&group.IsSettled, &settledAt, &group.CreatedAt, &group.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %v", err)
		}
		if settledAt.Valid {
			group.SettledAt = &settledAt.Time
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read groups: %v", err)
	}

	for _, group := range groups {
		if err := r.loadMembers(group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *GroupRepository) loadMembers(group *models.Group) error {
	rows, err := r.DB.Query("SELECT email FROM group_members WHERE group_id = $1", group.ID)
	if err != nil {
		return fmt.Errorf("failed to get group members: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return fmt.Errorf("failed to scan group member: %v", err)
		}
		group.MembersEmail = append(group.MembersEmail, email)
	}
	return rows.Err()
}

func rowsAffected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %v", err)
	}
	return n > 0, nil
}
