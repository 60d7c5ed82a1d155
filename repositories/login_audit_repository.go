package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/brightspace-oauth/models"
	"github.com/google/uuid"
)

// LoginAuditRepository handles login audit persistence
type LoginAuditRepository interface {
	Create(entry *models.LoginAuditEntry) error
	ListByResourceOwner(provider, resourceOwnerID string, limit int) ([]models.LoginAuditEntry, error)
}

type sqliteLoginAuditRepository struct {
	db *sql.DB
}

// NewLoginAuditRepository creates a new login audit repository
func NewLoginAuditRepository(db *sql.DB) LoginAuditRepository {
	return &sqliteLoginAuditRepository{db: db}
}

// Create inserts a new login audit entry, filling in ID and Timestamp when unset
func (r *sqliteLoginAuditRepository) Create(entry *models.LoginAuditEntry) error {
	if errors := entry.Validate(); errors.HasErrors() {
		return fmt.Errorf("invalid login audit entry: %w", errors)
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO login_audit (id, timestamp, provider, resource_owner_id, unique_name, outcome, error, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		entry.ID,
		entry.Timestamp,
		entry.Provider,
		entry.ResourceOwnerID,
		entry.UniqueName,
		string(entry.Outcome),
		entry.Error,
		entry.IPAddress,
		entry.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to create login audit entry: %w", err)
	}

	return nil
}

// ListByResourceOwner returns the most recent entries for a user, newest first
func (r *sqliteLoginAuditRepository) ListByResourceOwner(provider, resourceOwnerID string, limit int) ([]models.LoginAuditEntry, error) {
	query := `
		SELECT id, timestamp, provider, resource_owner_id, unique_name, outcome, error, ip_address, user_agent
		FROM login_audit
		WHERE provider = ? AND resource_owner_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, provider, resourceOwnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query login audit: %w", err)
	}
	defer rows.Close()

	var entries []models.LoginAuditEntry
	for rows.Next() {
		var entry models.LoginAuditEntry
		var outcome string
		err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Provider,
			&entry.ResourceOwnerID,
			&entry.UniqueName,
			&outcome,
			&entry.Error,
			&entry.IPAddress,
			&entry.UserAgent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan login audit entry: %w", err)
		}
		entry.Outcome = models.LoginOutcome(outcome)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
