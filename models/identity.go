package models

// Identity is the signed-in user kept in the session
type Identity struct {
	Provider        string            `json:"provider"`
	ResourceOwnerID string            `json:"resource_owner_id"`
	DisplayName     string            `json:"display_name"`
	RecentLogins    []LoginAuditEntry `json:"recent_logins,omitempty"`
}
