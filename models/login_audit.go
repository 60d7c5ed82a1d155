package models

import "time"

// LoginOutcome is the result of a login attempt
type LoginOutcome string

const (
	LoginSuccess LoginOutcome = "success"
	LoginFailure LoginOutcome = "failure"
)

// LoginAuditEntry records a single completed login attempt
type LoginAuditEntry struct {
	ID              string       `json:"id"`
	Timestamp       time.Time    `json:"timestamp"`
	Provider        string       `json:"provider"`
	ResourceOwnerID string       `json:"resource_owner_id,omitempty"`
	UniqueName      string       `json:"unique_name,omitempty"`
	Outcome         LoginOutcome `json:"outcome"`
	Error           string       `json:"error,omitempty"`
	IPAddress       string       `json:"ip_address,omitempty"`
	UserAgent       string       `json:"user_agent,omitempty"`
}

// Validate checks the entry before it is stored
func (e *LoginAuditEntry) Validate() ValidationErrors {
	var errors ValidationErrors

	if e.Provider == "" {
		errors = append(errors, ValidationError{Field: "provider", Message: "Provider is required"})
	}

	switch e.Outcome {
	case LoginSuccess:
		if e.ResourceOwnerID == "" {
			errors = append(errors, ValidationError{Field: "resource_owner_id", Message: "Successful logins need a resource owner"})
		}
	case LoginFailure:
	default:
		errors = append(errors, ValidationError{Field: "outcome", Message: "Outcome must be success or failure"})
	}

	return errors
}
