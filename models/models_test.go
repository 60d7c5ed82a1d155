package models

import "testing"

// Test LoginAuditEntry validation
func TestLoginAuditEntryValidation(t *testing.T) {
	// Test valid success entry
	valid := LoginAuditEntry{
		Provider:        "brightspace",
		ResourceOwnerID: "169",
		Outcome:         LoginSuccess,
	}
	if errors := valid.Validate(); errors.HasErrors() {
		t.Errorf("Expected no errors for valid entry, got: %v", errors)
	}

	// Failures may not know the resource owner
	failure := LoginAuditEntry{
		Provider: "brightspace",
		Outcome:  LoginFailure,
		Error:    "invalid_grant",
	}
	if errors := failure.Validate(); errors.HasErrors() {
		t.Errorf("Expected no errors for failure entry, got: %v", errors)
	}

	// Test invalid entry
	invalid := LoginAuditEntry{Outcome: "maybe"}
	errors := invalid.Validate()
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors for invalid entry, got: %v", errors)
	}

	// Success without an owner
	noOwner := LoginAuditEntry{Provider: "brightspace", Outcome: LoginSuccess}
	if errors := noOwner.Validate(); len(errors) != 1 {
		t.Errorf("Expected 1 error for success without owner, got: %v", errors)
	}
}

// Test ValidationErrors helpers
func TestValidationErrors(t *testing.T) {
	var none ValidationErrors
	if none.HasErrors() {
		t.Error("Expected empty ValidationErrors to have no errors")
	}

	errors := ValidationErrors{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}
	if !errors.HasErrors() {
		t.Error("Expected errors to be reported")
	}
	if got := errors.Error(); got != "first; second" {
		t.Errorf("Expected 'first; second', got %q", got)
	}
}
