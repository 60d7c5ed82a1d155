package brightspace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIdentityProvider is matched by every error describing a failed Brightspace call
var ErrIdentityProvider = errors.New("brightspace identity provider error")

// ConfigurationError is returned by New when required options are missing
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "brightspace: required options not defined: " + strings.Join(e.Missing, ", ")
}

// ProviderHTTPError is returned when Brightspace answers with an HTTP status of 400 or above
type ProviderHTTPError struct {
	StatusCode int
	Body       map[string]any
}

func (e *ProviderHTTPError) Error() string {
	if msg := bodyString(e.Body, "error_description"); msg != "" {
		return fmt.Sprintf("brightspace: http %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("brightspace: http %d", e.StatusCode)
}

func (e *ProviderHTTPError) Unwrap() error {
	return ErrIdentityProvider
}

// ProviderOAuthError is returned when a successful HTTP response carries an OAuth2
// error, e.g. invalid_grant
type ProviderOAuthError struct {
	StatusCode  int
	Body        map[string]any
	Code        string
	Description string
}

func newProviderOAuthError(status int, body map[string]any) *ProviderOAuthError {
	return &ProviderOAuthError{
		StatusCode:  status,
		Body:        body,
		Code:        bodyString(body, "error"),
		Description: bodyString(body, "error_description"),
	}
}

func (e *ProviderOAuthError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("brightspace: oauth error %s: %s", e.Code, e.Description)
	}
	return "brightspace: oauth error " + e.Code
}

func (e *ProviderOAuthError) Unwrap() error {
	return ErrIdentityProvider
}

func bodyString(body map[string]any, key string) string {
	v, ok := body[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
