package authenticator

import (
	"net/url"

	"golang.org/x/oauth2"
)

// ResourceOwner is the authenticated end user as reported by an identity provider
type ResourceOwner interface {
	// ID returns the provider's identifier for the user, if the caller may see it.
	ID() (string, bool)
	DisplayName() string
	// ToRaw returns the provider response the owner was built from.
	ToRaw() map[string]any
}

// IdentityProvider holds everything provider specific about an authorization code flow.
// The Client drives the flow and asks the provider for endpoints, scopes and how to
// read the responses it gets back.
type IdentityProvider interface {
	Name() string
	AuthorizationURL() string
	TokenURL(params url.Values) string
	DefaultScopes() []string
	ScopeSeparator() string
	// AuthStyle selects how client credentials are sent to the token endpoint.
	AuthStyle() oauth2.AuthStyle
	ResourceOwnerDetailsURL(token *oauth2.Token) string
	CreateResourceOwner(body map[string]any, token *oauth2.Token) ResourceOwner
	// CheckResponse returns an error when status or body describe a failed call.
	CheckResponse(status int, body map[string]any) error
}
