// Package brightspace adapts the D2L Brightspace identity provider to the
// authenticator client.
//
// Brightspace uses fixed authorization and token endpoints shared by every
// tenant, while the whoami API lives on the tenant's own domain and is versioned
// per API family.
package brightspace

import (
	"net/url"

	"github.com/blogem/brightspace-oauth/authenticator"
	"golang.org/x/oauth2"
)

const (
	// ProviderName identifies Brightspace among configured providers
	ProviderName = "brightspace"

	AuthorizationEndpoint = "https://auth.brightspace.com/oauth2/auth"
	TokenEndpoint         = "https://auth.brightspace.com/core/connect/token"
	DefaultScope          = "core:*:*"

	scopeSeparator = " "
	apiPath        = "/d2l/api"
	whoAmIPath     = "/users/whoami"
)

// Provider implements authenticator.IdentityProvider for one Brightspace instance.
// It is immutable after New and safe for concurrent use.
type Provider struct {
	domain      string
	apiVersion  map[string]string
	passthrough map[string]any
}

var _ authenticator.IdentityProvider = (*Provider)(nil)

// New creates a provider from the given options
func New(opts Options) (*Provider, error) {
	if missing := opts.missing(); len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	versions := make(map[string]string, len(opts.APIVersion))
	for k, v := range opts.APIVersion {
		versions[k] = v
	}
	passthrough := make(map[string]any, len(opts.Passthrough))
	for k, v := range opts.Passthrough {
		passthrough[k] = v
	}

	return &Provider{
		domain:      normalizeDomain(opts.Domain),
		apiVersion:  versions,
		passthrough: passthrough,
	}, nil
}

// NewFromMap creates a provider from a loosely typed option map, as read from a
// config file. See OptionsFromMap.
func NewFromMap(options map[string]any) (*Provider, error) {
	return New(OptionsFromMap(options))
}

func (p *Provider) Name() string {
	return ProviderName
}

// Domain returns the instance base URL, including the scheme
func (p *Provider) Domain() string {
	return p.domain
}

func (p *Provider) APIPath() string {
	return apiPath
}

// APIVersion returns the configured version of an API family
func (p *Provider) APIVersion(family string) (string, bool) {
	if family == versionKeyLP {
		v := lpVersion(p.apiVersion)
		return v, v != ""
	}
	v, ok := p.apiVersion[family]
	return v, ok
}

// Passthrough returns a copy of the options that belong to the OAuth client
func (p *Provider) Passthrough() map[string]any {
	out := make(map[string]any, len(p.passthrough))
	for k, v := range p.passthrough {
		out[k] = v
	}
	return out
}

func (p *Provider) AuthorizationURL() string {
	return AuthorizationEndpoint
}

// TokenURL ignores params: every tenant shares the same token endpoint
func (p *Provider) TokenURL(params url.Values) string {
	return TokenEndpoint
}

// DefaultScopes is the minimum needed to call the whoami API
func (p *Provider) DefaultScopes() []string {
	return []string{DefaultScope}
}

func (p *Provider) ScopeSeparator() string {
	return scopeSeparator
}

// AuthStyle sends client credentials with HTTP Basic auth
func (p *Provider) AuthStyle() oauth2.AuthStyle {
	return oauth2.AuthStyleInHeader
}

// ResourceOwnerDetailsURL returns the instance's whoami URL
func (p *Provider) ResourceOwnerDetailsURL(token *oauth2.Token) string {
	return p.domain + apiPath + "/lp/" + lpVersion(p.apiVersion) + whoAmIPath
}

// CreateResourceOwner maps a whoami response
func (p *Provider) CreateResourceOwner(body map[string]any, token *oauth2.Token) authenticator.ResourceOwner {
	return NewResourceOwner(body)
}

// CheckResponse classifies a token or whoami response. The status is checked before
// the body, so an error status always yields a ProviderHTTPError.
//
// See https://docs.valence.desire2learn.com/basic/apicall.html#disposition-and-error-handling
func (p *Provider) CheckResponse(status int, body map[string]any) error {
	if status >= 400 {
		return &ProviderHTTPError{StatusCode: status, Body: body}
	}
	if v, ok := body["error"]; ok && v != nil {
		return newProviderOAuthError(status, body)
	}
	return nil
}
