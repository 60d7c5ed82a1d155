package authenticator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client runs the authorization code flow for a single identity provider
type Client struct {
	provider   IdentityProvider
	config     oauth2.Config
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient creates a new OAuth client for the given provider
func NewClient(provider IdentityProvider, cfg ClientConfig) (*Client, error) {
	if provider == nil {
		return nil, errors.New("identity provider is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conf := oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   provider.AuthorizationURL(),
			TokenURL:  provider.TokenURL(nil),
			AuthStyle: provider.AuthStyle(),
		},
		Scopes: MergeScopes(provider.DefaultScopes(), cfg.Scopes),
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		provider:   provider,
		config:     conf,
		limiter:    limiter,
		httpClient: httpClient,
	}, nil
}

// Provider returns the identity provider the client was built for
func (c *Client) Provider() IdentityProvider {
	return c.provider
}

// AuthCodeURL returns the URL the user is redirected to. Extra scopes are requested
// in addition to the configured ones.
func (c *Client) AuthCodeURL(state string, scopes ...string) string {
	requested := MergeScopes(c.config.Scopes, scopes)
	return c.config.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("scope", JoinScopes(c.provider.ScopeSeparator(), requested...)),
	)
}

// Exchange trades an authorization code for an access token. The token endpoint's
// response is classified by the provider first, so provider errors win over the
// generic ones raised by the oauth2 package.
func (c *Client) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	rec := &responseRecorder{base: c.httpClient.Transport}
	recordingClient := *c.httpClient
	recordingClient.Transport = rec
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &recordingClient)

	token, err := c.config.Exchange(ctx, code, opts...)
	if rec.recorded {
		if checkErr := c.provider.CheckResponse(rec.status, rec.body); checkErr != nil {
			return nil, checkErr
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s token exchange failed: %w", c.provider.Name(), err)
	}
	return token, nil
}

// FetchResourceOwner calls the provider's resource owner endpoint with the token and
// maps the response
func (c *Client) FetchResourceOwner(ctx context.Context, token *oauth2.Token) (ResourceOwner, error) {
	if token == nil || token.AccessToken == "" {
		return nil, errors.New("access token is required")
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.provider.ResourceOwnerDetailsURL(token), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource owner request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// A static source keeps the client from refreshing behind the caller's back.
	authedClient := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, c.httpClient),
		oauth2.StaticTokenSource(token),
	)
	resp, err := authedClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s resource owner request failed: %w", c.provider.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource owner response: %w", err)
	}

	body, decodeErr := decodeBody(resp.Header.Get("Content-Type"), raw)
	if err := c.provider.CheckResponse(resp.StatusCode, body); err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode resource owner response: %w", decodeErr)
	}

	return c.provider.CreateResourceOwner(body, token), nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// JoinScopes joins scopes with the provider's separator, skipping blanks
func JoinScopes(separator string, scopes ...string) string {
	parts := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, separator)
}

// MergeScopes appends extra to base, dropping blanks and duplicates while keeping order
func MergeScopes(base []string, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}

// responseRecorder keeps a decoded copy of the last response passing through it
type responseRecorder struct {
	base http.RoundTripper

	recorded bool
	status   int
	body     map[string]any
}

func (r *responseRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	base := r.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	r.recorded = true
	r.status = resp.StatusCode
	r.body, _ = decodeBody(resp.Header.Get("Content-Type"), raw)
	return resp, nil
}

// decodeBody turns a JSON or form encoded response into a map. The map is nil when
// the body cannot be decoded.
func decodeBody(contentType string, raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "text/plain" {
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, err
		}
		body := make(map[string]any, len(values))
		for k := range values {
			body[k] = values.Get(k)
		}
		return body, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
