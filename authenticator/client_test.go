package authenticator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"

	"github.com/blogem/brightspace-oauth/authenticator"
	"github.com/blogem/brightspace-oauth/authenticator/brightspace"
)

// rewriteTransport sends every request to the test server, keeping the path
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = t.target.Scheme
	clone.URL.Host = t.target.Host
	clone.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ClientTestSuite runs the client against a fake Brightspace instance
type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	provider *brightspace.Provider
	client   *authenticator.Client

	tokenStatus  int
	tokenBody    map[string]any
	whoamiStatus int
	whoamiBody   map[string]any

	mu            sync.Mutex
	lastBasicUser string
	lastBasicPass string
	lastForm      url.Values
	lastBearer    string
}

func (suite *ClientTestSuite) SetupTest() {
	suite.tokenStatus = http.StatusOK
	suite.tokenBody = map[string]any{
		"access_token": "access-123",
		"token_type":   "Bearer",
		"expires_in":   3600,
	}
	suite.whoamiStatus = http.StatusOK
	suite.whoamiBody = map[string]any{
		"Identifier":        "169",
		"FirstName":         "Jo",
		"LastName":          "Smith",
		"UniqueName":        "jsmith",
		"ProfileIdentifier": "m6aJcPqzUx",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/core/connect/token", func(w http.ResponseWriter, r *http.Request) {
		suite.mu.Lock()
		defer suite.mu.Unlock()
		suite.lastBasicUser, suite.lastBasicPass, _ = r.BasicAuth()
		_ = r.ParseForm()
		suite.lastForm = r.PostForm
		writeJSON(w, suite.tokenStatus, suite.tokenBody)
	})
	mux.HandleFunc("/d2l/api/lp/1.28/users/whoami", func(w http.ResponseWriter, r *http.Request) {
		suite.mu.Lock()
		defer suite.mu.Unlock()
		suite.lastBearer = r.Header.Get("Authorization")
		writeJSON(w, suite.whoamiStatus, suite.whoamiBody)
	})
	suite.server = httptest.NewServer(mux)

	target, err := url.Parse(suite.server.URL)
	suite.Require().NoError(err)

	suite.provider, err = brightspace.New(brightspace.Options{
		Domain:     suite.server.URL,
		APIVersion: map[string]string{"lp": "1.28"},
	})
	suite.Require().NoError(err)

	suite.client, err = authenticator.NewClient(suite.provider, authenticator.ClientConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/callback",
		HTTPClient:   &http.Client{Transport: rewriteTransport{target: target}},
	})
	suite.Require().NoError(err)
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ClientTestSuite) TestAuthCodeURL_DefaultScopes() {
	u, err := url.Parse(suite.client.AuthCodeURL("state-1"))
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "auth.brightspace.com", u.Host)
	assert.Equal(suite.T(), "/oauth2/auth", u.Path)

	q := u.Query()
	assert.Equal(suite.T(), "code", q.Get("response_type"))
	assert.Equal(suite.T(), "client-id", q.Get("client_id"))
	assert.Equal(suite.T(), "http://localhost:8080/callback", q.Get("redirect_uri"))
	assert.Equal(suite.T(), "state-1", q.Get("state"))
	assert.Equal(suite.T(), "core:*:*", q.Get("scope"))
}

func (suite *ClientTestSuite) TestAuthCodeURL_ExtraScopes() {
	u, err := url.Parse(suite.client.AuthCodeURL("state-1", "extra:scope", "core:*:*"))
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "core:*:* extra:scope", u.Query().Get("scope"))
}

func (suite *ClientTestSuite) TestExchange_UsesBasicAuth() {
	token, err := suite.client.Exchange(context.Background(), "code-1")

	suite.Require().NoError(err)
	suite.mu.Lock()
	defer suite.mu.Unlock()
	assert.Equal(suite.T(), "access-123", token.AccessToken)
	assert.Equal(suite.T(), "client-id", suite.lastBasicUser)
	assert.Equal(suite.T(), "client-secret", suite.lastBasicPass)
	assert.Equal(suite.T(), "authorization_code", suite.lastForm.Get("grant_type"))
	assert.Equal(suite.T(), "code-1", suite.lastForm.Get("code"))
	assert.Empty(suite.T(), suite.lastForm.Get("client_secret"))
}

func (suite *ClientTestSuite) TestExchange_OAuthErrorOnSuccessStatus() {
	suite.tokenBody = map[string]any{"error": "invalid_grant", "error_description": "code expired"}

	token, err := suite.client.Exchange(context.Background(), "stale")

	assert.Nil(suite.T(), token)
	var oauthErr *brightspace.ProviderOAuthError
	suite.Require().ErrorAs(err, &oauthErr)
	assert.Equal(suite.T(), "invalid_grant", oauthErr.Code)
	assert.Equal(suite.T(), http.StatusOK, oauthErr.StatusCode)
}

func (suite *ClientTestSuite) TestExchange_HTTPError() {
	suite.tokenStatus = http.StatusBadRequest
	suite.tokenBody = map[string]any{"error": "invalid_client"}

	_, err := suite.client.Exchange(context.Background(), "code-1")

	var httpErr *brightspace.ProviderHTTPError
	suite.Require().ErrorAs(err, &httpErr)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(suite.T(), "invalid_client", httpErr.Body["error"])
}

func (suite *ClientTestSuite) TestFetchResourceOwner() {
	owner, err := suite.client.FetchResourceOwner(context.Background(), &oauth2.Token{AccessToken: "access-123"})

	suite.Require().NoError(err)
	suite.mu.Lock()
	assert.Equal(suite.T(), "Bearer access-123", suite.lastBearer)
	suite.mu.Unlock()

	id, ok := owner.ID()
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "169", id)
	assert.Equal(suite.T(), "Jo Smith", owner.DisplayName())
	assert.Equal(suite.T(), "jsmith", owner.ToRaw()["UniqueName"])
}

func (suite *ClientTestSuite) TestFetchResourceOwner_HTTPError() {
	suite.whoamiStatus = http.StatusUnauthorized
	suite.whoamiBody = map[string]any{}

	owner, err := suite.client.FetchResourceOwner(context.Background(), &oauth2.Token{AccessToken: "expired"})

	assert.Nil(suite.T(), owner)
	var httpErr *brightspace.ProviderHTTPError
	suite.Require().ErrorAs(err, &httpErr)
	assert.Equal(suite.T(), http.StatusUnauthorized, httpErr.StatusCode)
}

func (suite *ClientTestSuite) TestFetchResourceOwner_RequiresToken() {
	_, err := suite.client.FetchResourceOwner(context.Background(), nil)
	assert.Error(suite.T(), err)

	_, err = suite.client.FetchResourceOwner(context.Background(), &oauth2.Token{})
	assert.Error(suite.T(), err)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestNewClient_ReportsMissingSettings(t *testing.T) {
	p, err := brightspace.New(brightspace.Options{Domain: "example.com", APIVersion: map[string]string{"lp": "1.28"}})
	require.NoError(t, err)

	client, err := authenticator.NewClient(p, authenticator.ClientConfig{})

	assert.Nil(t, client)
	var cfgErr *authenticator.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"clientId", "redirectUri"}, cfgErr.Missing)

	_, err = authenticator.NewClient(nil, authenticator.ClientConfig{ClientID: "a", RedirectURL: "b"})
	assert.Error(t, err)
}

func TestClient_RateLimit(t *testing.T) {
	p, err := brightspace.New(brightspace.Options{Domain: "example.com", APIVersion: map[string]string{"lp": "1.28"}})
	require.NoError(t, err)

	client, err := authenticator.NewClient(p, authenticator.ClientConfig{
		ClientID:          "a",
		RedirectURL:       "http://localhost/callback",
		RequestsPerSecond: 0.001,
		Burst:             1,
		HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			rec := httptest.NewRecorder()
			writeJSON(rec, http.StatusOK, map[string]any{"Identifier": "1"})
			return rec.Result(), nil
		})},
	})
	require.NoError(t, err)

	token := &oauth2.Token{AccessToken: "a"}
	_, err = client.FetchResourceOwner(context.Background(), token)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.FetchResourceOwner(ctx, token)
	assert.Error(t, err)
}

func TestExchange_KeepsHTTPClientSettings(t *testing.T) {
	p, err := brightspace.New(brightspace.Options{Domain: "example.com", APIVersion: map[string]string{"lp": "1.28"}})
	require.NoError(t, err)

	var mu sync.Mutex
	var paths []string
	client, err := authenticator.NewClient(p, authenticator.ClientConfig{
		ClientID:    "a",
		RedirectURL: "http://localhost/callback",
		HTTPClient: &http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				mu.Lock()
				paths = append(paths, req.URL.Path)
				mu.Unlock()

				rec := httptest.NewRecorder()
				rec.Header().Set("Location", "https://auth.brightspace.com/elsewhere")
				rec.WriteHeader(http.StatusFound)
				return rec.Result(), nil
			}),
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
	require.NoError(t, err)

	_, err = client.Exchange(context.Background(), "code")

	assert.Error(t, err)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/core/connect/token"}, paths)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
