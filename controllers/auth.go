package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/blogem/brightspace-oauth/authenticator/brightspace"
	"github.com/blogem/brightspace-oauth/middleware"
	"github.com/blogem/brightspace-oauth/models"
	"github.com/blogem/brightspace-oauth/services"
	"github.com/blogem/brightspace-oauth/userctx"
)

const recentLoginLimit = 5

type AuthController struct {
	login  services.LoginService
	scopes []string
}

// NewAuthController creates an auth controller that requests scopes on top of the
// provider defaults
func NewAuthController(login services.LoginService, scopes []string) *AuthController {
	return &AuthController{
		login:  login,
		scopes: scopes,
	}
}

// Login initiates the authentication process
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	// Generate random state
	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set(middleware.SessionState, state)

	// Redirect to Brightspace login page
	http.Redirect(w, r, ac.login.AuthCodeURL(state, ac.scopes...), http.StatusTemporaryRedirect)
}

// Callback handles the callback from Brightspace
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	query := r.URL.Query()

	// The user denied access or Brightspace rejected the request
	if errParam := query.Get("error"); errParam != "" {
		log.Printf("Authorization failed: %s %s", errParam, query.Get("error_description"))
		http.Error(w, "Authorization was not granted", http.StatusBadRequest)
		return
	}

	// Verify state
	storedState, _ := sess.Get(middleware.SessionState).(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}
	if query.Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}
	sess.Delete(middleware.SessionState)

	identity, err := ac.login.CompleteLogin(r.Context(), services.LoginRequest{
		Code:      query.Get("code"),
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		log.Printf("Login failed: %v", err)
		status, message := loginError(err)
		http.Error(w, message, status)
		return
	}

	// Store the user session
	sess.Set(middleware.SessionUserID, identity.ResourceOwnerID)
	sess.Set(middleware.SessionDisplayName, identity.DisplayName)

	redirectTo := "/me"
	if target, ok := sess.Get(middleware.SessionRedirectAfterLogin).(string); ok && target != "" {
		redirectTo = target
		sess.Delete(middleware.SessionRedirectAfterLogin)
	}
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

// Me returns the signed-in user and their recent logins
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID := userctx.GetUserID(r.Context())

	recent, err := ac.login.RecentLogins(userID, recentLoginLimit)
	if err != nil {
		log.Printf("Failed to load recent logins for %s: %v", userID, err)
		http.Error(w, "Failed to load recent logins", http.StatusInternalServerError)
		return
	}

	identity := models.Identity{
		Provider:        brightspace.ProviderName,
		ResourceOwnerID: userID,
		DisplayName:     userctx.GetDisplayName(r.Context()),
		RecentLogins:    recent,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(identity); err != nil {
		log.Printf("Failed to write identity: %v", err)
	}
}

// Logout clears the user session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete(middleware.SessionUserID)
	sess.Delete(middleware.SessionDisplayName)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginError maps a login failure to a response status and a message safe to show
// the user. The provider's error details only go to the log.
func loginError(err error) (int, string) {
	var oauthErr *brightspace.ProviderOAuthError
	var httpErr *brightspace.ProviderHTTPError
	switch {
	case errors.As(err, &oauthErr):
		return http.StatusUnauthorized, "Brightspace rejected the login"
	case errors.As(err, &httpErr):
		return http.StatusBadGateway, "Brightspace is unavailable"
	case errors.Is(err, services.ErrMissingIdentifier):
		return http.StatusForbidden, "Brightspace did not share your user identifier"
	default:
		return http.StatusInternalServerError, "Failed to complete login"
	}
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
