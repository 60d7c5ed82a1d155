package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/blogem/brightspace-oauth/authenticator"
	"github.com/blogem/brightspace-oauth/models"
	"github.com/blogem/brightspace-oauth/repositories"
	"golang.org/x/oauth2"
)

// ErrMissingIdentifier is returned when the provider did not disclose who signed in
var ErrMissingIdentifier = errors.New("resource owner has no identifier")

// OAuthClient is the part of authenticator.Client the login flow uses
type OAuthClient interface {
	Provider() authenticator.IdentityProvider
	AuthCodeURL(state string, scopes ...string) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
	FetchResourceOwner(ctx context.Context, token *oauth2.Token) (authenticator.ResourceOwner, error)
}

// LoginRequest carries the callback data of a login attempt
type LoginRequest struct {
	Code      string
	IPAddress string
	UserAgent string
}

// LoginService interface defines the login business logic
type LoginService interface {
	AuthCodeURL(state string, scopes ...string) string
	CompleteLogin(ctx context.Context, req LoginRequest) (*models.Identity, error)
	RecentLogins(resourceOwnerID string, limit int) ([]models.LoginAuditEntry, error)
}

// loginService implements LoginService interface
type loginService struct {
	client    OAuthClient
	provider  string
	auditRepo repositories.LoginAuditRepository
}

// NewLoginService creates a new login service
func NewLoginService(client OAuthClient, auditRepo repositories.LoginAuditRepository) LoginService {
	return &loginService{
		client:    client,
		provider:  client.Provider().Name(),
		auditRepo: auditRepo,
	}
}

// AuthCodeURL returns the provider URL that starts a login
func (s *loginService) AuthCodeURL(state string, scopes ...string) string {
	return s.client.AuthCodeURL(state, scopes...)
}

// CompleteLogin exchanges the code, looks up the resource owner and records the attempt
func (s *loginService) CompleteLogin(ctx context.Context, req LoginRequest) (*models.Identity, error) {
	entry := &models.LoginAuditEntry{
		Provider:  s.provider,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}

	identity, err := s.completeLogin(ctx, req.Code, entry)
	if err != nil {
		entry.Outcome = models.LoginFailure
		entry.Error = err.Error()
	} else {
		entry.Outcome = models.LoginSuccess
	}

	if auditErr := s.auditRepo.Create(entry); auditErr != nil {
		log.Printf("Failed to create login audit entry: %v", auditErr)
	}

	return identity, err
}

func (s *loginService) completeLogin(ctx context.Context, code string, entry *models.LoginAuditEntry) (*models.Identity, error) {
	if code == "" {
		return nil, errors.New("authorization code is required")
	}

	token, err := s.client.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	owner, err := s.client.FetchResourceOwner(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resource owner: %w", err)
	}

	if named, ok := owner.(interface{ UniqueName() (string, bool) }); ok {
		entry.UniqueName, _ = named.UniqueName()
	}

	id, ok := owner.ID()
	if !ok {
		return nil, ErrMissingIdentifier
	}
	entry.ResourceOwnerID = id

	return &models.Identity{
		Provider:        s.provider,
		ResourceOwnerID: id,
		DisplayName:     owner.DisplayName(),
	}, nil
}

// RecentLogins returns the latest login attempts of a user
func (s *loginService) RecentLogins(resourceOwnerID string, limit int) ([]models.LoginAuditEntry, error) {
	if resourceOwnerID == "" {
		return nil, fmt.Errorf("resource owner ID is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit: %d", limit)
	}
	return s.auditRepo.ListByResourceOwner(s.provider, resourceOwnerID, limit)
}
