package services

import (
	"github.com/blogem/brightspace-oauth/repositories"
)

// Services holds all service instances
type Services struct {
	Login LoginService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, client OAuthClient) *Services {
	return &Services{
		Login: NewLoginService(client, repos.LoginAudit),
	}
}
