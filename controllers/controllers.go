package controllers

import (
	"github.com/blogem/brightspace-oauth/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth *AuthController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, scopes []string) *Controllers {
	return &Controllers{
		Auth: NewAuthController(services.Login, scopes),
	}
}
