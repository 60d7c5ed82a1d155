package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/blogem/brightspace-oauth/authenticator"
	"github.com/blogem/brightspace-oauth/authenticator/brightspace"
	"github.com/blogem/brightspace-oauth/config"
	"github.com/blogem/brightspace-oauth/controllers"
	"github.com/blogem/brightspace-oauth/database"
	authmiddleware "github.com/blogem/brightspace-oauth/middleware"
	"github.com/blogem/brightspace-oauth/repositories"
	"github.com/blogem/brightspace-oauth/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration from .env and the environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the Brightspace provider and OAuth client
	client, err := newOAuthClient(cfg.Brightspace)
	if err != nil {
		log.Fatalf("Failed to initialize Brightspace provider: %v", err)
	}

	// Initialize database
	if err := database.InitializeDatabase(cfg.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Initialize repositories
	repos := repositories.NewRepositories(database.GetDB())

	// Initialize services
	srvs := services.NewServices(repos, client)

	// Initialize controllers. Configured scopes are already part of the client.
	ctrl := controllers.NewControllers(srvs, nil)

	// Set up router
	r, err := setupRouter(ctrl, cfg)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	fmt.Printf("🚀 Brightspace OAuth starting on port %s\n", cfg.Port)
	fmt.Printf("📂 Visit: http://localhost:%s/login\n", cfg.Port)
	fmt.Printf("🗃️  Database: %s\n", cfg.DatabasePath)

	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// newOAuthClient builds the provider from the configured options and hands the
// options it does not consume to the OAuth client
func newOAuthClient(cfg config.BrightspaceConfig) (*authenticator.Client, error) {
	options, err := cfg.ProviderOptions()
	if err != nil {
		return nil, err
	}

	provider, err := brightspace.NewFromMap(options)
	if err != nil {
		return nil, err
	}

	clientCfg, err := authenticator.ClientConfigFromMap(provider.Passthrough())
	if err != nil {
		return nil, err
	}

	log.Printf("Using Brightspace instance %s", provider.Domain())
	return authenticator.NewClient(provider, clientCfg)
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, cfg config.Config) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "brightspace_session",
		Secure:         cfg.UseHTTPS, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     cfg.SessionLifetime,
		Maxlifetime:    cfg.SessionLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<h1>Brightspace OAuth</h1><p><a href="/login">Sign in with Brightspace</a></p>`)
	})
	r.Get("/login", ctrl.Auth.Login)
	r.Get("/callback", ctrl.Auth.Callback)
	r.Get("/logout", ctrl.Auth.Logout)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "brightspace-oauth"}`)
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth)
		r.Get("/me", ctrl.Auth.Me)
	})

	return r, nil
}
