package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Port            string `env:"PORT" envDefault:"8080"`
	DatabasePath    string `env:"DATABASE_PATH" envDefault:"brightspace_oauth.db"`
	UseHTTPS        bool   `env:"USE_HTTPS"`
	SessionLifetime int64  `env:"SESSION_LIFETIME" envDefault:"3600"`

	Brightspace BrightspaceConfig `envPrefix:"BRIGHTSPACE_"`
}

// BrightspaceConfig holds the Brightspace provider and OAuth client settings.
// Values set here override the ones read from OptionsFile.
type BrightspaceConfig struct {
	OptionsFile string `env:"OPTIONS_FILE"`

	Domain    string `env:"DOMAIN"`
	LPVersion string `env:"LP_VERSION"`

	ClientID          string   `env:"CLIENT_ID"`
	ClientSecret      string   `env:"CLIENT_SECRET"`
	RedirectURL       string   `env:"REDIRECT_URL"`
	Scopes            []string `env:"SCOPES" envSeparator:","`
	RequestsPerSecond float64  `env:"REQUESTS_PER_SECOND"`
	Burst             int      `env:"BURST"`
}

// Load reads .env if present and parses the environment
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ProviderOptions returns the option map handed to the Brightspace provider. It starts
// from the YAML options file, if any, and applies the environment on top.
func (c BrightspaceConfig) ProviderOptions() (map[string]any, error) {
	options := make(map[string]any)

	if c.OptionsFile != "" {
		fileOptions, err := readOptionsFile(c.OptionsFile)
		if err != nil {
			return nil, err
		}
		options = fileOptions
	}

	setString(options, "domain", c.Domain)
	if c.LPVersion != "" {
		versions, _ := options["apiVersion"].(map[string]any)
		if versions == nil {
			versions = make(map[string]any)
		}
		versions["lp"] = c.LPVersion
		options["apiVersion"] = versions
	}

	setString(options, "clientId", c.ClientID)
	setString(options, "clientSecret", c.ClientSecret)
	setString(options, "redirectUri", c.RedirectURL)
	if len(c.Scopes) > 0 {
		options["scopes"] = c.Scopes
	}
	if c.RequestsPerSecond > 0 {
		options["requestsPerSecond"] = c.RequestsPerSecond
	}
	if c.Burst > 0 {
		options["burst"] = c.Burst
	}

	return options, nil
}

// readOptionsFile decodes the YAML options file. apiVersion entries keep the text
// they were written with, so an unquoted 1.30 stays "1.30" instead of becoming 1.3.
func readOptionsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}

	options := make(map[string]any, len(nodes))
	for key, node := range nodes {
		if key == "apiVersion" && node.Kind == yaml.MappingNode {
			options[key] = versionsFromNode(&node)
			continue
		}

		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to parse %s in options file %s: %w", key, path, err)
		}
		options[key] = value
	}
	return options, nil
}

func versionsFromNode(node *yaml.Node) map[string]any {
	versions := make(map[string]any, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		family, version := node.Content[i], node.Content[i+1]
		if version.Kind != yaml.ScalarNode || version.ShortTag() == "!!null" {
			continue
		}
		versions[family.Value] = version.Value
	}
	return versions
}

func setString(options map[string]any, key, value string) {
	if value != "" {
		options[key] = value
	}
}
