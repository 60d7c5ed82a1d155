package authenticator

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Option keys read from the options a provider adapter forwards to the client
const (
	OptionClientID          = "clientId"
	OptionClientSecret      = "clientSecret"
	OptionRedirectURI       = "redirectUri"
	OptionScopes            = "scopes"
	OptionRequestsPerSecond = "requestsPerSecond"
	OptionBurst             = "burst"
)

// ClientConfig holds the provider independent OAuth client settings
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Scopes are requested on top of the provider's default scopes.
	Scopes []string

	// RequestsPerSecond limits calls to the provider. Zero disables the limit.
	RequestsPerSecond float64
	Burst             int

	HTTPClient *http.Client
}

// ConfigError reports every missing client setting at once
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "oauth client options not defined: " + strings.Join(e.Missing, ", ")
}

// Validate checks that the settings required for the code flow are present
func (c ClientConfig) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, OptionClientID)
	}
	if c.RedirectURL == "" {
		missing = append(missing, OptionRedirectURI)
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%s must not be negative", OptionRequestsPerSecond)
	}
	return nil
}

// ClientConfigFromMap builds a ClientConfig from options passed through a provider
// adapter. Unknown keys are ignored.
func ClientConfigFromMap(options map[string]any) (ClientConfig, error) {
	var cfg ClientConfig
	for key, value := range options {
		switch key {
		case OptionClientID:
			cfg.ClientID = toString(value)
		case OptionClientSecret:
			cfg.ClientSecret = toString(value)
		case OptionRedirectURI:
			cfg.RedirectURL = toString(value)
		case OptionScopes:
			scopes, err := toScopes(value)
			if err != nil {
				return ClientConfig{}, err
			}
			cfg.Scopes = scopes
		case OptionRequestsPerSecond:
			rps, err := toFloat(value)
			if err != nil {
				return ClientConfig{}, fmt.Errorf("invalid %s: %w", OptionRequestsPerSecond, err)
			}
			cfg.RequestsPerSecond = rps
		case OptionBurst:
			burst, err := toFloat(value)
			if err != nil {
				return ClientConfig{}, fmt.Errorf("invalid %s: %w", OptionBurst, err)
			}
			cfg.Burst = int(burst)
		}
	}
	return cfg, nil
}

// toString leaves nil and non-string values unset so Validate reports them
func toString(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

func toScopes(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return strings.Fields(v), nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		scopes := make([]string, 0, len(v))
		for _, s := range v {
			str, ok := s.(string)
			if !ok {
				return nil, fmt.Errorf("invalid %s entry %v", OptionScopes, s)
			}
			scopes = append(scopes, str)
		}
		return scopes, nil
	default:
		return nil, fmt.Errorf("invalid %s type %T", OptionScopes, value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}
