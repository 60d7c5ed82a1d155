package brightspace

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	optionDomain     = "domain"
	optionAPIVersion = "apiVersion"

	versionKeyLP       = "lp"
	legacyVersionKeyLP = "lp_version"
)

// Options configures a Provider. Domain and APIVersion are required.
type Options struct {
	// Domain is the Brightspace instance, e.g. https://example.brightspacedemo.com.
	// A bare host is served over https.
	Domain string

	// APIVersion maps API families to versions. The "lp" family must be set.
	APIVersion map[string]string

	// Passthrough holds options meant for the OAuth client, not the provider.
	Passthrough map[string]any
}

// missing lists every required option that is not set, in declaration order
func (o Options) missing() []string {
	var missing []string
	if strings.TrimSpace(o.Domain) == "" {
		missing = append(missing, optionDomain)
	}
	if len(o.APIVersion) == 0 {
		missing = append(missing, optionAPIVersion)
	} else if lpVersion(o.APIVersion) == "" {
		missing = append(missing, optionAPIVersion+"."+versionKeyLP)
	}
	return missing
}

// OptionsFromMap splits a loosely typed option map into provider options. The
// recognized keys are domain and apiVersion; every other key is kept in Passthrough.
func OptionsFromMap(options map[string]any) Options {
	opts := Options{Passthrough: make(map[string]any)}
	for key, value := range options {
		switch key {
		case optionDomain:
			if s, ok := value.(string); ok {
				opts.Domain = s
			}
		case optionAPIVersion:
			opts.APIVersion = toVersionMap(value)
		default:
			opts.Passthrough[key] = value
		}
	}
	return opts
}

func lpVersion(versions map[string]string) string {
	if v := strings.TrimSpace(versions[versionKeyLP]); v != "" {
		return v
	}
	return strings.TrimSpace(versions[legacyVersionKeyLP])
}

func normalizeDomain(domain string) string {
	domain = strings.TrimRight(strings.TrimSpace(domain), "/")
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	return domain
}

func toVersionMap(value any) map[string]string {
	switch v := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, version := range v {
			out[k] = version
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, version := range v {
			if s := versionString(version); s != "" {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}

// versionString renders a version read from YAML or JSON. Floats are dropped:
// 1.30 and 1.3 are the same float, so the version cannot be recovered.
func versionString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
