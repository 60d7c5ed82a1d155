package brightspace

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/blogem/brightspace-oauth/authenticator"
)

// WhoAmI response attributes.
// See https://docs.valence.desire2learn.com/res/user.html#User.WhoAmIUser
const (
	fieldIdentifier        = "Identifier"
	fieldFirstName         = "FirstName"
	fieldLastName          = "LastName"
	fieldUniqueName        = "UniqueName"
	fieldProfileIdentifier = "ProfileIdentifier"
)

// ResourceOwner is a Brightspace user as returned by the whoami API. Empty or missing
// attributes are reported as absent.
type ResourceOwner struct {
	response map[string]any

	identifier        string
	firstName         string
	lastName          string
	uniqueName        string
	profileIdentifier string
}

var _ authenticator.ResourceOwner = (*ResourceOwner)(nil)

// NewResourceOwner builds a resource owner from a decoded whoami response
func NewResourceOwner(response map[string]any) *ResourceOwner {
	raw := make(map[string]any, len(response))
	for k, v := range response {
		raw[k] = v
	}

	return &ResourceOwner{
		response:          raw,
		identifier:        attribute(raw, fieldIdentifier),
		firstName:         attribute(raw, fieldFirstName),
		lastName:          attribute(raw, fieldLastName),
		uniqueName:        attribute(raw, fieldUniqueName),
		profileIdentifier: attribute(raw, fieldProfileIdentifier),
	}
}

// ID returns the user's identifier. Depending on the caller's permissions
// Brightspace may leave it out.
func (o *ResourceOwner) ID() (string, bool) {
	return o.identifier, o.identifier != ""
}

func (o *ResourceOwner) FirstName() (string, bool) {
	return o.firstName, o.firstName != ""
}

func (o *ResourceOwner) LastName() (string, bool) {
	return o.lastName, o.lastName != ""
}

// UniqueName returns the login name
func (o *ResourceOwner) UniqueName() (string, bool) {
	return o.uniqueName, o.uniqueName != ""
}

func (o *ResourceOwner) ProfileIdentifier() (string, bool) {
	return o.profileIdentifier, o.profileIdentifier != ""
}

// DisplayName prefers the full name, then the unique name, then the identifier
func (o *ResourceOwner) DisplayName() string {
	if name := strings.TrimSpace(o.firstName + " " + o.lastName); name != "" {
		return name
	}
	if o.uniqueName != "" {
		return o.uniqueName
	}
	return o.identifier
}

// ToRaw returns a copy of the whoami response
func (o *ResourceOwner) ToRaw() map[string]any {
	out := make(map[string]any, len(o.response))
	for k, v := range o.response {
		out[k] = v
	}
	return out
}

func attribute(response map[string]any, key string) string {
	switch v := response[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
