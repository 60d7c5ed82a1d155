package userctx

import "context"

// Context key type
type contextKey string

const displayNameKey contextKey = "display_name"
const UserIDKey contextKey = "user_id"

// SetDisplayName adds the user's display name to request context
func SetDisplayName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, displayNameKey, name)
}

// GetDisplayName retrieves the user's display name from request context
func GetDisplayName(ctx context.Context) string {
	name, ok := ctx.Value(displayNameKey).(string)
	if !ok || name == "" {
		return "anonymous"
	}
	return name
}

// SetUserID adds the Brightspace user identifier to request context
func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserID retrieves the Brightspace user identifier from request context
func GetUserID(ctx context.Context) string {
	if userID := ctx.Value(UserIDKey); userID != nil {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}
