package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/blogem/brightspace-oauth/userctx"
)

// Session keys shared with the auth controller
const (
	SessionUserID             = "user_id"
	SessionDisplayName        = "user_name"
	SessionState              = "state"
	SessionRedirectAfterLogin = "redirect_after_login"
)

// RequireAuth ensures the user is authenticated
// If not authenticated, redirects to /login and stores the intended destination
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		userID, _ := sess.Get(SessionUserID).(string)

		if userID == "" {
			// Store the intended destination for redirect after login
			sess.Set(SessionRedirectAfterLogin, r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		// Add the user to request context for use in handlers
		ctx := userctx.SetUserID(r.Context(), userID)
		if name, ok := sess.Get(SessionDisplayName).(string); ok {
			ctx = userctx.SetDisplayName(ctx, name)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
