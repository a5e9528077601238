package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// SessionHeader carries the shopper session for clients that do not keep cookies.
const SessionHeader = "X-Session-Id"

const (
	defaultSessionCookie = "sf_session"
	sessionCookieMaxAge  = 365 * 24 * time.Hour
)

var validSessionID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// Session resolves the shopper session from the header, then the cookie, and
// mints a new one when neither holds a usable id. The id is echoed on the
// response header and refreshed in the cookie.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = defaultSessionCookie
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if !validSessionID.MatchString(sessionID) {
				sessionID = ""
				if c, err := r.Cookie(cookieName); err == nil && validSessionID.MatchString(c.Value) {
					sessionID = c.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionHeader, sessionID)
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
