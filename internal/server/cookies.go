package server

import (
	"net/http"
	"time"
)

const (
	defaultSessionCookie = "scplayer_session"
	stateCookie          = "scplayer_oauth_state"
	stateTTL             = 10 * time.Minute
	defaultSessionTTL    = 14 * 24 * time.Hour
)

// Cookies holds the settings shared by every cookie the server sets.
type Cookies struct {
	SessionName string
	SessionTTL  time.Duration
	Secure      bool
}

func (c Cookies) sessionName() string {
	if c.SessionName == "" {
		return defaultSessionCookie
	}
	return c.SessionName
}

// SessionLifetime returns how long a new session lasts.
func (c Cookies) SessionLifetime() time.Duration {
	if c.SessionTTL <= 0 {
		return defaultSessionTTL
	}
	return c.SessionTTL
}

func (c Cookies) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetSession writes the session cookie for token.
func (c Cookies) SetSession(w http.ResponseWriter, token string) {
	c.set(w, c.sessionName(), token, c.SessionLifetime())
}

// ClearSession expires the session cookie.
func (c Cookies) ClearSession(w http.ResponseWriter) {
	c.clear(w, c.sessionName())
}

// SessionToken returns the session token sent with r, or "".
func (c Cookies) SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(c.sessionName())
	if err != nil {
		return ""
	}
	return cookie.Value
}
