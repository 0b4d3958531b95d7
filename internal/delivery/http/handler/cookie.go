package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	CookieName     = "fileshare_session"
	cookieTokenKey = "token"
)

// TokenCookie keeps the session token in a signed browser cookie so the UI
// does not have to manage it.
type TokenCookie struct {
	store sessions.Store
}

// NewTokenCookie signs cookies with secret. They expire after maxAge.
func NewTokenCookie(secret []byte, maxAge time.Duration, secure bool) *TokenCookie {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &TokenCookie{store: store}
}

// Token returns the token carried by the request cookie, if any.
func (t *TokenCookie) Token(r *http.Request) string {
	s, err := t.store.Get(r, CookieName)
	if err != nil {
		return ""
	}
	token, _ := s.Values[cookieTokenKey].(string)
	return token
}

// Set writes token into the response cookie.
func (t *TokenCookie) Set(w http.ResponseWriter, r *http.Request, token string) error {
	// Get returns a fresh session alongside the error for a tampered cookie.
	s, _ := t.store.Get(r, CookieName)
	s.Values[cookieTokenKey] = token
	return s.Save(r, w)
}

// Clear expires the cookie.
func (t *TokenCookie) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := t.store.Get(r, CookieName)
	delete(s.Values, cookieTokenKey)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
