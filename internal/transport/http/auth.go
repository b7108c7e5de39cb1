package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "funnelpress-admin"

// Auth gates the admin API behind a single operator password carried in
// a cookie session.
type Auth struct {
	store    *sessions.CookieStore
	password string
}

func NewAuth(secret, password string) *Auth {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return &Auth{store: store, password: password}
}

func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if subtle.ConstantTimeCompare([]byte(body.Password), []byte(a.password)) != 1 {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid password"})
		return
	}
	session, _ := a.store.Get(r, sessionName)
	session.Values["authenticated"] = true
	if err := session.Save(r, w); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := a.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *Auth) authenticated(r *http.Request) bool {
	session, err := a.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	v, ok := session.Values["authenticated"].(bool)
	return ok && v
}

// Require wraps admin handlers; unauthenticated requests get a 401.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authenticated(r) {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
