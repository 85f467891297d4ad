package auth

import (
	"net/http"
	"time"
)

func (h *Handler) claimsFromRequest(r *http.Request) (*Claims, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, err
	}
	return ParseSessionToken(h.Secret, c.Value)
}

// sessionValid checks both the signed cookie and the backing row, so a
// deleted or expired session fails even with a well-formed token.
func (h *Handler) sessionValid(r *http.Request) bool {
	claims, err := h.claimsFromRequest(r)
	if err != nil {
		return false
	}
	var session Session
	if err := h.DB.First(&session, claims.SessionID).Error; err != nil {
		return false
	}
	return time.Now().Before(session.ExpiresAt)
}

// RequirePage guards HTML routes: unauthenticated browsers land on /login.
func (h *Handler) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.sessionValid(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAPI guards JSON routes with a plain 401.
func (h *Handler) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if !h.sessionValid(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
