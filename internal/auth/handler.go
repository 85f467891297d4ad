// Package auth implements the single-user login: one shared password checked
// against a bcrypt hash, a server-side session row per browser, and a signed
// httpOnly cookie pointing at that row.
package auth

import (
	"html/template"
	"net/http"
	"time"

	"github.com/rejigai/commission-tracker/internal/utils"
	"gorm.io/gorm"
)

const SessionTTL = 8 * time.Hour

type Handler struct {
	DB           *gorm.DB
	PasswordHash string
	Secret       []byte
	Templates    *template.Template
}

func NewHandler(db *gorm.DB, passwordHash string, secret []byte, templates *template.Template) *Handler {
	return &Handler{
		DB:           db,
		PasswordHash: passwordHash,
		Secret:       secret,
		Templates:    templates,
	}
}

type loginPage struct {
	Error string
}

// LoginForm handles GET /login. An already-authenticated browser goes
// straight to the dashboard.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionValid(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, http.StatusOK, "")
}

// Login handles POST /login. On success a session row is created and the
// signed cookie set; on failure the form re-renders with a message.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, http.StatusBadRequest, "Please enter a password")
		return
	}

	password := r.PostFormValue("password")
	if password == "" {
		h.renderLogin(w, http.StatusUnauthorized, "Please enter a password")
		return
	}
	if !utils.CheckPassword(h.PasswordHash, password) {
		h.renderLogin(w, http.StatusUnauthorized, "Incorrect password. Please try again.")
		return
	}

	// Expired rows pile up otherwise; login is a convenient sweep point.
	h.DB.Where("expires_at < ?", time.Now()).Delete(&Session{})

	session := Session{ExpiresAt: time.Now().Add(SessionTTL)}
	if err := h.DB.Create(&session).Error; err != nil {
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}

	token, err := SignSessionToken(h.Secret, session.ID, session.ExpiresAt)
	if err != nil {
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token, session.ExpiresAt)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout: the session row is deleted, so the cookie is
// dead even before it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, err := h.claimsFromRequest(r); err == nil {
		h.DB.Delete(&Session{}, claims.SessionID)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.Templates.ExecuteTemplate(w, "login.html", loginPage{Error: errMsg}); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
