package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/store"
)

type AuthHandler struct {
	userStore     *store.UserStore
	sessionStore  *store.SessionStore
	renderer      *Renderer
	sessionTTL    time.Duration
	secureCookies bool
	logger        *slog.Logger
}

func NewAuthHandler(
	us *store.UserStore,
	ss *store.SessionStore,
	renderer *Renderer,
	sessionTTL time.Duration,
	secureCookies bool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userStore:     us,
		sessionStore:  ss,
		renderer:      renderer,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login", LoginView{Page: Page{Title: "Log in"}})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	emailAddr := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func(status int, msg string) {
		h.renderer.Render(w, status, "login", LoginView{
			Page:  Page{Title: "Log in", Flash: msg},
			Email: emailAddr,
		})
	}

	if emailAddr == "" || password == "" {
		fail(http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userStore.GetByEmail(emailAddr)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		h.logger.Info("login failed", "email", emailAddr)
		fail(http.StatusUnauthorized, "Invalid email or password")
		return
	}

	sess, err := h.sessionStore.Create(user.ID, h.sessionTTL)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, r, sess.Token, sess.ExpiresAt)
	h.logger.Info("login", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "register", RegisterView{Page: Page{Title: "Register"}})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("username"))
	emailAddr := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func(status int, msg string) {
		h.renderer.Render(w, status, "register", RegisterView{
			Page:  Page{Title: "Register", Flash: msg},
			Name:  name,
			Email: emailAddr,
		})
	}

	if name == "" || emailAddr == "" || password == "" {
		fail(http.StatusBadRequest, "Name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		fail(http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if err != nil {
		h.logger.Error("hash password", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	existing, err := h.userStore.GetByEmail(emailAddr)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		fail(http.StatusConflict, "That email is already registered")
		return
	}

	user, err := h.userStore.Create(name, emailAddr, hash)
	if err != nil {
		h.logger.Error("create user", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if ac, ok := auth.FromContext(r.Context()); ok {
		if err := h.sessionStore.Delete(ac.SessionID); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}
	h.clearSessionCookie(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// DeleteAccount removes the signed-in user along with everything they own.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if err := h.userStore.Delete(userID); err != nil {
		h.logger.Error("delete account", "user_id", userID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("account deleted", "user_id", userID)
	h.clearSessionCookie(w, r)
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies || r.TLS != nil,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies || r.TLS != nil,
	})
}
