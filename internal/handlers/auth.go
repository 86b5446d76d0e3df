package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/paulr25/bp-tracker/internal/middleware"
	"github.com/paulr25/bp-tracker/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo  *repo.UserRepo
	Secret    []byte
	TokenTTL  time.Duration
	SecureTLS bool
}

// ==========================
// Register (password stored as bcrypt hash)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Username, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			JSONError(w, "Username already exists", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user failed", "error", err)
		JSONError(w, "database error", http.StatusInternalServerError)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	JSONOk(w, nil)
}

// ==========================
// Login (case-sensitive username lookup + bcrypt verify)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		// Same response whether the user is missing or the password is wrong.
		JSONError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	ttl := h.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.SecureTLS,
		Expires:  time.Now().Add(ttl),
	})

	JSONOk(w, map[string]interface{}{"token": signed})
}

// ==========================
// Logout (clears cookie, redirects to login)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.SecureTLS,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}
