package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ecocart/ecocart/internal/auth"
	"github.com/ecocart/ecocart/internal/model"
	"github.com/ecocart/ecocart/internal/obs"
	"github.com/ecocart/ecocart/internal/store"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView is the account payload returned alongside a token.
type userView struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
}

type authResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    userView `json:"user"`
}

func (a *App) registerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case req.FirstName == "":
		writeError(w, http.StatusBadRequest, "firstName is required", nil)
		return
	case req.LastName == "":
		writeError(w, http.StatusBadRequest, "lastName is required", nil)
		return
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusBadRequest, "A valid email is required", nil)
		return
	case len(req.Password) < 6:
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	u := model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	}
	if err := a.Store.CreateUser(r.Context(), &u); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already registered", nil)
			return
		}
		obs.Logger.Error("register_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	a.respondWithToken(w, u)
}

func (a *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	u, err := a.Store.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "Invalid email or password", nil)
		return
	}
	if err != nil {
		obs.Logger.Error("login_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusBadRequest, "Invalid email or password", nil)
		return
	}
	a.respondWithToken(w, u)
}

func (a *App) respondWithToken(w http.ResponseWriter, u model.User) {
	tok, err := auth.Issue(u, a.Cfg.JWTSecret, a.Cfg.TokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Token:   tok,
		User: userView{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Role:      u.Role,
		},
	})
}
