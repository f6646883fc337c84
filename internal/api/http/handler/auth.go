package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dvoronin/membergate/internal/logger"
	"github.com/dvoronin/membergate/internal/model"
)

// AuthService defines credential verification, registration and role updates.
type AuthService interface {
	VerifyCredentials(ctx context.Context, username, password string) (model.User, error)
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	UpdateRoles(ctx context.Context, id uuid.UUID, member, admin bool) (model.User, error)
}

// SessionService defines session issue and drop operations.
type SessionService interface {
	Issue(ctx context.Context, user model.User) (string, error)
	Drop(ctx context.Context, sessionID string) error
}

// CookieConfig describes the session cookie the handler manages.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Auth handles HTTP endpoints for signup, login, logout and roles.
type Auth struct {
	authService    AuthService
	sessionService SessionService
	contextManager model.ContextManager
	cookie         CookieConfig
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	sessionService SessionService,
	contextManager model.ContextManager,
	cookie CookieConfig,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		sessionService: sessionService,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type rolesRequest struct {
	Member bool `json:"member"`
	Admin  bool `json:"admin"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Member    bool      `json:"member"`
	Admin     bool      `json:"admin"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.Name(),
		Username:  u.Username,
		Member:    u.Member,
		Admin:     u.Admin,
	}
}

// Signup registers a new user. New users are not logged in automatically
// and start without membership.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(r.Context(), model.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		h.logger.Info("Auth handler: signup failed",
			"username", req.Username,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login verifies credentials and issues a session cookie. Unknown username
// and wrong password produce the same response so usernames cannot be
// enumerated; the distinction exists only in server logs.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.VerifyCredentials(r.Context(), req.Username, req.Password)
	if errors.Is(err, model.ErrUserNotFound) || errors.Is(err, model.ErrPasswordMismatch) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	sessionID, err := h.sessionService.Issue(r.Context(), user)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue session",
			"user_id", user.ID,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(sessionID, h.cookie.TTL))
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout drops the session, if any, and expires the cookie.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookie.Name)
	if err == nil && cookie.Value != "" {
		if err := h.sessionService.Drop(r.Context(), cookie.Value); err != nil {
			h.logger.Error("Auth handler: failed to drop session",
				"error", err.Error())
		}
	}

	http.SetCookie(w, h.sessionCookie("", -time.Hour))
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user. The route sits behind RequireUser.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateRoles sets the member and admin flags on a user. The route sits
// behind RequireAdmin.
func (h *Auth) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req rolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.UpdateRoles(r.Context(), id, req.Member, req.Admin)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Auth) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
