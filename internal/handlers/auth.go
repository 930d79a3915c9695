// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"adforge/internal/middleware"
	"adforge/internal/session"
	"adforge/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Register creates a new account and opens a session for it.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateCredentials(req.Email, req.Password); msg != "" {
		errorJSON(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("register lookup failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		errorJSON(w, http.StatusBadRequest, "an account with this email already exists")
		return
	}

	user, err := a.userStore.Create(req.Email, req.Password, req.DisplayName)
	if err != nil {
		slog.Error("register create failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := a.sessions.Create(r.Context(), &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login validates credentials and opens a session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Same response for unknown email and wrong password.
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		errorJSON(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := a.sessions.Create(r.Context(), &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Logout destroys the current session. Idempotent: a missing or expired
// token still yields 204.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil {
		slog.Error("me lookup failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		// Session outlived the account.
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
