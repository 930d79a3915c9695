// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// auth_flow_test.go exercises the full register → login → me → logout
// cycle against real PostgreSQL and Valkey.
package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"adforge/internal/middleware"
	"adforge/internal/session"
	"adforge/internal/store"
)

func authTestSetup(t *testing.T) (*Auth, *store.UserStore, *session.Store) {
	t.Helper()
	db := testDB(t)
	client := testValkeyClient(t)
	users := store.NewUserStore(db)
	sessions := session.NewStore(client)
	return NewAuth(sessions, users), users, sessions
}

func TestAuthFlow(t *testing.T) {
	auth, users, sessions := authTestSetup(t)

	// Register.
	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"email":"flow@test.local","password":"longenough","display_name":"Flow"}`))
	w := httptest.NewRecorder()
	auth.Register(w, req)

	if w.Code != 201 {
		t.Fatalf("register status: got %d, body %s", w.Code, w.Body.String())
	}

	var reg struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&reg); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if reg.Token == "" {
		t.Fatal("register must return a session token")
	}
	if reg.User.Email != "flow@test.local" {
		t.Errorf("register user email: got %q", reg.User.Email)
	}
	t.Cleanup(func() {
		if u, _ := users.FindByEmail("flow@test.local"); u != nil {
			users.Delete(u.ID)
		}
	})

	// Login with the same credentials.
	req = httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"flow@test.local","password":"longenough"}`))
	w = httptest.NewRecorder()
	auth.Login(w, req)

	if w.Code != 200 {
		t.Fatalf("login status: got %d, body %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	json.NewDecoder(w.Body).Decode(&login)
	if login.Token == "" {
		t.Fatal("login must return a session token")
	}

	// The token resolves to a live session.
	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	data, err := sessions.Get(context.Background(), req)
	if err != nil || data == nil {
		t.Fatalf("session lookup: %v, %v", data, err)
	}

	// Me returns the profile when the session is loaded.
	req = req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, data))
	w = httptest.NewRecorder()
	auth.Me(w, req)
	if w.Code != 200 {
		t.Fatalf("me status: got %d, body %s", w.Code, w.Body.String())
	}

	// Logout destroys the session; the token stops resolving.
	req = httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	auth.Logout(w, req)
	if w.Code != 204 {
		t.Fatalf("logout status: got %d", w.Code)
	}

	data, err = sessions.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("session lookup after logout: %v", err)
	}
	if data != nil {
		t.Error("session should be gone after logout")
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	auth, users, _ := authTestSetup(t)

	if _, err := users.Create("wrongpw@test.local", "correct-password", "WP"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		if u, _ := users.FindByEmail("wrongpw@test.local"); u != nil {
			users.Delete(u.ID)
		}
	})

	for _, body := range []string{
		`{"email":"wrongpw@test.local","password":"wrong"}`,
		`{"email":"nobody@test.local","password":"whatever"}`,
	} {
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		auth.Login(w, req)

		// Unknown email and wrong password are indistinguishable.
		if w.Code != 401 {
			t.Errorf("login status: got %d, want 401", w.Code)
		}
		var resp map[string]string
		json.NewDecoder(w.Body).Decode(&resp)
		if resp["error"] != "invalid email or password" {
			t.Errorf("error: got %q", resp["error"])
		}
	}
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	auth, users, _ := authTestSetup(t)

	if _, err := users.Create("dup-reg@test.local", "longenough", "Dup"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		if u, _ := users.FindByEmail("dup-reg@test.local"); u != nil {
			users.Delete(u.ID)
		}
	})

	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"email":"dup-reg@test.local","password":"longenough"}`))
	w := httptest.NewRecorder()
	auth.Register(w, req)

	if w.Code != 400 {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestAuthRegister_InvalidInputs(t *testing.T) {
	auth, _, _ := authTestSetup(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"nope","password":"longenough"}`},
		{"short password", `{"email":"a@b.local","password":"short"}`},
		{"malformed json", `{"email":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			auth.Register(w, req)
			if w.Code != 400 {
				t.Errorf("status: got %d, want 400", w.Code)
			}
		})
	}
}

func TestAuthRegister_NeverLeaksPasswordHash(t *testing.T) {
	auth, users, _ := authTestSetup(t)

	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"email":"leak@test.local","password":"longenough"}`))
	w := httptest.NewRecorder()
	auth.Register(w, req)
	t.Cleanup(func() {
		if u, _ := users.FindByEmail("leak@test.local"); u != nil {
			users.Delete(u.ID)
		}
	})

	if strings.Contains(w.Body.String(), "password") || strings.Contains(w.Body.String(), "$2a$") {
		t.Errorf("response leaks password material: %s", w.Body.String())
	}
}
