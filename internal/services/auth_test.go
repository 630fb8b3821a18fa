package services

import (
	"context"
	"errors"
	"testing"

	"github.com/quizmize/backend/internal/apierr"
)

func TestSignupUser_CreatesAccountAndToken(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.auth.SignupUser(context.Background(), "  Ada Lovelace ", "ADA@Example.com", "password123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.FullName != "Ada Lovelace" {
		t.Fatalf("full name = %q, want trimmed", user.FullName)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	if user.Level != 1 {
		t.Fatalf("level = %d, want 1", user.Level)
	}
	if user.AvatarURL == "" {
		t.Fatal("expected an avatar to be assigned")
	}

	parsed, err := env.auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed != user.ID {
		t.Fatalf("token subject = %s, want %s", parsed, user.ID)
	}
}

func TestSignupUser_RejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Ada Lovelace", "ada@example.com")

	_, _, err := env.auth.SignupUser(context.Background(), "Ada Again", "ada@example.com", "password123")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	if apiErr.Code != apierr.CodeConflict {
		t.Fatalf("code = %q, want conflict", apiErr.Code)
	}
	if _, ok := apiErr.Fields["email"]; !ok {
		t.Fatalf("expected email field error, got %v", apiErr.Fields)
	}
}

func TestSignupUser_ValidatesFields(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.SignupUser(context.Background(), "", "not-an-email", "abc")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	for _, field := range []string{"fullName", "email", "password"} {
		if _, ok := apiErr.Fields[field]; !ok {
			t.Errorf("expected %s field error, got %v", field, apiErr.Fields)
		}
	}
}

func TestLoginUser(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada Lovelace", "ada@example.com")

	user, token, err := env.auth.LoginUser(context.Background(), "Ada@Example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != created.ID || token == "" {
		t.Fatalf("unexpected login result: id=%s token=%q", user.ID, token)
	}

	_, _, err = env.auth.LoginUser(context.Background(), "ada@example.com", "wrongpass")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Fields["password"] != "That password is incorrect" {
		t.Fatalf("expected password field error, got %v", err)
	}

	_, _, err = env.auth.LoginUser(context.Background(), "nobody@example.com", "password123")
	if !errors.As(err, &apiErr) || apiErr.Fields["email"] != "That email is not registered" {
		t.Fatalf("expected email field error, got %v", err)
	}
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.ParseToken("not.a.token")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthentication {
		t.Fatalf("expected authentication error, got %v", err)
	}
}
