package owner

import (
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService("admin", "hobbyshop123", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoginAndVerify_RoundTrip(t *testing.T) {
	s := newTestService(t)
	token, err := s.Login("admin", "hobbyshop123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	user, err := s.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user != "admin" {
		t.Fatalf("user=%q", user)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v", err)
	}
	if _, err := s.Login("root", "hobbyshop123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v", err)
	}
}

func TestVerify_RejectsForeignAndExpiredTokens(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v", err)
	}

	// signed by another instance with a different secret
	other, err := NewService("admin", "hobbyshop123", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := other.Login("admin", "hobbyshop123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Verify(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign token accepted: %v", err)
	}

	// expired session
	expired, err := NewService("admin", "hobbyshop123", []byte("test-secret"), -time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	tok, err := expired.Login("admin", "hobbyshop123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}
