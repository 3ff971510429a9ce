package auth

import (
	"errors"
	"testing"
)

var testSecret = []byte("test-secret")

func testProvider(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal(t.TempDir(), testSecret)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return l
}

func TestSignUp_SignsInImmediately(t *testing.T) {
	l := testProvider(t)

	if err := l.SignUp("Dana@Example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	sess := l.CurrentSession()
	if sess == nil {
		t.Fatal("expected an active session after signup")
	}
	if sess.Email != "dana@example.com" {
		t.Errorf("email not normalized: %q", sess.Email)
	}
	if sess.Name != "dana" {
		t.Errorf("expected name derived from email, got %q", sess.Name)
	}
	if sess.Token == "" || sess.UserID == "" {
		t.Error("session missing token or user id")
	}
	if sess.ExpiresAt.IsZero() {
		t.Error("session missing expiry")
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	l := testProvider(t)
	if err := l.SignUp("dana@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	err := l.SignUp("dana@example.com", "other")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if l.Err() == "" {
		t.Error("expected last error to be recorded")
	}
}

func TestSignIn(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, testSecret)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := l.SignUp("dana@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	l.SignOut()

	if err := l.SignIn("dana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if err := l.SignIn("ghost@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if l.CurrentSession() != nil {
		t.Fatal("failed sign-in must not create a session")
	}

	if err := l.SignIn("dana@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if l.CurrentSession() == nil {
		t.Fatal("expected session after sign-in")
	}
	if l.Err() != "" {
		t.Errorf("success must clear the last error, got %q", l.Err())
	}
}

func TestSignOut_Idempotent(t *testing.T) {
	l := testProvider(t)
	if err := l.SignOut(); err != nil {
		t.Fatalf("signing out while signed out must be a no-op, got %v", err)
	}

	l.SignUp("dana@example.com", "hunter22")
	if err := l.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if l.CurrentSession() != nil {
		t.Error("session not cleared")
	}
}

func TestOnSessionChange_Callbacks(t *testing.T) {
	l := testProvider(t)

	var got []*Session
	l.OnSessionChange(func(s *Session) { got = append(got, s) })

	l.SignUp("dana@example.com", "hunter22")
	l.SignOut()

	if len(got) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(got))
	}
	if got[0] == nil || got[0].Email != "dana@example.com" {
		t.Errorf("sign-in callback payload wrong: %+v", got[0])
	}
	if got[1] != nil {
		t.Errorf("sign-out callback must deliver nil, got %+v", got[1])
	}
}

func TestSessionRestore_AcrossRestart(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, testSecret)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := l.SignUp("dana@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	want := l.CurrentSession()

	l2, err := NewLocal(dir, testSecret)
	if err != nil {
		t.Fatalf("NewLocal (restart): %v", err)
	}
	got := l2.CurrentSession()
	if got == nil {
		t.Fatal("expected session restored from disk")
	}
	if got.UserID != want.UserID || got.Token != want.Token {
		t.Error("restored session differs from the original")
	}

	// Users are restored too: the password still works.
	l2.SignOut()
	if err := l2.SignIn("dana@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn after restart: %v", err)
	}
}

func TestSessionRestore_RejectsForeignSecret(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, testSecret)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := l.SignUp("dana@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	l2, err := NewLocal(dir, []byte("different-secret"))
	if err != nil {
		t.Fatalf("NewLocal (other secret): %v", err)
	}
	if l2.CurrentSession() != nil {
		t.Fatal("a session signed with another secret must not restore")
	}
}
