package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	usersFile   = "users.json"
	sessionFile = "session.json"
	tokenTTL    = 7 * 24 * time.Hour
)

// Local is a file-backed Provider: bcrypt-hashed credentials in users.json,
// the active session as a signed HS256 token in session.json. Good enough
// for a single-user local install; remote providers implement the same
// interface.
type Local struct {
	dir    string
	secret []byte

	mu        sync.Mutex
	users     map[string]userRecord // keyed by email
	session   *Session
	callbacks []func(*Session)
	loading   bool
	lastErr   string
}

type userRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// NewLocal opens (or creates) the provider's files under dir and restores a
// still-valid persisted session.
func NewLocal(dir string, secret []byte) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	l := &Local{
		dir:    dir,
		secret: secret,
		users:  make(map[string]userRecord),
	}
	if err := l.loadUsers(); err != nil {
		return nil, err
	}
	l.restoreSession()
	return l, nil
}

// CurrentSession implements Provider.
func (l *Local) CurrentSession() *Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session == nil {
		return nil
	}
	s := *l.session
	return &s
}

// OnSessionChange implements Provider.
func (l *Local) OnSessionChange(fn func(*Session)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callbacks = append(l.callbacks, fn)
}

// Loading reports whether an auth call is in flight. UI state only.
func (l *Local) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the message of the last failed auth call, cleared by the next
// successful one. UI state only.
func (l *Local) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// SignUp implements Provider. The new account is signed in immediately.
func (l *Local) SignUp(email, password string) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()
	defer l.setLoading(false)

	email = strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	if _, ok := l.users[email]; ok {
		l.lastErr = ErrUserExists.Error()
		l.mu.Unlock()
		return ErrUserExists
	}
	l.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		l.fail(err)
		return err
	}

	rec := userRecord{
		ID:   uuid.NewString(),
		Name: nameFromEmail(email),
		Hash: string(hash),
	}

	l.mu.Lock()
	l.users[email] = rec
	if err := l.saveUsersLocked(); err != nil {
		delete(l.users, email)
		l.lastErr = err.Error()
		l.mu.Unlock()
		return err
	}
	l.mu.Unlock()

	return l.startSession(email, rec)
}

// SignIn implements Provider.
func (l *Local) SignIn(email, password string) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()
	defer l.setLoading(false)

	email = strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	rec, ok := l.users[email]
	l.mu.Unlock()
	if !ok {
		l.fail(ErrInvalidCredentials)
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(password)); err != nil {
		l.fail(ErrInvalidCredentials)
		return ErrInvalidCredentials
	}

	return l.startSession(email, rec)
}

// SignOut implements Provider. Signing out while signed out is a no-op.
func (l *Local) SignOut() error {
	l.mu.Lock()
	l.loading = true
	l.session = nil
	l.lastErr = ""
	l.mu.Unlock()

	os.Remove(filepath.Join(l.dir, sessionFile))
	l.notify(nil)
	l.setLoading(false)
	return nil
}

func (l *Local) startSession(email string, rec userRecord) error {
	expires := time.Now().Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   rec.ID,
		"email": email,
		"name":  rec.Name,
		"exp":   expires.Unix(),
	})
	signed, err := token.SignedString(l.secret)
	if err != nil {
		l.fail(fmt.Errorf("sign token: %w", err))
		return err
	}

	sess := &Session{
		UserID:    rec.ID,
		Email:     email,
		Name:      rec.Name,
		Token:     signed,
		ExpiresAt: expires.UTC(),
	}

	l.mu.Lock()
	l.session = sess
	l.lastErr = ""
	data, _ := json.MarshalIndent(sess, "", "  ")
	l.mu.Unlock()

	// Best-effort persistence; the in-memory session stays valid either way.
	os.WriteFile(filepath.Join(l.dir, sessionFile), data, 0o600)

	l.notify(sess)
	return nil
}

// restoreSession loads session.json and keeps it only if its token still
// verifies and has not expired.
func (l *Local) restoreSession() {
	data, err := os.ReadFile(filepath.Join(l.dir, sessionFile))
	if err != nil {
		return
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return
	}
	parsed, err := jwt.Parse(sess.Token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return l.secret, nil
	})
	if err != nil || !parsed.Valid {
		os.Remove(filepath.Join(l.dir, sessionFile))
		return
	}
	l.session = &sess
}

func (l *Local) loadUsers() error {
	data, err := os.ReadFile(filepath.Join(l.dir, usersFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read users: %w", err)
	}
	if err := json.Unmarshal(data, &l.users); err != nil {
		return fmt.Errorf("parse users: %w", err)
	}
	return nil
}

// saveUsersLocked writes users.json. Callers hold l.mu.
func (l *Local) saveUsersLocked() error {
	data, err := json.MarshalIndent(l.users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.dir, usersFile), data, 0o600)
}

func (l *Local) notify(sess *Session) {
	l.mu.Lock()
	callbacks := append([]func(*Session){}, l.callbacks...)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(sess)
	}
}

func (l *Local) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}

func (l *Local) fail(err error) {
	l.mu.Lock()
	l.lastErr = err.Error()
	l.mu.Unlock()
}

func nameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
