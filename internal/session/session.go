// internal/session/session.go
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/proglide/admin-console/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("session is invalid or expired")
)

// Session is one signed-in admin, held server-side.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TeardownFunc runs once for every session that is logged out.
type TeardownFunc func(sessionID string)

// Manager issues and checks admin sessions against one configured account.
type Manager struct {
	email        string
	passwordHash []byte
	ttl          time.Duration
	now          func() time.Time

	mu        sync.Mutex
	revoked   map[string]time.Time // session id -> token expiry
	teardowns []TeardownFunc
}

// NewManager hashes a plain password when no bcrypt hash is configured.
func NewManager(email, password, passwordHash string, ttl time.Duration) (*Manager, error) {
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	return &Manager{
		email:        strings.TrimSpace(email),
		passwordHash: hash,
		ttl:          ttl,
		now:          time.Now,
		revoked:      make(map[string]time.Time),
	}, nil
}

// OnTeardown registers a hook called from Logout.
func (m *Manager) OnTeardown(fn TeardownFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardowns = append(m.teardowns, fn)
}

func (m *Manager) Login(email, password string) (*Session, error) {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(m.email)),
	) == 1
	passwordErr := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password))
	if !emailOK || passwordErr != nil {
		return nil, ErrInvalidCredentials
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Email:     m.email,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	token, err := utils.GenerateSessionToken(s.ID, s.Email, s.IssuedAt, s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	s.Token = token

	logrus.WithField("session_id", s.ID).Info("Admin session started")
	return s, nil
}

// Authenticate turns a bearer token back into its session.
func (m *Manager) Authenticate(token string) (*Session, error) {
	claims, err := utils.ValidateSessionToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	s := &Session{
		ID:        claims.ID,
		Email:     claims.Email,
		Token:     token,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if s.Expired(m.now()) {
		return nil, ErrInvalidSession
	}

	m.mu.Lock()
	_, revoked := m.revoked[s.ID]
	m.mu.Unlock()
	if revoked {
		return nil, ErrInvalidSession
	}
	return s, nil
}

// Logout is the only way a session ends before its expiry. It revokes the
// token and runs every teardown hook.
func (m *Manager) Logout(s *Session) {
	m.mu.Lock()
	if _, done := m.revoked[s.ID]; done {
		m.mu.Unlock()
		return
	}
	m.revoked[s.ID] = s.ExpiresAt
	hooks := append([]TeardownFunc(nil), m.teardowns...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(s.ID)
	}
	logrus.WithField("session_id", s.ID).Info("Admin session ended")
}

// Sweep forgets revocations whose token has expired anyway.
func (m *Manager) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, exp := range m.revoked {
		if !now.Before(exp) {
			delete(m.revoked, id)
			n++
		}
	}
	return n
}
