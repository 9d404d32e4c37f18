// internal/services/auth_service.go
package services

import (
	"fmt"
	"time"

	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/utils"
)

type AuthService struct {
	sessions *session.Manager
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in"` // in seconds
}

func NewAuthService(sessions *session.Manager) *AuthService {
	return &AuthService{sessions: sessions}
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sess, err := s.sessions.Login(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     sess.Token,
		TokenType: "Bearer",
		ExpiresAt: sess.ExpiresAt,
		ExpiresIn: int(time.Until(sess.ExpiresAt).Seconds()),
	}, nil
}

func (s *AuthService) Authenticate(token string) (*session.Session, error) {
	return s.sessions.Authenticate(token)
}

// Logout ends the session and discards everything held for it.
func (s *AuthService) Logout(sess *session.Session) {
	s.sessions.Logout(sess)
}
