package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/nashon/pos-ledger-api/internal/config"
	"github.com/nashon/pos-ledger-api/pkg/apperror"
	"github.com/nashon/pos-ledger-api/pkg/utils"
)

// AuthService signs terminal operators in against the PIN configured for
// this terminal. There is no user database: the gateway serves one till.
type AuthService struct {
	jwtManager *utils.JWTManager
	operator   string
	pinHash    string
}

// NewAuthService creates a new auth service
func NewAuthService(jwtManager *utils.JWTManager, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		jwtManager: jwtManager,
		operator:   cfg.Operator,
		pinHash:    cfg.PINHash,
	}
}

// LoginResult carries the issued token pair.
type LoginResult struct {
	Operator     string `json:"operator"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies the operator name and PIN and issues a token pair.
func (s *AuthService) Login(operator, pin string) (*LoginResult, error) {
	if operator != s.operator {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.pinHash), []byte(pin)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	access, err := s.jwtManager.GenerateAccessToken(operator)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(operator)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Operator: operator, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (*LoginResult, error) {
	operator, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	access, err := s.jwtManager.GenerateAccessToken(operator)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Operator: operator, AccessToken: access, RefreshToken: refreshToken}, nil
}
