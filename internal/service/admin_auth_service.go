package service

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/achoumais/achoumais/internal/config"
	"github.com/achoumais/achoumais/internal/utils"
)

// AdminAuthService authenticates the single env-configured admin account.
// There is deliberately no user table: this system has no write path, so
// credentials live in the environment as email + bcrypt hash.
type AdminAuthService struct {
	cfg *config.AdminConfig
	jwt *utils.JWTManager
}

// NewAdminAuthService constructs an AdminAuthService.
func NewAdminAuthService(cfg *config.AdminConfig, jwt *utils.JWTManager) *AdminAuthService {
	return &AdminAuthService{cfg: cfg, jwt: jwt}
}

// Login verifies the credentials and returns a signed token.
func (s *AdminAuthService) Login(email, password string) (string, error) {
	log.Debug().Str("email", email).Msg("Login attempt")

	if email != s.cfg.Email {
		return "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	log.Info().Str("email", email).Msg("Login successful")

	return s.jwt.Generate(email)
}
