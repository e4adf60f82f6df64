package services

import (
	"net/http"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// AuthService guards the admin console. There is exactly one credential,
// held in configuration as an argon2id hash; no user table exists.
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
}

func NewAuthService(logger *gecho.Logger, cfg *structs.Config) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
	}
}

// Login verifies the admin credential and issues a session token. Both the
// unknown-email and wrong-password paths return ErrInvalidCredentials, so
// responses don't reveal which half failed.
func (as *AuthService) Login(req *structs.LoginRequest) (string, time.Time, error) {
	if as.cfg.Auth.AdminEmail == "" || as.cfg.Auth.AdminPasswordHash == "" {
		as.logger.Error("Admin login attempted with no credential configured")
		return "", time.Time{}, lib.ErrInvalidCredentials
	}

	emailMatches := strings.EqualFold(strings.TrimSpace(req.Email), as.cfg.Auth.AdminEmail)

	// Always run the hash comparison, even on a wrong email, to keep the
	// two failure paths indistinguishable by timing.
	passwordMatches, err := lib.VerifyPassword(req.Password, as.cfg.Auth.AdminPasswordHash)
	if err != nil {
		as.logger.Error("Password verification failed", gecho.Field("error", err))
		return "", time.Time{}, lib.ErrInvalidCredentials
	}

	if !emailMatches || !passwordMatches {
		as.logger.Warn("Failed admin login attempt", gecho.Field("email", req.Email))
		return "", time.Time{}, lib.ErrInvalidCredentials
	}

	token, err := lib.IssueSessionToken(as.cfg.Auth.AdminEmail, as.cfg.Auth.SessionSecret, as.cfg.Auth.SessionExpiry)
	if err != nil {
		as.logger.Error("Failed to issue session token", gecho.Field("error", err))
		return "", time.Time{}, err
	}

	expiry := time.Now().Add(as.cfg.Auth.SessionExpiry)

	as.logger.Info("Admin logged in", gecho.Field("email", as.cfg.Auth.AdminEmail))
	return token, expiry, nil
}

// ValidateSession extracts and verifies the session cookie on a request.
func (as *AuthService) ValidateSession(r *http.Request) (*structs.AuthClaims, error) {
	claims, err := lib.ExtractClaims(r, as.cfg.Auth.SessionSecret)
	if err != nil {
		return nil, lib.ErrInvalidToken
	}

	if claims.Email != as.cfg.Auth.AdminEmail || claims.Role != "admin" {
		return nil, lib.ErrInvalidToken
	}

	return claims, nil
}
