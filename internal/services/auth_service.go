package services

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-api/internal/metrics"
	"storefront-api/internal/models"
)

// AuthConfig holds the configured admin credentials
type AuthConfig struct {
	Username string
	Password string

	// SessionMaxAge is the cookie lifetime in seconds
	SessionMaxAge int
}

// Configured reports whether both credentials are set
func (c *AuthConfig) Configured() bool {
	return c != nil && c.Username != "" && c.Password != ""
}

// authService implements the AuthService interface
type authService struct {
	config    *AuthConfig
	validator *validator.Validate
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewAuthService creates a new auth service instance
func NewAuthService(config *AuthConfig, logger logrus.FieldLogger) AuthService {
	if config == nil {
		config = &AuthConfig{}
	}
	if config.SessionMaxAge <= 0 {
		config.SessionMaxAge = models.SessionMaxAgeSeconds
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &authService{
		config:    config,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// Login implements AuthService.Login
func (s *authService) Login(ctx context.Context, body []byte) (*Session, error) {
	if !s.config.Configured() {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginUnconfigured).Inc()
		s.logger.Error("Admin credentials are not configured")
		return nil, NewConfigError(errors.New("admin credentials not configured"))
	}

	req, err := s.decode(body)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginBadRequest).Inc()
		return nil, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.config.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.Password)) == 1
	if !userOK || !passOK {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalid).Inc()
		s.logger.WithField("username", req.Username).Warn("Invalid admin login attempt")
		return nil, NewUnauthorizedError(MsgInvalidCredentials)
	}

	now := s.now()
	session := &Session{
		Token:    NewSessionToken(now),
		MaxAge:   s.config.SessionMaxAge,
		IssuedAt: now,
	}

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	s.logger.WithField("username", req.Username).Info("Admin login successful")

	return session, nil
}

func (s *authService) decode(body []byte) (*LoginRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, NewBadRequestError(MsgMissingCredentials, errors.New("empty body"))
	}

	var req LoginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, NewBadRequestError(MsgInvalidJSON, err)
	}

	if err := s.validator.Struct(&req); err != nil {
		return nil, NewBadRequestError(MsgMissingCredentials, fmt.Errorf("validation failed: %w", err))
	}

	return &req, nil
}

// NewSessionToken returns an opaque token made of the issue time and a
// random suffix.
func NewSessionToken(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + "-" + uuid.NewString()
}
