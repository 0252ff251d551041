// Package auth implements the login flow: credential validation, the
// /auth/login exchange, bundle decoding, and the client-side role check that
// gates the session before it is ever marked authenticated.
package auth

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/internal/config"
	errs "github.com/servly/admin-console/internal/errors"
	"github.com/servly/admin-console/session"
)

const loginPath = "/auth/login"

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service drives the session store through the authentication state machine.
type Service struct {
	api          *api.Client
	sessions     *session.Store
	validate     *validator.Validate
	requiredRole string
	log          zerolog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets a structured logger for the service.
func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

// NewService creates the authentication service.
func NewService(cfg config.AuthConfig, client *api.Client, sessions *session.Store, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[auth.NewService] api client is required")
	}
	if sessions == nil {
		return nil, errors.New("[auth.NewService] session store is required")
	}

	s := &Service{
		api:          client,
		sessions:     sessions,
		validate:     validator.New(),
		requiredRole: cfg.GetRequiredRole(),
		log:          zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login exchanges credentials for a session. Every failure is non-fatal: the
// store lands in AuthFailed with a display reason and the caller may retry.
// A bundle whose role is not the required role is rejected here even though
// the server accepted the credentials.
func (s *Service) Login(ctx context.Context, creds Credentials) error {
	if err := s.validate.Struct(creds); err != nil {
		s.sessions.FailLogin("invalid email or password")
		return errors.Wrap(errs.ErrInvalidCredentials, "[Service.Login] validation")
	}

	s.sessions.BeginLogin()

	encoded, err := api.Post[string](ctx, s.api, loginPath, creds)
	if err != nil {
		reason := loginFailureReason(err)
		s.sessions.FailLogin(reason)
		s.log.Warn().Str("reason", reason).Msg("login rejected")
		return errors.Wrap(err, "[Service.Login] login call")
	}

	bundle, err := DecodeBundle(encoded)
	if err != nil {
		s.sessions.FailLogin("could not read login response")
		return errors.Wrap(err, "[Service.Login] decoding bundle")
	}

	if !strings.EqualFold(bundle.Role, s.requiredRole) {
		s.sessions.FailLogin("unauthorized: only " + s.requiredRole + "s allowed")
		s.log.Warn().Str("role", bundle.Role).Msg("login rejected: role mismatch")
		return errors.Wrapf(errs.ErrForbiddenRole, "[Service.Login] role %q", bundle.Role)
	}

	if err := s.sessions.CompleteLogin(bundle); err != nil {
		return errors.Wrap(err, "[Service.Login] completing login")
	}
	s.log.Info().Str("email", bundle.Email).Msg("logged in")
	return nil
}

// Logout clears the session. The API holds no server-side session for the
// console, so no call goes out.
func (s *Service) Logout() {
	s.sessions.Logout()
	s.log.Info().Msg("logged out")
}

// loginFailureReason converts a transport outcome into the message shown on
// the sign-in form.
func loginFailureReason(err error) string {
	var business *api.BusinessError
	if errors.As(err, &business) {
		return business.Message
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return "Login failed"
}
