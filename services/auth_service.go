package services

import (
	"context"
	"strings"
	"time"

	"ngi/errors"
	"ngi/services/logger"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

const DefaultTokenTTL = 3 * 24 * time.Hour

// GoogleVerifier checks a Google ID token for audience
type GoogleVerifier func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type AuthServiceOptions struct {
	Username       string
	Password       string
	Secret         string
	GoogleClientID string
	AdminEmails    []string
	TokenTTL       time.Duration
	Logger         logger.Logger
	Now            func() time.Time
	Verify         GoogleVerifier
}

// AuthService signs in the single admin account
type AuthService struct {
	username       string
	passwordHash   []byte
	secret         []byte
	googleClientID string
	adminEmails    map[string]bool
	ttl            time.Duration
	logger         logger.Logger
	now            func() time.Time
	verify         GoogleVerifier
}

// NewAuthService hashes the configured password once at boot
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	hash, err := HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	s := &AuthService{
		username:       opts.Username,
		passwordHash:   []byte(hash),
		secret:         []byte(opts.Secret),
		googleClientID: opts.GoogleClientID,
		adminEmails:    make(map[string]bool),
		ttl:            opts.TokenTTL,
		logger:         opts.Logger,
		now:            opts.Now,
		verify:         opts.Verify,
	}
	for _, e := range opts.AdminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			s.adminEmails[e] = true
		}
	}
	if s.ttl == 0 {
		s.ttl = DefaultTokenTTL
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.verify == nil {
		s.verify = idtoken.Validate
	}
	return s, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Login checks username and password and returns an access token
func (s *AuthService) Login(username, password string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(username), s.username) {
		return "", errors.NewAppError(errors.ErrCodeInvalidPassword, "Invalid username or password", errors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", errors.NewAppError(errors.ErrCodeInvalidPassword, "Invalid username or password", errors.ErrUnauthorized)
	}

	s.logger.Info("admin %s signed in", s.username)
	return GenerateToken(AdminInfo{Username: s.username, Method: "password"}, s.secret, s.ttl, s.now())
}

// LoginGoogle accepts a verified Google ID token whose email is an admin's
func (s *AuthService) LoginGoogle(ctx context.Context, token string) (string, error) {
	if s.googleClientID == "" {
		return "", errors.NewAppError(errors.ErrCodeUnauthorized, "Google sign-in is not configured", errors.ErrUnauthorized)
	}

	payload, err := s.verify(ctx, token, s.googleClientID)
	if err != nil {
		return "", errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid Google token", err)
	}

	email, _ := payload.Claims["email"].(string)
	email = strings.ToLower(email)
	if email == "" || !s.adminEmails[email] {
		return "", errors.NewAppError(errors.ErrCodeUnauthorized, "This account is not an admin", errors.ErrUnauthorized)
	}

	s.logger.Info("admin %s signed in with google", email)
	return GenerateToken(AdminInfo{Username: email, Method: "google"}, s.secret, s.ttl, s.now())
}

// Authenticate validates a bearer token
func (s *AuthService) Authenticate(token string) (*AdminInfo, error) {
	return ParseToken(token, s.secret)
}

// TTL is how long issued tokens stay valid
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}
