package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register opens an active USER account. Admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := newAccount(in, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// EnsureAdmin provisions the bootstrap ADMIN account when no account owns the
// email yet. An existing account is returned untouched, whatever its role.
func (s *AuthService) EnsureAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case err == nil:
		if existing.Role != domain.RoleAdmin {
			s.logger.Warn().Str("user_id", existing.ID).Msg("bootstrap admin email belongs to a non-admin account")
		}
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	user, err := newAccount(in, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("bootstrap admin created")
	return user, nil
}

func newAccount(in ports.RegisterInput, role string) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, domain.Invalid("name", "is required")
	case email == "" || !strings.Contains(email, "@"):
		return nil, domain.Invalid("email", "must be a valid email")
	case len(in.Password) < minPasswordLength:
		return nil, domain.Invalid("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Bio:          strings.TrimSpace(in.Bio),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Login verifies the credentials and returns a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn().Str("user_id", user.ID).Msg("login rejected for suspended account")
		return "", nil, domain.ErrAccountSuspended
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
