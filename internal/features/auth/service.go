package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xyz-asif/nagaralert/internal/features/users"
	"github.com/xyz-asif/nagaralert/internal/pkg/jwt"
	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

var (
	ErrNotRegistered     = errors.New("user is not registered")
	ErrAlreadyRegistered = errors.New("user is already registered")
	ErrEmailInUse        = errors.New("email is already in use by another account")
	ErrInvalidSecretCode = errors.New("invalid admin secret code")
)

type Service struct {
	provider    Provider
	users       users.Repository
	jwtConfig   *jwt.Config
	adminSecret string
	now         func() time.Time
}

func NewService(provider Provider, repo users.Repository, jwtConfig *jwt.Config, adminSecret string) *Service {
	return &Service{
		provider:    provider,
		users:       repo,
		jwtConfig:   jwtConfig,
		adminSecret: adminSecret,
		now:         time.Now,
	}
}

// Session signs in a registered user
func (s *Service) Session(ctx context.Context, idToken string) (*SessionResponse, error) {
	id, err := s.provider.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Get(ctx, id.UID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}

	return s.issue(u)
}

// Register stores a new profile. Nothing is written when the email belongs
// to another account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error) {
	id, err := s.provider.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == users.RoleAdmin && subtle.ConstantTimeCompare([]byte(req.SecretCode), []byte(s.adminSecret)) != 1 {
		return nil, ErrInvalidSecretCode
	}

	if _, err := s.users.Get(ctx, id.UID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.UID != id.UID {
		return nil, ErrEmailInUse
	}

	now := s.now()
	u := &users.User{
		UID:       id.UID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Mobile:    strings.TrimSpace(req.Mobile),
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.Mobile == "" {
		u.Mobile = id.Phone
	}
	if role == users.RoleCitizen {
		u.Address = strings.TrimSpace(req.Address)
	} else {
		u.Department = strings.TrimSpace(req.Department)
		u.OfficialID = strings.TrimSpace(req.OfficialID)
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	logger.Info("Registered %s %s", role, u.UID)

	return s.issue(u)
}

// Logout revokes the provider's refresh tokens for uid
func (s *Service) Logout(ctx context.Context, uid string) error {
	return s.provider.SignOut(ctx, uid)
}

func (s *Service) issue(u *users.User) (*SessionResponse, error) {
	token, err := jwt.GenerateToken(u.UID, u.Role, s.jwtConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &SessionResponse{
		AccessToken: token,
		ExpiresAt:   s.now().Add(s.jwtConfig.AccessExpiry),
		User:        u,
	}, nil
}
