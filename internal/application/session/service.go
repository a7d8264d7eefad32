package session

import (
	"context"
	"fmt"

	"github.com/findr-api/internal/domain"
)

// Service is the mock sign-in: a role selects the first demo user holding
// it. There are no credentials.
type Service interface {
	Login(ctx context.Context, role string) (*domain.User, string, error)
	Current(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	FirstByRole(ctx context.Context, role string) (*domain.User, error)
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

type service struct {
	users  userStore
	signer jwtSigner
}

func NewService(users userStore, signer jwtSigner) Service {
	return &service{users: users, signer: signer}
}

func (s *service) Login(ctx context.Context, role string) (*domain.User, string, error) {
	if role != domain.RoleStudent && role != domain.RoleStaff {
		return nil, "", fmt.Errorf("unknown role %q: %w", role, domain.ErrBadRequest)
	}
	u, err := s.users.FirstByRole(ctx, role)
	if err != nil {
		return nil, "", err
	}
	bearer, err := s.signer.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, bearer, nil
}

func (s *service) Current(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}
