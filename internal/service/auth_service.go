package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/repository"
	"github.com/soniabinty/gizmorent-server/pkg/auth"
	"github.com/soniabinty/gizmorent-server/pkg/config"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	SocialLogin(ctx context.Context, req *domain.SocialLoginRequest) (*domain.LoginResponse, error)
	GetUser(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, email string, patch *domain.UserPatch) (*domain.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsRenter(ctx context.Context, email string) (bool, error)
}

type authService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

func NewAuthService(userRepo repository.UserRepository, config *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		config:   config,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Photo:        req.Photo,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	}

	// The unique email index turns a duplicate registration into ErrConflict.
	return s.userRepo.Create(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if req.Email == "" || req.Password == "" {
		return nil, domain.ValidationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ForbiddenError("Invalid credentials")
	}

	// The lock flag is checked before the credential comparison; a correct
	// password never bypasses a locked account.
	if user.Locked {
		return nil, domain.ForbiddenError("Account is locked due to repeated failed logins")
	}

	// Social-only accounts carry no password hash; a password login
	// against one is a credential mismatch, not a server fault.
	valid := false
	if user.PasswordHash != "" {
		valid, err = argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
		if err != nil {
			if errors.Is(err, argon2id.ErrInvalidHash) {
				valid = false
			} else {
				return nil, fmt.Errorf("failed to verify password: %w", err)
			}
		}
	}
	if !valid {
		if _, err := s.userRepo.RecordLoginFailure(ctx, req.Email, s.config.Auth.MaxLoginFails); err != nil {
			return nil, fmt.Errorf("failed to record login failure: %w", err)
		}
		return nil, domain.ForbiddenError("Invalid credentials")
	}

	if user.FailedLogins > 0 {
		if err := s.userRepo.ResetLoginFailures(ctx, req.Email); err != nil {
			return nil, fmt.Errorf("failed to reset login failures: %w", err)
		}
	}

	return s.buildLoginResponse(user)
}

func (s *authService) SocialLogin(ctx context.Context, req *domain.SocialLoginRequest) (*domain.LoginResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		// First sight: create with role "user" and no password.
		user = &domain.User{
			Name:      req.Name,
			Email:     email,
			Photo:     req.Photo,
			Role:      domain.RoleUser,
			CreatedAt: time.Now(),
		}
		user, err = s.userRepo.Create(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	return s.buildLoginResponse(user)
}

func (s *authService) buildLoginResponse(user *domain.User) (*domain.LoginResponse, error) {
	token, err := auth.NewAccessToken(user.Email, user.Role, s.config.Auth.JWTSecret, s.config.Auth.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:        user.ToUserInfo(),
	}, nil
}

func (s *authService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.NotFoundError("User not found")
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *authService) UpdateUser(ctx context.Context, email string, patch *domain.UserPatch) (*domain.User, error) {
	if patch.NewPassword != nil {
		if patch.CurrentPassword == nil {
			return nil, domain.ValidationError("Current password is required to set a new password")
		}
		if len(*patch.NewPassword) < 6 {
			return nil, domain.ValidationError("Password must be at least 6 characters")
		}

		user, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		if user == nil {
			return nil, domain.NotFoundError("User not found")
		}

		valid := false
		if user.PasswordHash != "" {
			valid, err = argon2id.ComparePasswordAndHash(*patch.CurrentPassword, user.PasswordHash)
			if err != nil && !errors.Is(err, argon2id.ErrInvalidHash) {
				return nil, fmt.Errorf("failed to verify password: %w", err)
			}
		}
		if !valid {
			return nil, domain.ForbiddenError("Current password is incorrect")
		}

		hash, err := argon2id.CreateHash(*patch.NewPassword, argon2id.DefaultParams)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.userRepo.UpdatePasswordHash(ctx, email, hash); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.UpdateProfile(ctx, email, patch.Name, patch.Photo)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFoundError("User not found")
	}
	return user, nil
}

func (s *authService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, domain.RoleAdmin)
}

func (s *authService) IsRenter(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, domain.RoleRenter)
}

// hasRole reports false for unknown users rather than an error.
func (s *authService) hasRole(ctx context.Context, email, role string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return false, nil
	}
	return user.Role == role, nil
}
