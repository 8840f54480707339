package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bloghub-backend/internal/domains/user/model"
	"bloghub-backend/internal/domains/user/repository"
	"bloghub-backend/pkg/jwt"
	"bloghub-backend/pkg/logger"
)

// =====================================================
// SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// Signup creates a new account awaiting admin approval.
	Signup(ctx context.Context, req model.SignupRequest) (*model.UserDTO, error)

	// Login authenticates an approved user and issues a token pair.
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)

	// Profile returns the account behind a validated token.
	Profile(ctx context.Context, id uuid.UUID) (*model.UserDTO, error)

	List(ctx context.Context) ([]*model.User, error)
	ListPendingApproval(ctx context.Context) ([]*model.User, error)
	Approve(ctx context.Context, id uuid.UUID) (*model.User, error)
	Reject(ctx context.Context, id uuid.UUID) error

	// CountPendingApproval feeds the admin notification badge.
	CountPendingApproval(ctx context.Context) (int, error)
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type userService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

func NewUserService(
	userRepo repository.UserRepository,
	jwtManager *jwt.Manager,
) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// =====================================================
// SIGNUP
// =====================================================

func (s *userService) Signup(ctx context.Context, req model.SignupRequest) (*model.UserDTO, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Hash password. Cost 12 balances security and latency.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Step 3: Create account. The unique index on email settles
	// concurrent signups, no pre-check needed.
	u := &model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		IsApproved:   false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, model.ErrEmailAlreadyExists) {
			return nil, model.NewEmailExistsError()
		}
		return nil, model.NewStorageError(err)
	}

	logger.Info("user signed up", map[string]interface{}{
		"user_id": u.ID.String(),
		"email":   u.Email,
	})

	dto := u.ToDTO()
	return &dto, nil
}

// =====================================================
// LOGIN
// =====================================================

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Look up account. Unknown email and bad password collapse
	// into the same error so the endpoint does not leak which it was.
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, model.NewStorageError(err)
	}

	// Step 3: Verify password. bcrypt comparison is constant-time.
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	// Step 4: Approval gate. Password is checked first so the pending
	// message is only shown to the account owner.
	if !u.IsApproved {
		return nil, model.NewNotApprovedError()
	}

	// Step 5: Issue token pair
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, "user")
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		User:         u.ToDTO(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// =====================================================
// PROFILE
// =====================================================

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*model.UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, model.NewStorageError(err)
	}

	dto := u.ToDTO()
	return &dto, nil
}

// =====================================================
// ADMIN APPROVAL
// =====================================================

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	return users, nil
}

func (s *userService) ListPendingApproval(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.ListPendingApproval(ctx)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	return users, nil
}

func (s *userService) Approve(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.userRepo.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, model.NewStorageError(err)
	}

	logger.Info("user approved", map[string]interface{}{
		"user_id": u.ID.String(),
	})

	return u, nil
}

func (s *userService) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return model.NewStorageError(err)
	}

	logger.Info("user rejected", map[string]interface{}{
		"user_id": id.String(),
	})

	return nil
}

func (s *userService) CountPendingApproval(ctx context.Context) (int, error) {
	return s.userRepo.CountPendingApproval(ctx)
}
