package service

import (
	"context"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type userService struct {
	userRepo ports.UserRepository
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewUserService creates a new user and wallet-login service.
func NewUserService(
	userRepo ports.UserRepository,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) ports.UserService {
	return &userService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Login authenticates by wallet address. The account is created on first
// login; there is no password step, ownership of the wallet is assumed to
// have been proven by the signing frontend.
func (s *userService) Login(ctx context.Context, walletAddress string) (*ports.LoginResult, error) {
	if walletAddress == "" {
		return nil, apperror.ErrWalletRequired()
	}

	user, err := s.userRepo.GetByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	created := false
	if user == nil {
		user = &domain.User{
			ID:            uuid.New(),
			WalletAddress: walletAddress,
			CreatedAt:     time.Now().UTC(),
			IsActive:      true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		created = true
		s.log.Info().
			Str("user_id", user.ID.String()).
			Str("wallet", walletAddress).
			Msg("user created on first login")
	}

	if !user.IsActive {
		return nil, apperror.ErrUserInactive()
	}

	token, expiry, err := s.tokenSvc.Generate(user.ID, user.WalletAddress)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return &ports.LoginResult{
		User:    user,
		Token:   token,
		Expiry:  expiry,
		Created: created,
	}, nil
}

func (s *userService) Create(ctx context.Context, req ports.CreateUserRequest) (*domain.User, error) {
	if req.WalletAddress == "" {
		return nil, apperror.ErrWalletRequired()
	}

	existing, err := s.userRepo.GetByWalletAddress(ctx, req.WalletAddress)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return nil, apperror.ErrWalletExists()
	}

	user := &domain.User{
		ID:            uuid.New(),
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
		Email:         req.Email,
		CreatedAt:     time.Now().UTC(),
		IsActive:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return users, nil
}
