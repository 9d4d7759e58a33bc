package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports/mocks"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userTestDeps struct {
	svc      ports.UserService
	userRepo *mocks.MockUserRepository
	tokenSvc *mocks.MockTokenService
	ctrl     *gomock.Controller
}

func setupUserService(t *testing.T) *userTestDeps {
	ctrl := gomock.NewController(t)
	d := &userTestDeps{
		userRepo: mocks.NewMockUserRepository(ctrl),
		tokenSvc: mocks.NewMockTokenService(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewUserService(d.userRepo, d.tokenSvc, zerolog.Nop())
	return d
}

func TestUserService_Login_ExistingUser(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	user := &domain.User{ID: uuid.New(), WalletAddress: wallet, IsActive: true}
	expiry := time.Now().Add(time.Hour)

	d.userRepo.EXPECT().GetByWalletAddress(ctx, wallet).Return(user, nil)
	d.tokenSvc.EXPECT().Generate(user.ID, wallet).Return("jwt-token", expiry, nil)

	result, err := d.svc.Login(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "jwt-token", result.Token)
	assert.False(t, result.Created)
}

func TestUserService_Login_CreatesOnFirstLogin(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := "FirstTimeWallet1111111111111111111111111111"

	d.userRepo.EXPECT().GetByWalletAddress(ctx, wallet).Return(nil, nil)
	d.userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			assert.Equal(t, wallet, u.WalletAddress)
			assert.True(t, u.IsActive)
			return nil
		})
	d.tokenSvc.EXPECT().Generate(gomock.Any(), wallet).Return("jwt-token", time.Now().Add(time.Hour), nil)

	result, err := d.svc.Login(ctx, wallet)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, wallet, result.User.WalletAddress)
}

func TestUserService_Login_EmptyWallet(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Login(context.Background(), "")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_002", appErr.Code)
}

func TestUserService_Login_InactiveUser(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := "DeactivatedWallet11111111111111111111111111"
	user := &domain.User{ID: uuid.New(), WalletAddress: wallet, IsActive: false}

	d.userRepo.EXPECT().GetByWalletAddress(ctx, wallet).Return(user, nil)

	_, err := d.svc.Login(ctx, wallet)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_003", appErr.Code)
}

func TestUserService_Create_DuplicateWallet(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := "ExistingWallet11111111111111111111111111111"

	d.userRepo.EXPECT().GetByWalletAddress(ctx, wallet).
		Return(&domain.User{ID: uuid.New(), WalletAddress: wallet}, nil)

	_, err := d.svc.Create(ctx, ports.CreateUserRequest{WalletAddress: wallet})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "USER_001", appErr.Code)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()

	d.userRepo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	_, err := d.svc.GetByID(ctx, id)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "RES_001", appErr.Code)
}

func TestUserService_Login_DatabaseError(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.userRepo.EXPECT().GetByWalletAddress(ctx, gomock.Any()).
		Return(nil, errors.New("connection refused"))

	_, err := d.svc.Login(ctx, "SomeWallet")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}
