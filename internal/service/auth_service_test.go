package service

import (
	"path/filepath"
	"testing"
	"time"

	"derm-go/internal/dto"
	"derm-go/internal/models"
	"derm-go/internal/repository"
	"derm-go/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	jwtManager := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	return NewAuthService(userRepo, jwtManager), db
}

func registerReq(username, email, password string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(registerReq("alice", "a@x.com", "rightpw"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.NotEqual(t, "rightpw", user.PasswordHash)

	resp, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "rightpw"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(registerReq("alice", "a@x.com", "rightpw"))
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrongpw"})
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(registerReq("alice", "a@x.com", "rightpw"))
	require.NoError(t, err)

	_, wrongPw := svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrongpw"})
	_, unknown := svc.Login(&dto.LoginRequest{Username: "nobody", Password: "rightpw"})

	// 对外不区分用户不存在和密码错误
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, db := newAuthService(t)

	_, err := svc.Register(registerReq("alice", "a@x.com", "rightpw"))
	require.NoError(t, err)

	_, err = svc.Register(registerReq("alice", "other@x.com", "otherpw"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, db := newAuthService(t)

	_, err := svc.Register(registerReq("alice", "a@x.com", "rightpw"))
	require.NoError(t, err)

	_, err = svc.Register(registerReq("bob", "a@x.com", "otherpw"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(registerReq("alice", "a@x.com", "rightpw"))
	require.NoError(t, err)

	info, err := svc.UpdateProfile(user.ID, &dto.ProfileUpdateRequest{Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", info.Email)
	assert.Equal(t, "alice", info.Username)
}

func TestUpdateProfileDuplicate(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(registerReq("alice", "a@x.com", "rightpw"))
	require.NoError(t, err)
	bob, err := svc.Register(registerReq("bob", "b@x.com", "rightpw"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile(bob.ID, &dto.ProfileUpdateRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = svc.UpdateProfile(bob.ID, &dto.ProfileUpdateRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
