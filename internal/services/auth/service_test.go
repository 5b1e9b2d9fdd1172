package auth

import (
	"context"
	"testing"
	"time"

	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	return f.CreateWithWallet(user)
}

func (f *fakeUserRepo) CreateWithWallet(user *models.User) error {
	for _, u := range f.users {
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return repositories.ErrDuplicateEmail
		}
		if user.Phone != nil && u.Phone != nil && *u.Phone == *user.Phone {
			return repositories.ErrDuplicatePhone
		}
	}
	user.ID = f.nextID
	user.TokenVersion = 1
	user.Wallet = &models.Wallet{UserID: user.ID}
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByPhone(phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone != nil && *u.Phone == phone {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) IncrementTokenVersion(userID uint) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TokenVersion++
	return nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]models.User, error) { return nil, nil }
func (f *fakeUserRepo) CountAll() (int64, error)                      { return int64(len(f.users)), nil }
func (f *fakeUserRepo) CountVerified() (int64, error)                 { return 0, nil }

type fakeCodeRepo struct {
	codes []*models.VerificationCode
}

func (f *fakeCodeRepo) Create(code *models.VerificationCode) error {
	code.ID = uint(len(f.codes) + 1)
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeCodeRepo) LatestValid(userID uint, codeType string, now time.Time) (*models.VerificationCode, error) {
	for i := len(f.codes) - 1; i >= 0; i-- {
		c := f.codes[i]
		if c.UserID == userID && c.Type == codeType && c.Valid(now) {
			return c, nil
		}
	}
	return nil, repositories.ErrCodeNotFound
}

func (f *fakeCodeRepo) MarkUsed(code *models.VerificationCode) error {
	code.IsUsed = true
	return nil
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendVerificationCode(_ context.Context, to, code string) error {
	m.sent = append(m.sent, to+":"+code)
	return nil
}

func newService(t *testing.T) (*fakeUserRepo, *fakeCodeRepo, *recordingMailer, Service) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := newFakeUserRepo()
	codes := &fakeCodeRepo{}
	mail := &recordingMailer{}
	return users, codes, mail, NewService(users, codes, mail)
}

func registerUser(t *testing.T, svc Service) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &models.CreateUserInput{
		FullName: "Alice Tester",
		Email:    "alice@example.com",
		Password: "str0ng!pass",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterCreatesUserWalletAndCode(t *testing.T) {
	_, codes, mail, svc := newService(t)

	user := registerUser(t, svc)

	require.NotNil(t, user.Wallet)
	assert.Equal(t, 0.0, user.Wallet.Balance)
	assert.False(t, user.IsVerified)

	require.Len(t, codes.codes, 1)
	code := codes.codes[0]
	assert.Equal(t, models.VerificationTypeEmail, code.Type)
	assert.Len(t, code.Code, 6)
	assert.True(t, code.ExpiresAt.After(time.Now().Add(59*time.Minute)))

	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0], "alice@example.com:")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, _, _, svc := newService(t)
	registerUser(t, svc)

	_, err := svc.Register(context.Background(), &models.CreateUserInput{
		FullName: "Alice Again",
		Email:    "alice@example.com",
		Password: "str0ng!pass",
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
}

func TestLoginWithEmailAndPhone(t *testing.T) {
	users, _, _, svc := newService(t)
	registerUser(t, svc)

	phone := "+15551234567"
	hashed, _ := bcrypt.GenerateFromPassword([]byte("ph0ne!pass"), bcrypt.DefaultCost)
	require.NoError(t, users.CreateWithWallet(&models.User{
		FullName:       "Bob Phone",
		Phone:          &phone,
		HashedPassword: string(hashed),
		IsActive:       true,
	}))

	user, pair, err := svc.Login("alice@example.com", "str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, "Alice Tester", user.FullName)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)

	user, _, err = svc.Login(phone, "ph0ne!pass")
	require.NoError(t, err)
	assert.Equal(t, "Bob Phone", user.FullName)
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, _, svc := newService(t)
	registerUser(t, svc)

	_, _, err := svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "str0ng!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	users, _, _, svc := newService(t)
	user := registerUser(t, svc)

	user.IsActive = false
	require.NoError(t, users.Update(user))

	_, _, err := svc.Login("alice@example.com", "str0ng!pass")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestRefreshRejectsStaleTokenVersion(t *testing.T) {
	_, _, _, svc := newService(t)
	user := registerUser(t, svc)

	_, pair, err := svc.Login("alice@example.com", "str0ng!pass")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, svc.Logout(user.ID))

	_, err = svc.RefreshTokens(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMarksUserVerified(t *testing.T) {
	users, codes, _, svc := newService(t)
	user := registerUser(t, svc)

	code := codes.codes[0]

	err := svc.Verify(user.ID, models.VerificationTypeEmail, "000000")
	if code.Code != "000000" {
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	require.NoError(t, svc.Verify(user.ID, models.VerificationTypeEmail, code.Code))

	stored, _ := users.GetByID(user.ID)
	assert.True(t, stored.IsVerified)
	assert.True(t, code.IsUsed)

	err = svc.Verify(user.ID, models.VerificationTypeEmail, code.Code)
	assert.ErrorIs(t, err, ErrNoValidCode)
}

func TestVerifyUsesNewestCode(t *testing.T) {
	_, codes, _, svc := newService(t)
	user := registerUser(t, svc)

	first := codes.codes[0]
	require.NoError(t, svc.ResendVerification(context.Background(), user.ID, models.VerificationTypeEmail))
	second := codes.codes[1]

	if first.Code != second.Code {
		err := svc.Verify(user.ID, models.VerificationTypeEmail, first.Code)
		assert.ErrorIs(t, err, ErrInvalidCode)
	}
	require.NoError(t, svc.Verify(user.ID, models.VerificationTypeEmail, second.Code))
}

func TestPasswordResetFlow(t *testing.T) {
	users, codes, mail, svc := newService(t)
	user := registerUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))
	require.Len(t, codes.codes, 2)
	reset := codes.codes[1]
	assert.Equal(t, models.VerificationTypePasswordReset, reset.Type)
	assert.Len(t, mail.sent, 2)

	err := svc.ResetPassword("alice@example.com", "000000", "fresh!pass1")
	if reset.Code != "000000" {
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	versionBefore := user.TokenVersion
	require.NoError(t, svc.ResetPassword("alice@example.com", reset.Code, "fresh!pass1"))
	assert.True(t, reset.IsUsed)

	stored, _ := users.GetByID(user.ID)
	assert.False(t, stored.IsVerified, "a reset code must not verify the account")
	assert.Equal(t, versionBefore+1, stored.TokenVersion, "sessions revoked")

	_, _, err = svc.Login("alice@example.com", "str0ng!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("alice@example.com", "fresh!pass1")
	require.NoError(t, err)
}

func TestResetPasswordWeakPasswordKeepsCode(t *testing.T) {
	_, codes, _, svc := newService(t)
	registerUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))
	reset := codes.codes[1]

	err := svc.ResetPassword("alice@example.com", reset.Code, "weak")
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.False(t, reset.IsUsed, "a rejected password must not burn the code")

	require.NoError(t, svc.ResetPassword("alice@example.com", reset.Code, "fresh!pass1"))
}

func TestVerifyRejectsResetCodeType(t *testing.T) {
	users, codes, _, svc := newService(t)
	user := registerUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))
	reset := codes.codes[1]

	err := svc.Verify(user.ID, models.VerificationTypePasswordReset, reset.Code)
	assert.ErrorIs(t, err, ErrInvalidCode)

	stored, _ := users.GetByID(user.ID)
	assert.False(t, stored.IsVerified)
	assert.False(t, reset.IsUsed)
}

func TestForgotPasswordUnknownIdentifier(t *testing.T) {
	_, codes, _, svc := newService(t)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	assert.Empty(t, codes.codes)
}

func TestChangePassword(t *testing.T) {
	_, _, _, svc := newService(t)
	user := registerUser(t, svc)

	err := svc.ChangePassword(user.ID, "wrong", "an0ther!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(user.ID, "str0ng!pass", "weak")
	assert.ErrorIs(t, err, ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(user.ID, "str0ng!pass", "an0ther!pass"))

	_, _, err = svc.Login("alice@example.com", "an0ther!pass")
	require.NoError(t, err)
}
