package user

import (
	"context"
	"testing"

	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error           { return nil }
func (f *fakeUserRepo) CreateWithWallet(user *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
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
	copied := *user
	f.users[user.ID] = &copied
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
func (f *fakeUserRepo) CountAll() (int64, error)                      { return 0, nil }
func (f *fakeUserRepo) CountVerified() (int64, error)                 { return 0, nil }

type recordingIssuer struct {
	issued []string
}

func (r *recordingIssuer) ResendVerification(_ context.Context, userID uint, codeType string) error {
	r.issued = append(r.issued, codeType)
	return nil
}

func strPtr(s string) *string { return &s }

func hash(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h)
}

func setup() (*fakeUserRepo, *recordingIssuer, Service) {
	repo := &fakeUserRepo{users: map[uint]*models.User{
		1: {ID: 1, FullName: "Phone Only", Phone: strPtr("+15550001111"), IsVerified: true, IsActive: true, HashedPassword: hash("old!pass1"), TokenVersion: 1},
		2: {ID: 2, FullName: "Email User", Email: strPtr("a@b.com"), Phone: strPtr("+15550002222"), IsVerified: true, IsActive: true, HashedPassword: hash("old!pass2"), TokenVersion: 1},
	}}
	issuer := &recordingIssuer{}
	return repo, issuer, NewService(repo, issuer)
}

func TestUpdatePhoneRevokesPhoneVerification(t *testing.T) {
	repo, issuer, svc := setup()

	result, err := svc.UpdatePhone(context.Background(), 1, "+15559998888")
	require.NoError(t, err)
	assert.False(t, result.IsVerified)

	stored := repo.users[1]
	assert.Equal(t, "+15559998888", *stored.Phone)
	assert.False(t, stored.IsVerified)
	assert.Equal(t, []string{models.VerificationTypePhone}, issuer.issued)
}

func TestUpdatePhoneKeepsEmailVerification(t *testing.T) {
	repo, _, svc := setup()

	result, err := svc.UpdatePhone(context.Background(), 2, "+15559997777")
	require.NoError(t, err)
	assert.True(t, result.IsVerified)
	assert.True(t, repo.users[2].IsVerified)
}

func TestUpdatePhoneRejectsDuplicates(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.UpdatePhone(context.Background(), 1, "+15550002222")
	assert.ErrorIs(t, err, ErrPhoneInUse)

	_, err = svc.UpdatePhone(context.Background(), 1, "  ")
	assert.ErrorIs(t, err, ErrPhoneRequired)

	_, err = svc.UpdatePhone(context.Background(), 1, "not-a-phone")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestUpdatePhoneAllowsKeepingOwnNumber(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.UpdatePhone(context.Background(), 2, "+15550002222")
	assert.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	repo, _, svc := setup()

	err := svc.UpdatePassword(2, "wrong", "new!pass99")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.UpdatePassword(2, "old!pass2", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	require.NoError(t, svc.UpdatePassword(2, "old!pass2", "new!pass99"))

	stored := repo.users[2]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("new!pass99")))
	assert.Equal(t, 2, stored.TokenVersion, "existing tokens are invalidated")
}

func TestSetActiveDeactivationBumpsTokenVersion(t *testing.T) {
	repo, _, svc := setup()

	user, err := svc.SetActive(1, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.Equal(t, 2, repo.users[1].TokenVersion)

	// Reactivation does not touch tokens.
	user, err = svc.SetActive(1, true)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Equal(t, 2, repo.users[1].TokenVersion)
}

func TestSetActiveUnknownUser(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.SetActive(99, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
