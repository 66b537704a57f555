package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
	"github.com/pnext5524-creator/sekretar/pkg/kvstore"
)

func newUserRepo(t *testing.T) *UserRepository {
	t.Helper()
	return NewUserRepository(kvstore.NewMemory(), zap.NewNop())
}

func TestListAllSeedsDefaults(t *testing.T) {
	repo := newUserRepo(t)

	accounts, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	byUsername := map[string]models.UserAccount{}
	for _, a := range accounts {
		byUsername[a.Username] = a
	}
	admin, ok := byUsername["admin"]
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	// Seed credentials are hashed, never stored in plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")))

	user, ok := byUsername["test"]
	require.True(t, ok)
	assert.Equal(t, models.RoleUser, user.Role)

	// Second access reads the persisted seed, no duplicate seeding.
	again, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, 2)
	assert.Equal(t, accounts[0].ID, again[0].ID)
}

func TestAddRejectsDuplicateUsername(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	before, err := repo.ListAll(ctx)
	require.NoError(t, err)

	_, err = repo.Add(ctx, models.NewUserRequest{
		Username: "admin",
		Password: "secret",
		Name:     "Дубль",
		Email:    "dup@gov.ru",
		Role:     models.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	after, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAddAssignsIDAndHashesPassword(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	account, err := repo.Add(ctx, models.NewUserRequest{
		Username: "ivanova",
		Password: "secret",
		Name:     "Иванова Мария Петровна",
		Email:    "m.ivanova@gov.ru",
		Position: "Специалист",
		Role:     models.RoleUser,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.NotEqual(t, "secret", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret")))

	accounts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestRemoveLastAdminRejected(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	accounts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	var adminID string
	for _, a := range accounts {
		if a.Role == models.RoleAdmin {
			adminID = a.ID
		}
	}
	require.NotEmpty(t, adminID)

	err = repo.Remove(ctx, adminID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	after, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestRemoveNonLastAdminSucceeds(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	second, err := repo.Add(ctx, models.NewUserRequest{
		Username: "admin2",
		Password: "secret",
		Name:     "Второй Администратор",
		Email:    "admin2@gov.ru",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, second.ID))

	after, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Remove(ctx, "missing"))
	after, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestFindByUsername(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	account, err := repo.FindByUsername(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, "Орлов Дмитрий Сергеевич", account.Name)

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}
