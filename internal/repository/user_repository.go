package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
	"github.com/pnext5524-creator/sekretar/pkg/kvstore"
)

const usersKey = "sekretar:users:v1"

// UserRepository owns the user directory. Unlike the archive, the
// directory holds credentials, so it is seeded lazily with two
// built-in accounts (one admin, one regular user) whose passwords are
// hashed at rest.
type UserRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewUserRepository constructs the repository.
func NewUserRepository(store kvstore.Store, logger *zap.Logger) *UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserRepository{store: store, logger: logger}
}

// ListAll returns every account including credentials, seeding the
// store on first access.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.UserAccount, error) {
	data, err := r.store.Get(ctx, usersKey)
	if err != nil {
		if err != kvstore.ErrNotFound {
			r.logger.Warn("failed to read user directory", zap.Error(err))
		}
		return r.seed(ctx), nil
	}

	var accounts []models.UserAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		r.logger.Warn("corrupt user directory payload, reseeding", zap.Error(err))
		return r.seed(ctx), nil
	}
	return accounts, nil
}

// Add inserts a new account. Colliding usernames are rejected without
// mutating the store.
func (r *UserRepository) Add(ctx context.Context, req models.NewUserRequest) (*models.UserAccount, error) {
	accounts, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range accounts {
		if existing.Username == req.Username {
			return nil, appErrors.Clone(appErrors.ErrConflict, "пользователь с таким логином уже существует")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash credential")
	}

	account := models.UserAccount{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		Role:         req.Role,
	}

	accounts = append(accounts, account)
	r.persist(ctx, accounts)
	return &account, nil
}

// Remove deletes the account with the given id. Removing the sole
// remaining admin is rejected without mutating the store; absent ids
// are a no-op.
func (r *UserRepository) Remove(ctx context.Context, id string) error {
	accounts, err := r.ListAll(ctx)
	if err != nil {
		return err
	}

	var target *models.UserAccount
	admins := 0
	for i := range accounts {
		if accounts[i].Role == models.RoleAdmin {
			admins++
		}
		if accounts[i].ID == id {
			target = &accounts[i]
		}
	}

	if target != nil && target.Role == models.RoleAdmin && admins <= 1 {
		return appErrors.Clone(appErrors.ErrConflict, "нельзя удалить последнего администратора")
	}

	filtered := accounts[:0]
	for _, account := range accounts {
		if account.ID != id {
			filtered = append(filtered, account)
		}
	}
	r.persist(ctx, filtered)
	return nil
}

// FindByUsername returns the full record for an exact username match.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	accounts, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i], nil
		}
	}
	return nil, kvstore.ErrNotFound
}

func (r *UserRepository) seed(ctx context.Context) []models.UserAccount {
	defaults := []struct {
		username string
		password string
		name     string
		email    string
		position string
		role     models.Role
	}{
		{"admin", "admin", "Системный Администратор", "admin@gov.ru", "Руководитель департамента ИТ", models.RoleAdmin},
		{"test", "test", "Орлов Дмитрий Сергеевич", "d.orlov@gov.ru", "Ведущий специалист", models.RoleUser},
	}

	accounts := make([]models.UserAccount, 0, len(defaults))
	for _, d := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			r.logger.Error("failed to hash seed credential", zap.Error(err))
			continue
		}
		accounts = append(accounts, models.UserAccount{
			ID:           uuid.NewString(),
			Username:     d.username,
			PasswordHash: string(hash),
			Name:         d.name,
			Email:        d.email,
			Position:     d.position,
			Role:         d.role,
		})
	}

	r.persist(ctx, accounts)
	return accounts
}

func (r *UserRepository) persist(ctx context.Context, accounts []models.UserAccount) {
	data, err := json.Marshal(accounts)
	if err != nil {
		r.logger.Error("failed to encode user directory", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, usersKey, data); err != nil {
		r.logger.Error("failed to persist user directory, change may be lost on reload", zap.Error(err))
	}
}
