package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
)

type userDirectory interface {
	ListAll(ctx context.Context) ([]models.UserAccount, error)
	Add(ctx context.Context, req models.NewUserRequest) (*models.UserAccount, error)
	Remove(ctx context.Context, id string) error
}

// UserService handles directory management workflows. It only ever
// hands out stripped profiles; credential hashes never leave the
// repository boundary.
type UserService struct {
	repo      userDirectory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userDirectory, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// List returns every account as a profile without credentials.
func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	accounts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.UserProfile, 0, len(accounts))
	for _, account := range accounts {
		profiles = append(profiles, account.Profile())
	}
	return profiles, nil
}

// Create validates and adds a new account, returning its profile.
func (s *UserService) Create(ctx context.Context, req models.NewUserRequest) (*models.UserProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	account, err := s.repo.Add(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user account created",
		zap.String("user_id", account.ID),
		zap.String("role", string(account.Role)))

	profile := account.Profile()
	return &profile, nil
}

// Delete removes an account by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user account removed", zap.String("user_id", id))
	return nil
}
