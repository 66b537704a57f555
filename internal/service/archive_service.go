package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
	"github.com/pnext5524-creator/sekretar/pkg/kvstore"
)

type archiveLog interface {
	List(ctx context.Context) ([]models.ArchiveItem, error)
	Remove(ctx context.Context, id string) error
	MarkSent(ctx context.Context, id string) (*models.ArchiveItem, error)
}

// ArchiveService exposes the generated-response log.
type ArchiveService struct {
	repo   archiveLog
	logger *zap.Logger
}

// NewArchiveService creates an instance of ArchiveService.
func NewArchiveService(repo archiveLog, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{repo: repo, logger: logger}
}

// List returns the archive, newest-first.
func (s *ArchiveService) List(ctx context.Context) ([]models.ArchiveItem, error) {
	return s.repo.List(ctx)
}

// Search filters the archive by a case-insensitive substring match
// over the source file name and the instruction. A blank query
// returns the full list.
func (s *ArchiveService) Search(ctx context.Context, query string) ([]models.ArchiveItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items, nil
	}

	matched := make([]models.ArchiveItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.FileName), needle) ||
			strings.Contains(strings.ToLower(item.Instruction), needle) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Delete removes an item; absent ids are a silent no-op.
func (s *ArchiveService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "archive item id is required")
	}
	return s.repo.Remove(ctx, id)
}

// MarkSent flips an item from DRAFT to SENT.
func (s *ArchiveService) MarkSent(ctx context.Context, id string) (*models.ArchiveItem, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "archive item id is required")
	}
	item, err := s.repo.MarkSent(ctx, id)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archive item not found")
		}
		return nil, err
	}
	s.logger.Info("archive item marked as sent", zap.String("item_id", item.ID))
	return item, nil
}
