package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/models"
	"github.com/pnext5524-creator/sekretar/pkg/kvstore"
)

const archiveKey = "sekretar:archive:v1"

// ArchiveRepository owns the append-mostly log of generated responses.
// The whole log is persisted as one JSON list, newest-first. Write
// failures are logged and swallowed: the caller's action must not
// appear to fail, at the cost of possibly losing the entry on reload.
type ArchiveRepository struct {
	store  kvstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiveRepository constructs the repository.
func NewArchiveRepository(store kvstore.Store, logger *zap.Logger) *ArchiveRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveRepository{store: store, logger: logger, now: time.Now}
}

// Append creates a new DRAFT item at the head of the log and persists
// the updated list. The created item is returned even when persistence
// fails.
func (r *ArchiveRepository) Append(ctx context.Context, fileName, fileType, instruction, responseText string) (*models.ArchiveItem, error) {
	items := r.load(ctx)

	ts := r.now().UnixMilli()
	// Keep timestamps non-decreasing even if the wall clock regressed.
	if len(items) > 0 && items[0].Timestamp > ts {
		ts = items[0].Timestamp
	}

	item := models.ArchiveItem{
		ID:           uuid.NewString(),
		Timestamp:    ts,
		FileName:     fileName,
		FileType:     fileType,
		Instruction:  instruction,
		ResponseText: responseText,
		Status:       models.ArchiveStatusDraft,
	}

	items = append([]models.ArchiveItem{item}, items...)
	r.persist(ctx, items)

	return &item, nil
}

// List returns the persisted log, newest-first. Missing or corrupt
// data yields an empty list rather than an error.
func (r *ArchiveRepository) List(ctx context.Context) ([]models.ArchiveItem, error) {
	return r.load(ctx), nil
}

// Remove deletes the item with the given id; absent ids are a no-op.
func (r *ArchiveRepository) Remove(ctx context.Context, id string) error {
	items := r.load(ctx)
	filtered := items[:0]
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	r.persist(ctx, filtered)
	return nil
}

// MarkSent flips the status of an item from DRAFT to SENT.
func (r *ArchiveRepository) MarkSent(ctx context.Context, id string) (*models.ArchiveItem, error) {
	items := r.load(ctx)
	for i := range items {
		if items[i].ID == id {
			items[i].Status = models.ArchiveStatusSent
			r.persist(ctx, items)
			updated := items[i]
			return &updated, nil
		}
	}
	return nil, kvstore.ErrNotFound
}

func (r *ArchiveRepository) load(ctx context.Context) []models.ArchiveItem {
	data, err := r.store.Get(ctx, archiveKey)
	if err != nil {
		if err != kvstore.ErrNotFound {
			r.logger.Warn("failed to read archive", zap.Error(err))
		}
		return []models.ArchiveItem{}
	}

	var items []models.ArchiveItem
	if err := json.Unmarshal(data, &items); err != nil {
		r.logger.Warn("corrupt archive payload, treating as empty", zap.Error(err))
		return []models.ArchiveItem{}
	}
	return items
}

func (r *ArchiveRepository) persist(ctx context.Context, items []models.ArchiveItem) {
	data, err := json.Marshal(items)
	if err != nil {
		r.logger.Error("failed to encode archive", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, archiveKey, data); err != nil {
		r.logger.Error("failed to persist archive, entry may be lost on reload", zap.Error(err))
	}
}
