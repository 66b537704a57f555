package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/models"
	"github.com/pnext5524-creator/sekretar/pkg/kvstore"
)

type failingStore struct {
	kvstore.Store
	setErr error
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.Store.Set(ctx, key, value)
}

func TestArchiveAppendPrependsDraft(t *testing.T) {
	repo := NewArchiveRepository(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	first, err := repo.Append(ctx, "scan.pdf", "application/pdf", "Отказать", "Уважаемый ...")
	require.NoError(t, err)
	assert.Equal(t, models.ArchiveStatusDraft, first.Status)
	assert.NotEmpty(t, first.ID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "scan.pdf", items[0].FileName)
	assert.Equal(t, "Отказать", items[0].Instruction)

	second, err := repo.Append(ctx, "photo.jpg", "image/jpeg", "Удовлетворить", "Текст")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestArchiveTimestampsNonDecreasing(t *testing.T) {
	repo := NewArchiveRepository(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }
	first, err := repo.Append(ctx, "a.pdf", "application/pdf", "x", "y")
	require.NoError(t, err)

	// Clock regression must not produce an earlier timestamp.
	repo.now = func() time.Time { return base.Add(-time.Hour) }
	second, err := repo.Append(ctx, "b.pdf", "application/pdf", "x", "y")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, second.Timestamp, first.Timestamp)
}

func TestArchiveAppendSurvivesPersistFailure(t *testing.T) {
	store := &failingStore{Store: kvstore.NewMemory(), setErr: errors.New("quota exceeded")}
	repo := NewArchiveRepository(store, zap.NewNop())

	item, err := repo.Append(context.Background(), "scan.pdf", "application/pdf", "Отказать", "Текст")
	require.NoError(t, err)
	assert.Equal(t, models.ArchiveStatusDraft, item.Status)

	// Entry was not persisted, so a fresh read comes back empty.
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestArchiveListCorruptPayload(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), archiveKey, []byte("{{not json")))
	repo := NewArchiveRepository(store, zap.NewNop())

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestArchiveRemove(t *testing.T) {
	repo := NewArchiveRepository(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	item, err := repo.Append(ctx, "scan.pdf", "application/pdf", "Отказать", "Текст")
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, "missing-id"))
	items, _ := repo.List(ctx)
	assert.Len(t, items, 1)

	require.NoError(t, repo.Remove(ctx, item.ID))
	items, _ = repo.List(ctx)
	assert.Empty(t, items)
}

func TestArchiveMarkSent(t *testing.T) {
	repo := NewArchiveRepository(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	item, err := repo.Append(ctx, "scan.pdf", "application/pdf", "Отказать", "Текст")
	require.NoError(t, err)

	updated, err := repo.MarkSent(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ArchiveStatusSent, updated.Status)

	items, _ := repo.List(ctx)
	assert.Equal(t, models.ArchiveStatusSent, items[0].Status)

	_, err = repo.MarkSent(ctx, "missing-id")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}
