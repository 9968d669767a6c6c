package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nearby/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&db_models.SearchLog{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestSearchLogRepository_Record(t *testing.T) {
	repo := NewSearchLogRepository(newTestDB(t))
	entry := &db_models.SearchLog{TraceID: "trace-1", Location: "Paris", Category: "Cafes", ResultCount: 5}

	require.NoError(t, repo.Record(context.Background(), entry))
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.NotZero(t, entry.CreatedAt)

	logs, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entry.ID, logs[0].ID)
	assert.Equal(t, "Paris", logs[0].Location)
	assert.Equal(t, 5, logs[0].ResultCount)
	assert.False(t, logs[0].Failed)
}

func TestSearchLogRepository_RecentNewestFirst(t *testing.T) {
	repo := NewSearchLogRepository(newTestDB(t))
	ctx := context.Background()

	for i, category := range []string{"Restaurants", "Cafes", "Parks", "Museums", "Shops"} {
		entry := &db_models.SearchLog{Location: "Rome", Category: category}
		entry.CreatedAt = int64(1_700_000_000 + i)
		require.NoError(t, repo.Record(ctx, entry))
	}

	logs, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "Shops", logs[0].Category)
	assert.Equal(t, "Museums", logs[1].Category)
	assert.Equal(t, "Parks", logs[2].Category)

	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit falls back to the default")
}

func TestSearchLogRepository_ClosedDB(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	repo := NewSearchLogRepository(db)
	assert.Error(t, repo.Record(context.Background(), &db_models.SearchLog{Location: "Oslo", Category: "Parks"}))
	_, err = repo.Recent(context.Background(), 5)
	assert.Error(t, err)
}

func TestNoopSearchLogRepository(t *testing.T) {
	repo := NewNoopSearchLogRepository()
	require.NoError(t, repo.Record(context.Background(), &db_models.SearchLog{}))

	logs, err := repo.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}
