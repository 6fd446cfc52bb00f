package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/models"
)

func newTestStorage(t *testing.T) *CIMStorage {
	t.Helper()

	logger := arbor.NewLogger()
	db, err := NewBadgerDB(logger, &common.BadgerConfig{Path: t.TempDir() + "/db"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewCIMStorage(db, logger)
}

func testDocument(id string) *models.CIMDocument {
	return &models.CIMDocument{
		ID:          id,
		Title:       "Acme Corp - Confidential Information Memorandum",
		CompanyName: "Acme Corp",
		Status:      models.StatusDraft,
		Sections: map[string]*models.Section{
			models.SectionExecutiveSummary: {Title: "Executive Summary", Order: 1, Content: models.TextContent("Summary.")},
		},
	}
}

func TestStoreAndGetDocument(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	doc := testDocument("cim_1")
	require.NoError(t, storage.StoreDocument(ctx, doc))
	assert.False(t, doc.CreatedAt.IsZero())
	assert.False(t, doc.UpdatedAt.IsZero())

	loaded, err := storage.GetDocument(ctx, "cim_1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", loaded.CompanyName)
	require.Contains(t, loaded.Sections, models.SectionExecutiveSummary)
	assert.Equal(t, "Summary.", loaded.Sections[models.SectionExecutiveSummary].Content.Text)
}

func TestStoreDocument_RequiresID(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.StoreDocument(context.Background(), &models.CIMDocument{})
	require.Error(t, err)
}

func TestGetDocument_NotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetDocument(context.Background(), "cim_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListAndCountDocuments(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.StoreDocument(ctx, testDocument("cim_1")))
	require.NoError(t, storage.StoreDocument(ctx, testDocument("cim_2")))

	docs, err := storage.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	count, err := storage.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDeleteDocument(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.StoreDocument(ctx, testDocument("cim_1")))
	require.NoError(t, storage.DeleteDocument(ctx, "cim_1"))

	_, err := storage.GetDocument(ctx, "cim_1")
	require.Error(t, err)

	// Deleting an absent document is not an error.
	assert.NoError(t, storage.DeleteDocument(ctx, "cim_1"))
}

func TestDeleteStaleDrafts(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	stale := testDocument("cim_stale")
	require.NoError(t, storage.StoreDocument(ctx, stale))

	approved := testDocument("cim_approved")
	approved.Status = models.StatusApproved
	require.NoError(t, storage.StoreDocument(ctx, approved))

	fresh := testDocument("cim_fresh")
	require.NoError(t, storage.StoreDocument(ctx, fresh))

	// A cutoff in the past deletes nothing.
	deleted, err := storage.DeleteStaleDrafts(ctx, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	// A cutoff in the future sweeps every draft but never other statuses.
	deleted, err = storage.DeleteStaleDrafts(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// Non-draft documents survive regardless of age.
	_, err = storage.GetDocument(ctx, "cim_approved")
	assert.NoError(t, err)
}

func TestClearAll(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.StoreDocument(ctx, testDocument("cim_1")))
	require.NoError(t, storage.StoreDocument(ctx, testDocument("cim_2")))
	require.NoError(t, storage.ClearAll(ctx))

	count, err := storage.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
