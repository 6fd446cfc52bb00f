package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// fakeStorage records retention calls without a real database.
type fakeStorage struct {
	deleted  int
	cutoff   time.Time
	sweepErr error
}

func (f *fakeStorage) StoreDocument(ctx context.Context, doc *models.CIMDocument) error { return nil }
func (f *fakeStorage) GetDocument(ctx context.Context, id string) (*models.CIMDocument, error) {
	return nil, nil
}
func (f *fakeStorage) ListDocuments(ctx context.Context) ([]*models.CIMDocument, error) {
	return nil, nil
}
func (f *fakeStorage) DeleteDocument(ctx context.Context, id string) error { return nil }
func (f *fakeStorage) CountDocuments(ctx context.Context) (int, error)     { return 0, nil }
func (f *fakeStorage) ClearAll(ctx context.Context) error                  { return nil }

func (f *fakeStorage) DeleteStaleDrafts(ctx context.Context, olderThan time.Time) (int, error) {
	f.cutoff = olderThan
	return f.deleted, f.sweepErr
}

var _ interfaces.CIMStorage = (*fakeStorage)(nil)

func TestNewSweeper_InvalidMaxAge(t *testing.T) {
	_, err := NewSweeper(&common.RetentionConfig{
		Schedule: "0 */6 * * *",
		MaxAge:   "thirty days",
	}, &fakeStorage{}, arbor.NewLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_age")
}

func TestNewSweeper_InvalidSchedule(t *testing.T) {
	_, err := NewSweeper(&common.RetentionConfig{
		Schedule: "* * * * *",
		MaxAge:   "720h",
	}, &fakeStorage{}, arbor.NewLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule")
}

func TestStart_DisabledIsNoop(t *testing.T) {
	sweeper, err := NewSweeper(&common.RetentionConfig{
		Enabled:  false,
		Schedule: "0 */6 * * *",
		MaxAge:   "720h",
	}, &fakeStorage{}, arbor.NewLogger())
	require.NoError(t, err)

	assert.NoError(t, sweeper.Start())
	sweeper.Stop()
}

func TestSweep_UsesMaxAgeCutoff(t *testing.T) {
	storage := &fakeStorage{deleted: 3}
	sweeper, err := NewSweeper(&common.RetentionConfig{
		Schedule: "0 */6 * * *",
		MaxAge:   "24h",
	}, storage, arbor.NewLogger())
	require.NoError(t, err)

	before := time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, sweeper.Sweep(context.Background()))
	after := time.Now().UTC().Add(-24 * time.Hour)

	assert.False(t, storage.cutoff.Before(before))
	assert.False(t, storage.cutoff.After(after))
}

func TestSweep_PropagatesStorageError(t *testing.T) {
	storage := &fakeStorage{sweepErr: errors.New("store closed")}
	sweeper, err := NewSweeper(&common.RetentionConfig{
		Schedule: "0 */6 * * *",
		MaxAge:   "24h",
	}, storage, arbor.NewLogger())
	require.NoError(t, err)

	assert.Error(t, sweeper.Sweep(context.Background()))
}

func TestStartAndStop(t *testing.T) {
	sweeper, err := NewSweeper(&common.RetentionConfig{
		Enabled:  true,
		Schedule: "0 */6 * * *",
		MaxAge:   "720h",
	}, &fakeStorage{}, arbor.NewLogger())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start())
	sweeper.Stop()
}
