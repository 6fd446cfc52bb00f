package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// CIMStorage implements the CIMStorage interface for Badger
type CIMStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.CIMStorage = (*CIMStorage)(nil)

// NewCIMStorage creates a new CIMStorage instance
func NewCIMStorage(db *BadgerDB, logger arbor.ILogger) *CIMStorage {
	return &CIMStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CIMStorage) StoreDocument(ctx context.Context, doc *models.CIMDocument) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if err := s.db.Store().Upsert(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	return nil
}

func (s *CIMStorage) GetDocument(ctx context.Context, id string) (*models.CIMDocument, error) {
	var doc models.CIMDocument
	if err := s.db.Store().Get(id, &doc); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("document not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (s *CIMStorage) ListDocuments(ctx context.Context) ([]*models.CIMDocument, error) {
	var docs []models.CIMDocument
	if err := s.db.Store().Find(&docs, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := make([]*models.CIMDocument, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

func (s *CIMStorage) DeleteDocument(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.CIMDocument{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *CIMStorage) CountDocuments(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.CIMDocument{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return int(count), nil
}

// DeleteStaleDrafts removes draft documents not updated since the cutoff.
// Documents in review or beyond are never swept.
func (s *CIMStorage) DeleteStaleDrafts(ctx context.Context, olderThan time.Time) (int, error) {
	var drafts []models.CIMDocument
	query := badgerhold.Where("Status").Eq(models.StatusDraft).And("UpdatedAt").Lt(olderThan)
	if err := s.db.Store().Find(&drafts, query); err != nil {
		return 0, fmt.Errorf("failed to find stale drafts: %w", err)
	}

	deleted := 0
	for i := range drafts {
		if err := s.DeleteDocument(ctx, drafts[i].ID); err != nil {
			s.logger.Warn().Err(err).Str("id", drafts[i].ID).Msg("Failed to delete stale draft")
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (s *CIMStorage) ClearAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&models.CIMDocument{}, badgerhold.Where("ID").Ne("")); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	return nil
}
