package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/memoria/internal/models"
)

// CIMStorage - interface for CIM document persistence
type CIMStorage interface {
	// Document operations
	StoreDocument(ctx context.Context, doc *models.CIMDocument) error
	GetDocument(ctx context.Context, id string) (*models.CIMDocument, error)
	ListDocuments(ctx context.Context) ([]*models.CIMDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	CountDocuments(ctx context.Context) (int, error)

	// Retention operations
	DeleteStaleDrafts(ctx context.Context, olderThan time.Time) (int, error)

	// Bulk operations
	ClearAll(ctx context.Context) error
}

// StorageManager coordinates the storage backend lifecycle
type StorageManager interface {
	// Initialize opens the backing store
	Initialize(ctx context.Context) error

	// CIMStorage returns the document storage implementation
	CIMStorage() CIMStorage

	// Close shuts down the backing store
	Close() error
}
