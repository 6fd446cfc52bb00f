package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
)

// Manager coordinates the Badger-backed storage lifecycle
type Manager struct {
	config *common.BadgerConfig
	logger arbor.ILogger
	db     *BadgerDB
	cims   *CIMStorage
}

// Compile-time assertion
var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager creates a storage manager for the configured Badger path
func NewManager(config *common.BadgerConfig, logger arbor.ILogger) *Manager {
	return &Manager{
		config: config,
		logger: logger,
	}
}

// Initialize opens the database and wires document storage
func (m *Manager) Initialize(ctx context.Context) error {
	db, err := NewBadgerDB(m.logger, m.config)
	if err != nil {
		return fmt.Errorf("storage initialization: %w", err)
	}

	m.db = db
	m.cims = NewCIMStorage(db, m.logger)

	m.logger.Info().Str("path", m.config.Path).Msg("Storage initialized")
	return nil
}

// CIMStorage returns the document storage implementation
func (m *Manager) CIMStorage() interfaces.CIMStorage {
	return m.cims
}

// Close shuts down the database
func (m *Manager) Close() error {
	if m.db != nil {
		m.logger.Debug().Msg("Closing storage")
		return m.db.Close()
	}
	return nil
}
