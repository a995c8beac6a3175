package badger

import (
	"context"

	"github.com/ternarybob/applytrack/internal/common"
	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	record   interfaces.RecordStorage
	reminder interfaces.ReminderStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		record:   NewRecordStorage(db, logger),
		reminder: NewReminderStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// RecordStorage returns the record storage interface
func (m *Manager) RecordStorage() interfaces.RecordStorage {
	return m.record
}

// ReminderStorage returns the reminder storage interface
func (m *Manager) ReminderStorage() interfaces.ReminderStorage {
	return m.reminder
}

// LoadRecordsFromFiles imports seed records from TOML/YAML files in dirPath
func (m *Manager) LoadRecordsFromFiles(ctx context.Context, dirPath string) (int, error) {
	return LoadRecordsFromFiles(ctx, m.record, dirPath, m.logger)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
