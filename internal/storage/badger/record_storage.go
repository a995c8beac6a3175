package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

// RecordStorage implements the RecordStorage interface for Badger
type RecordStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewRecordStorage creates a new RecordStorage instance
func NewRecordStorage(db *BadgerDB, logger arbor.ILogger) interfaces.RecordStorage {
	return &RecordStorage{
		db:     db,
		logger: logger,
	}
}

func (s *RecordStorage) GetAll(ctx context.Context) ([]*models.JobRecord, error) {
	var records []models.JobRecord
	if err := s.db.Store().Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	out := make([]*models.JobRecord, 0, len(records))
	for i := range records {
		out = append(out, &records[i])
	}
	return out, nil
}

func (s *RecordStorage) Get(ctx context.Context, id string) (*models.JobRecord, error) {
	var record models.JobRecord
	err := s.db.Store().Get(id, &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, interfaces.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", id, err)
	}
	return &record, nil
}

func (s *RecordStorage) Put(ctx context.Context, id string, record *models.JobRecord) error {
	if id == "" {
		return fmt.Errorf("record id cannot be empty")
	}
	if record.ID != id {
		return fmt.Errorf("record id %q does not match key %q", record.ID, id)
	}
	if err := s.db.Store().Upsert(id, record); err != nil {
		return fmt.Errorf("failed to save record %s: %w", id, err)
	}
	s.logger.Debug().Str("record_id", id).Msg("Record saved")
	return nil
}

func (s *RecordStorage) Delete(ctx context.Context, id string) (bool, error) {
	err := s.db.Store().Delete(id, &models.JobRecord{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	s.logger.Debug().Str("record_id", id).Msg("Record deleted")
	return true, nil
}

func (s *RecordStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.JobRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return int(count), nil
}
