package services

import (
	"context"
	"log/slog"

	"salesdash/pkg/contracts/domain"
)

// RecordStore is the row-level CRUD surface of a writable record store.
type RecordStore interface {
	Append(ctx context.Context, record domain.SalesRecord) error
	ReadRow(ctx context.Context, index int) (domain.StoredRow, error)
	UpdateRow(ctx context.Context, index int, record domain.SalesRecord) error
	DeleteRow(ctx context.Context, index int) error
}

// RecordService edits individual rows of the record store. Store errors are
// passed through unchanged so callers see the operation that failed.
type RecordService struct {
	store  RecordStore
	logger *slog.Logger
}

// NewRecordService creates a record service. A nil store makes every call
// fail with ErrReadOnlySource.
func NewRecordService(store RecordStore, logger *slog.Logger) *RecordService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordService{
		store:  store,
		logger: logger.With(slog.String("service", "records")),
	}
}

// Create appends record after the last data row.
func (s *RecordService) Create(ctx context.Context, record domain.SalesRecord) error {
	if s.store == nil {
		return ErrReadOnlySource
	}

	record.Derive()
	if err := s.store.Append(ctx, record); err != nil {
		s.logFailure(ctx, "append", 0, err)
		return err
	}

	s.logger.InfoContext(ctx, "record appended",
		slog.Int("store", record.Store),
		slog.String("date", domain.FormatDate(record.Date)))
	return nil
}

// Get reads the record at the 1-based row index.
func (s *RecordService) Get(ctx context.Context, index int) (domain.StoredRow, error) {
	if s.store == nil {
		return domain.StoredRow{}, ErrReadOnlySource
	}

	row, err := s.store.ReadRow(ctx, index)
	if err != nil {
		s.logFailure(ctx, "read", index, err)
		return domain.StoredRow{}, err
	}
	return row, nil
}

// Update overwrites the row at index.
func (s *RecordService) Update(ctx context.Context, index int, record domain.SalesRecord) error {
	if s.store == nil {
		return ErrReadOnlySource
	}

	record.Derive()
	if err := s.store.UpdateRow(ctx, index, record); err != nil {
		s.logFailure(ctx, "update", index, err)
		return err
	}

	s.logger.InfoContext(ctx, "record updated", slog.Int("row", index))
	return nil
}

// Delete removes the row at index. Later rows shift up by one.
func (s *RecordService) Delete(ctx context.Context, index int) error {
	if s.store == nil {
		return ErrReadOnlySource
	}

	if err := s.store.DeleteRow(ctx, index); err != nil {
		s.logFailure(ctx, "delete", index, err)
		return err
	}

	s.logger.InfoContext(ctx, "record deleted", slog.Int("row", index))
	return nil
}

func (s *RecordService) logFailure(ctx context.Context, op string, index int, err error) {
	s.logger.WarnContext(ctx, "record operation failed",
		slog.String("operation", op),
		slog.Int("row", index),
		slog.String("error", err.Error()))
}
