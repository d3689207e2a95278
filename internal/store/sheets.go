package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"salesdash/internal/config"
	"salesdash/internal/dataprocessing"
	apperrors "salesdash/internal/errors"
	"salesdash/internal/infrastructure"
	"salesdash/pkg/contracts/domain"
)

// BackendSheets names the Google Sheets backend in logs and metrics.
const BackendSheets = "sheets"

// ErrStoreClosed is the cause of every call made after Close.
var ErrStoreClosed = errors.New("record store is closed")

// SheetsStore is the Google Sheets record store. Every method is one direct
// API call with no caching, batching or retry.
type SheetsStore struct {
	sheetID   string
	worksheet string
	gridID    int64
	logger    *slog.Logger
	metrics   *infrastructure.SalesMetrics

	mu      sync.RWMutex
	service *sheets.Service
}

// NewSheetsStore connects to the spreadsheet and resolves the worksheet: the
// configured title, or the first sheet. Any failure is a StoreConnectionError.
// Extra client options are applied after the configured credentials.
func NewSheetsStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger, metrics *infrastructure.SalesMetrics, opts ...option.ClientOption) (*SheetsStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "sheets_store"))

	if cfg.SheetID == "" {
		return nil, apperrors.NewStoreConnectionError("spreadsheet id is empty", nil)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var clientOpts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, apperrors.NewStoreConnectionError("failed to create sheets client", err)
	}

	spreadsheet, err := service.Spreadsheets.Get(cfg.SheetID).
		Fields(googleapi.Field("spreadsheetId,sheets.properties(sheetId,title)")).
		Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewStoreConnectionError(fmt.Sprintf("failed to open spreadsheet %s", cfg.SheetID), err)
	}

	props, err := pickWorksheet(spreadsheet, cfg.Worksheet)
	if err != nil {
		return nil, apperrors.NewStoreConnectionError(fmt.Sprintf("failed to open spreadsheet %s", cfg.SheetID), err)
	}

	logger.InfoContext(ctx, "connected to record store",
		slog.String("sheet_id", cfg.SheetID),
		slog.String("worksheet", props.Title))

	return &SheetsStore{
		sheetID:   cfg.SheetID,
		worksheet: props.Title,
		gridID:    props.SheetId,
		logger:    logger,
		metrics:   metrics,
		service:   service,
	}, nil
}

func pickWorksheet(spreadsheet *sheets.Spreadsheet, title string) (*sheets.SheetProperties, error) {
	for _, s := range spreadsheet.Sheets {
		if s.Properties == nil {
			continue
		}
		if title == "" || s.Properties.Title == title {
			return s.Properties, nil
		}
	}
	if title != "" {
		return nil, fmt.Errorf("worksheet %q not found", title)
	}
	return nil, errors.New("spreadsheet has no worksheets")
}

// Worksheet returns the title of the worksheet in use.
func (s *SheetsStore) Worksheet() string {
	return s.worksheet
}

// Backend implements the health probe naming.
func (s *SheetsStore) Backend() string {
	return BackendSheets
}

// Numbers are read unformatted so a sheet's display format (currency,
// thousands separators, rounding) cannot change the value the loader sees.
// Date serials come back as the sheet's formatted string.
const (
	valueRender    = "UNFORMATTED_VALUE"
	dateTimeRender = "FORMATTED_STRING"
)

// ReadRows returns every row of the worksheet, header first.
func (s *SheetsStore) ReadRows(ctx context.Context) ([][]string, error) {
	var grid [][]string
	err := s.call(ctx, "read_rows", func(ctx context.Context, svc *sheets.Service) error {
		resp, err := svc.Spreadsheets.Values.Get(s.sheetID, s.a1("")).
			ValueRenderOption(valueRender).
			DateTimeRenderOption(dateTimeRender).
			Context(ctx).Do()
		if err != nil {
			return apperrors.NewStoreAccessError("read rows", err)
		}
		grid = toGrid(resp.Values)
		return nil
	})
	return grid, err
}

// Append adds record as a new row after the last data row.
func (s *SheetsStore) Append(ctx context.Context, record domain.SalesRecord) error {
	return s.call(ctx, "append", func(ctx context.Context, svc *sheets.Service) error {
		_, err := svc.Spreadsheets.Values.Append(s.sheetID, s.a1("A1"), &sheets.ValueRange{
			Values: [][]interface{}{recordValues(record)},
		}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		if err != nil {
			return apperrors.NewStoreAccessError("append row", err)
		}
		return nil
	})
}

// ReadRow returns the record stored at the 1-based row index.
func (s *SheetsStore) ReadRow(ctx context.Context, index int) (domain.StoredRow, error) {
	if index < domain.FirstDataRow {
		return domain.StoredRow{}, apperrors.NewRowOutOfRangeError("read row", index)
	}

	var row domain.StoredRow
	err := s.call(ctx, "read_row", func(ctx context.Context, svc *sheets.Service) error {
		resp, err := svc.Spreadsheets.Values.Get(s.sheetID, s.a1(rowRange(index))).
			ValueRenderOption(valueRender).
			DateTimeRenderOption(dateTimeRender).
			Context(ctx).Do()
		if err != nil {
			return apperrors.NewStoreAccessError("read row", err)
		}

		grid := toGrid(resp.Values)
		if len(grid) == 0 || len(grid[0]) == 0 {
			return apperrors.NewRowOutOfRangeError("read row", index)
		}

		record, err := dataprocessing.DecodeRecord(grid[0], index)
		if err != nil {
			return err
		}
		row = domain.StoredRow{Index: index, Record: record}
		return nil
	})
	return row, err
}

// UpdateRow overwrites the row at index with record.
func (s *SheetsStore) UpdateRow(ctx context.Context, index int, record domain.SalesRecord) error {
	if index < domain.FirstDataRow {
		return apperrors.NewRowOutOfRangeError("update row", index)
	}

	return s.call(ctx, "update_row", func(ctx context.Context, svc *sheets.Service) error {
		_, err := svc.Spreadsheets.Values.Update(s.sheetID, s.a1(rowRange(index)), &sheets.ValueRange{
			Values: [][]interface{}{recordValues(record)},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return apperrors.NewStoreAccessError("update row", err)
		}
		return nil
	})
}

// DeleteRow removes the row at index; later rows shift up by one.
func (s *SheetsStore) DeleteRow(ctx context.Context, index int) error {
	if index < domain.FirstDataRow {
		return apperrors.NewRowOutOfRangeError("delete row", index)
	}

	return s.call(ctx, "delete_row", func(ctx context.Context, svc *sheets.Service) error {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:         s.gridID,
						Dimension:       "ROWS",
						StartIndex:      int64(index - 1),
						EndIndex:        int64(index),
						ForceSendFields: []string{"SheetId"},
					},
				},
			}},
		}
		if _, err := svc.Spreadsheets.BatchUpdate(s.sheetID, req).Context(ctx).Do(); err != nil {
			return apperrors.NewStoreAccessError("delete row", err)
		}
		return nil
	})
}

// Ping checks the spreadsheet is still reachable.
func (s *SheetsStore) Ping(ctx context.Context) error {
	return s.call(ctx, "ping", func(ctx context.Context, svc *sheets.Service) error {
		_, err := svc.Spreadsheets.Get(s.sheetID).Fields(googleapi.Field("spreadsheetId")).Context(ctx).Do()
		if err != nil {
			return apperrors.NewStoreAccessError("ping", err)
		}
		return nil
	})
}

// Close releases the client. Calls after Close fail with a StoreAccessError.
func (s *SheetsStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		s.service = nil
		s.logger.Info("record store closed")
	}
	return nil
}

// call runs fn with the live client inside a traced store operation.
func (s *SheetsStore) call(ctx context.Context, operation string, fn func(context.Context, *sheets.Service) error) error {
	s.mu.RLock()
	svc := s.service
	s.mu.RUnlock()

	if svc == nil {
		return apperrors.NewStoreAccessError(strings.ReplaceAll(operation, "_", " "), ErrStoreClosed)
	}

	err := infrastructure.TraceStoreOperation(ctx, s.metrics, BackendSheets, operation, func(ctx context.Context) error {
		return fn(ctx, svc)
	})
	if err != nil {
		s.logger.DebugContext(ctx, "store operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
	return err
}

// a1 qualifies a cell range with the worksheet title. An empty range
// addresses the whole sheet.
func (s *SheetsStore) a1(cells string) string {
	quoted := "'" + strings.ReplaceAll(s.worksheet, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

// rowRange is the fixed column span a record row occupies.
func rowRange(index int) string {
	return fmt.Sprintf("A%d:I%d", index, index)
}
