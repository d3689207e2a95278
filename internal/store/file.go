package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "salesdash/internal/errors"
	"salesdash/internal/infrastructure"
)

// BackendFile names the file backend in logs and metrics.
const BackendFile = "file"

const utf8BOM = "\uFEFF"

// FileSource reads the dataset from a local .csv or .xlsx file. It is
// read-only and re-reads the file on every call.
type FileSource struct {
	path      string
	sheetName string
	xlsx      bool
	logger    *slog.Logger
	metrics   *infrastructure.SalesMetrics
}

// NewFileSource checks that path exists and has a supported extension. A
// missing or unsupported file is a StoreConnectionError. sheetName selects
// the workbook sheet for .xlsx files; empty means the first sheet.
func NewFileSource(path, sheetName string, logger *slog.Logger, metrics *infrastructure.SalesMetrics) (*FileSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var xlsx bool
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
	case ".xlsx":
		xlsx = true
	default:
		return nil, apperrors.NewStoreConnectionError(fmt.Sprintf("unsupported dataset file %s", path), nil)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewStoreConnectionError(fmt.Sprintf("failed to open dataset file %s", path), err)
	}

	return &FileSource{
		path:      path,
		sheetName: sheetName,
		xlsx:      xlsx,
		logger:    logger.With(slog.String("component", "file_source"), slog.String("path", path)),
		metrics:   metrics,
	}, nil
}

// Backend implements the health probe naming.
func (f *FileSource) Backend() string {
	return BackendFile
}

// ReadRows returns every row of the file, header first.
func (f *FileSource) ReadRows(ctx context.Context) ([][]string, error) {
	var grid [][]string
	err := infrastructure.TraceStoreOperation(ctx, f.metrics, BackendFile, "read_rows", func(ctx context.Context) error {
		var err error
		if f.xlsx {
			grid, err = f.readXLSX()
		} else {
			grid, err = f.readCSV()
		}
		if err != nil {
			return apperrors.NewStoreAccessError("read rows", err)
		}
		return nil
	})
	return grid, err
}

// Ping checks the file is still there.
func (f *FileSource) Ping(context.Context) error {
	if _, err := os.Stat(f.path); err != nil {
		return apperrors.NewStoreAccessError("ping", err)
	}
	return nil
}

func (f *FileSource) readCSV() ([][]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var grid [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(f.path), err)
		}
		grid = append(grid, record)
	}

	if len(grid) > 0 && len(grid[0]) > 0 {
		grid[0][0] = strings.TrimPrefix(grid[0][0], utf8BOM)
	}
	return grid, nil
}

func (f *FileSource) readXLSX() ([][]string, error) {
	wb, err := excelize.OpenFile(f.path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet := f.sheetName
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(f.path))
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
