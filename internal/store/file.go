package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFile = errors.New("unsupported sample file type")

type FileOptions struct {
	// HasHeader skips the first row.
	HasHeader bool
	// LabelColumn is the zero-based column holding the hypothesis label. Every
	// other column is read as a numeric feature, in column order.
	LabelColumn int
}

// FileSampleStore serves samples loaded once from a CSV or XLSX file.
type FileSampleStore struct {
	path    string
	samples []domain.Sample
}

// LoadFile reads every sample from path. The format is chosen by extension:
// .csv (or .data, .txt) is read as comma separated values, .xlsx from its
// first sheet.
func LoadFile(path string, opts FileOptions) (*FileSampleStore, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".data", ".txt":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, err
	}

	samples, err := parseRows(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &FileSampleStore{path: path, samples: samples}, nil
}

func (s *FileSampleStore) List(ctx context.Context) ([]domain.Sample, error) {
	out := make([]domain.Sample, len(s.samples))
	copy(out, s.samples)
	return out, nil
}

func (s *FileSampleStore) Path() string {
	return s.path
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sample workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func parseRows(rows [][]string, opts FileOptions) ([]domain.Sample, error) {
	if opts.LabelColumn < 0 {
		return nil, fmt.Errorf("label column %d is negative", opts.LabelColumn)
	}
	if opts.HasHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	width := -1
	samples := make([]domain.Sample, 0, len(rows))
	for i, row := range rows {
		line := i + 1
		if opts.HasHeader {
			line++
		}
		if blank(row) {
			continue
		}
		if width < 0 {
			width = len(row)
		}
		if len(row) != width {
			return nil, fmt.Errorf("row %d: %d columns, want %d", line, len(row), width)
		}
		if opts.LabelColumn >= len(row) {
			return nil, fmt.Errorf("row %d: no label column %d", line, opts.LabelColumn)
		}

		sample := domain.Sample{Features: make([]float64, 0, len(row)-1)}
		for col, cell := range row {
			cell = strings.TrimSpace(cell)
			if col == opts.LabelColumn {
				sample.Label = domain.Hypothesis(cell)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", line, col+1, err)
			}
			sample.Features = append(sample.Features, v)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
