package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// WorkbookStore хранит листы в локальном XLSX-файле. Используется для разработки и тестов.
type WorkbookStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewWorkbookStore(path string, logger *zap.Logger) (*WorkbookStore, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f := excelize.NewFile()
		defer f.Close()
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("не удалось создать книгу %s: %w", path, err)
		}
		logger.Info("Создана новая книга", zap.String("path", path))
	} else if err != nil {
		return nil, err
	}
	return &WorkbookStore{path: path, logger: logger.Named("workbook")}, nil
}

func (s *WorkbookStore) withFile(ctx context.Context, save bool, fn func(f *excelize.File) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("не удалось открыть книгу: %w", err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return err
	}
	if save {
		if err := f.SaveAs(s.path); err != nil {
			return fmt.Errorf("не удалось сохранить книгу: %w", err)
		}
	}
	return nil
}

func hasSheet(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (s *WorkbookStore) ReadTable(ctx context.Context, name string) (*Table, error) {
	var table *Table
	err := s.withFile(ctx, false, func(f *excelize.File) error {
		if !hasSheet(f, name) {
			return fmt.Errorf("%w: %s", ErrTableNotFound, name)
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return err
		}
		table = NewTable(name, rows)
		return nil
	})
	return table, err
}

func (s *WorkbookStore) WriteTable(ctx context.Context, name string, header []string, rows [][]string) error {
	return s.withFile(ctx, true, func(f *excelize.File) error {
		if !hasSheet(f, name) {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		old, err := f.GetRows(name)
		if err != nil {
			return err
		}

		width := len(header)
		for _, r := range old {
			width = max(width, len(r))
		}

		all := append([][]string{header}, rows...)
		for i, r := range all {
			line := make([]string, width)
			copy(line, r)
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &line); err != nil {
				return err
			}
		}
		for r := len(old); r > len(all); r-- {
			if err := f.RemoveRow(name, r); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *WorkbookStore) AppendRow(ctx context.Context, name string, row []string) error {
	return s.withFile(ctx, true, func(f *excelize.File) error {
		if !hasSheet(f, name) {
			return fmt.Errorf("%w: %s", ErrTableNotFound, name)
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, len(rows)+1)
		return f.SetSheetRow(name, cell, &row)
	})
}

func (s *WorkbookStore) UpdateCell(ctx context.Context, name string, dataRow, column int, value string) error {
	return s.withFile(ctx, true, func(f *excelize.File) error {
		if !hasSheet(f, name) {
			return fmt.Errorf("%w: %s", ErrTableNotFound, name)
		}
		cell, err := excelize.CoordinatesToCellName(column+1, dataRow+2)
		if err != nil {
			return err
		}
		return f.SetCellStr(name, cell, value)
	})
}

func (s *WorkbookStore) DeleteRow(ctx context.Context, name string, dataRow int) error {
	return s.withFile(ctx, true, func(f *excelize.File) error {
		if !hasSheet(f, name) {
			return fmt.Errorf("%w: %s", ErrTableNotFound, name)
		}
		return f.RemoveRow(name, dataRow+2)
	})
}

func (s *WorkbookStore) EnsureTable(ctx context.Context, name string, header []string) error {
	return s.withFile(ctx, true, func(f *excelize.File) error {
		if !hasSheet(f, name) {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
			s.logger.Info("Создан лист", zap.String("sheet", name))
		} else {
			rows, err := f.GetRows(name)
			if err != nil {
				return err
			}
			if len(rows) > 0 && len(rows[0]) > 0 {
				return nil
			}
		}
		return f.SetSheetRow(name, "A1", &header)
	})
}
