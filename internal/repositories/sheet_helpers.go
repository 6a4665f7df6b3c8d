package repositories

import (
	"context"
	"errors"
	"fmt"

	"asset-tracker/internal/sheets"
)

// appendRecord дописывает строку в порядке колонок существующего листа.
// Если листа нет или он пуст, он создаётся с заголовком header.
func appendRecord(ctx context.Context, store sheets.Store, sheet string, header []string, values map[string]string) error {
	table, err := store.ReadTable(ctx, sheet)
	columns := header
	switch {
	case errors.Is(err, sheets.ErrTableNotFound) || (err == nil && len(table.Header) == 0):
		if err := store.EnsureTable(ctx, sheet, header); err != nil {
			return fmt.Errorf("не удалось создать лист %s: %w", sheet, err)
		}
	case err != nil:
		return err
	default:
		columns = table.Header
	}

	if err := store.AppendRow(ctx, sheet, sheets.AlignRow(columns, values)); err != nil {
		return fmt.Errorf("не удалось добавить строку в %s: %w", sheet, err)
	}
	return nil
}
