// Package sheets даёт доступ к именованным листам с заголовком в первой строке.
package sheets

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrTableNotFound    = errors.New("лист не найден")
	ErrRetriesExhausted = errors.New("исчерпаны попытки обращения к таблице")
)

// Store - табличное хранилище. dataRow везде считается от нуля без учёта строки заголовка,
// column - индекс колонки от нуля.
type Store interface {
	ReadTable(ctx context.Context, name string) (*Table, error)
	// WriteTable заменяет содержимое листа целиком одним вызовом.
	WriteTable(ctx context.Context, name string, header []string, rows [][]string) error
	AppendRow(ctx context.Context, name string, row []string) error
	UpdateCell(ctx context.Context, name string, dataRow, column int, value string) error
	DeleteRow(ctx context.Context, name string, dataRow int) error
	// EnsureTable создаёт лист с заголовком, если его нет или он пуст.
	EnsureTable(ctx context.Context, name string, header []string) error
}

type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Record - строка листа по именам колонок.
type Record map[string]string

func NewTable(name string, values [][]string) *Table {
	t := &Table{Name: name}
	if len(values) == 0 {
		return t
	}
	t.Header = make([]string, len(values[0]))
	for i, h := range values[0] {
		t.Header[i] = strings.TrimSpace(h)
	}
	for _, row := range values[1:] {
		t.Rows = append(t.Rows, padRow(row, len(t.Header)))
	}
	return t
}

// ColumnIndex возвращает -1, если колонки нет.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

func (t *Table) Value(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(t.Header))
		for i, h := range t.Header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// AlignRow раскладывает значения по порядку колонок заголовка.
func AlignRow(header []string, values map[string]string) []string {
	row := make([]string, len(header))
	for i, h := range header {
		row[i] = values[h]
	}
	return row
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
