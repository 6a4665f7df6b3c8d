package sheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// RetryingStore повторяет идемпотентные операции при временных ошибках.
// Добавление и удаление строки не повторяются: повтор может задвоить
// или удалить лишнюю строку.
type RetryingStore struct {
	next       Store
	maxRetries uint64
	baseDelay  time.Duration
	logger     *zap.Logger
}

func NewRetryingStore(next Store, maxRetries uint64, baseDelay time.Duration, logger *zap.Logger) *RetryingStore {
	return &RetryingStore{
		next:       next,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger.Named("retry"),
	}
}

// IsTransient - ошибки квоты, 5xx и сетевые ошибки.
// Отмена и истёкший дедлайн контекста временными не считаются.
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func (s *RetryingStore) do(ctx context.Context, op, table string, fn func(ctx context.Context) error) error {
	attempt := 0
	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err != nil && IsTransient(err) {
			s.logger.Warn("Временная ошибка хранилища, повтор",
				zap.String("op", op),
				zap.String("sheet", table),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil && IsTransient(err) {
		s.logger.Error("Попытки исчерпаны",
			zap.String("op", op),
			zap.String("sheet", table),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %w", ErrRetriesExhausted, op, table, err)
	}
	return err
}

func (s *RetryingStore) ReadTable(ctx context.Context, name string) (*Table, error) {
	var table *Table
	err := s.do(ctx, "read", name, func(ctx context.Context) error {
		t, err := s.next.ReadTable(ctx, name)
		table = t
		return err
	})
	return table, err
}

func (s *RetryingStore) WriteTable(ctx context.Context, name string, header []string, rows [][]string) error {
	return s.do(ctx, "write", name, func(ctx context.Context) error {
		return s.next.WriteTable(ctx, name, header, rows)
	})
}

func (s *RetryingStore) UpdateCell(ctx context.Context, name string, dataRow, column int, value string) error {
	return s.do(ctx, "update_cell", name, func(ctx context.Context) error {
		return s.next.UpdateCell(ctx, name, dataRow, column, value)
	})
}

func (s *RetryingStore) EnsureTable(ctx context.Context, name string, header []string) error {
	return s.do(ctx, "ensure", name, func(ctx context.Context) error {
		return s.next.EnsureTable(ctx, name, header)
	})
}

func (s *RetryingStore) AppendRow(ctx context.Context, name string, row []string) error {
	return s.next.AppendRow(ctx, name, row)
}

func (s *RetryingStore) DeleteRow(ctx context.Context, name string, dataRow int) error {
	return s.next.DeleteRow(ctx, name, dataRow)
}
