package repositories

import (
	"context"
	"errors"
	"sort"

	"asset-tracker/internal/entities"
	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/constants"

	"go.uber.org/zap"
)

// AuditLogRepositoryInterface - журналы только на добавление.
type AuditLogRepositoryInterface interface {
	AppendStatusLog(ctx context.Context, entry entities.StatusLog) error
	AppendRelocationLog(ctx context.Context, entry entities.RelocationLog) error
	AppendDisposalLog(ctx context.Context, entry entities.DisposalLog) error
	GetDisposalLogs(ctx context.Context) ([]entities.DisposalLog, error)
}

type AuditLogRepository struct {
	store  sheets.Store
	logger *zap.Logger
}

func NewAuditLogRepository(store sheets.Store, logger *zap.Logger) AuditLogRepositoryInterface {
	return &AuditLogRepository{store: store, logger: logger.Named("audit_log")}
}

func (r *AuditLogRepository) AppendStatusLog(ctx context.Context, e entities.StatusLog) error {
	h := constants.LogStatusHeader
	return appendRecord(ctx, r.store, constants.SheetLogStatus, h, map[string]string{
		h[0]: e.Timestamp, h[1]: e.AssetID, h[2]: e.AssetName,
		h[3]: e.OldStatus, h[4]: e.NewStatus, h[5]: e.ChangedBy,
	})
}

func (r *AuditLogRepository) AppendRelocationLog(ctx context.Context, e entities.RelocationLog) error {
	h := constants.LogRelocationHeader
	return appendRecord(ctx, r.store, constants.SheetLogRelocation, h, map[string]string{
		h[0]: e.Timestamp, h[1]: e.AssetID, h[2]: e.AssetName,
		h[3]: e.FromLocation, h[4]: e.FromRoom, h[5]: e.ToLocation, h[6]: e.ToRoom,
		h[7]: e.MovedBy,
	})
}

func (r *AuditLogRepository) AppendDisposalLog(ctx context.Context, e entities.DisposalLog) error {
	h := constants.LogDisposalHeader
	return appendRecord(ctx, r.store, constants.SheetLogDisposal, h, map[string]string{
		h[0]: e.Timestamp, h[1]: e.AssetID, h[2]: e.AssetName,
		h[3]: e.DisposalMethod, h[4]: e.DisposalValue, h[5]: e.DisposedBy,
		h[6]: e.Notes, h[7]: e.Status,
	})
}

// GetDisposalLogs - новые записи сверху.
func (r *AuditLogRepository) GetDisposalLogs(ctx context.Context) ([]entities.DisposalLog, error) {
	table, err := r.store.ReadTable(ctx, constants.SheetLogDisposal)
	if errors.Is(err, sheets.ErrTableNotFound) {
		return []entities.DisposalLog{}, nil
	}
	if err != nil {
		return nil, err
	}

	h := constants.LogDisposalHeader
	logs := make([]entities.DisposalLog, 0, len(table.Rows))
	for _, rec := range table.Records() {
		if isBlank(rec) {
			continue
		}
		logs = append(logs, entities.DisposalLog{
			Timestamp:      rec[h[0]],
			AssetID:        rec[h[1]],
			AssetName:      rec[h[2]],
			DisposalMethod: rec[h[3]],
			DisposalValue:  rec[h[4]],
			DisposedBy:     rec[h[5]],
			Notes:          rec[h[6]],
			Status:         rec[h[7]],
		})
	}
	// Формат Timestamp сортируется лексикографически.
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp > logs[j].Timestamp })
	return logs, nil
}
