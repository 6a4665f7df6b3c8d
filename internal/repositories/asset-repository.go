package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"asset-tracker/internal/entities"
	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/constants"
	apperrors "asset-tracker/pkg/errors"

	"go.uber.org/zap"
)

type AssetRepositoryInterface interface {
	GetAssets(ctx context.Context) ([]entities.Asset, error)
	FindAsset(ctx context.Context, id string) (*entities.Asset, error)
	AppendAsset(ctx context.Context, asset entities.Asset) error
	// UpdateAssetFields меняет отдельные колонки и возвращает актив до изменения.
	UpdateAssetFields(ctx context.Context, id string, fields map[string]string) (*entities.Asset, error)
	DeleteAsset(ctx context.Context, id string) (*entities.Asset, error)

	ReadAssetTable(ctx context.Context) (*sheets.Table, error)
	WriteAssetTable(ctx context.Context, header []string, rows [][]string) error
}

type AssetRepository struct {
	store  sheets.Store
	logger *zap.Logger
}

func NewAssetRepository(store sheets.Store, logger *zap.Logger) AssetRepositoryInterface {
	return &AssetRepository{store: store, logger: logger.Named("assets")}
}

func (r *AssetRepository) ReadAssetTable(ctx context.Context) (*sheets.Table, error) {
	return r.store.ReadTable(ctx, constants.SheetAssets)
}

func (r *AssetRepository) WriteAssetTable(ctx context.Context, header []string, rows [][]string) error {
	return r.store.WriteTable(ctx, constants.SheetAssets, header, rows)
}

func (r *AssetRepository) GetAssets(ctx context.Context) ([]entities.Asset, error) {
	table, err := r.ReadAssetTable(ctx)
	if errors.Is(err, sheets.ErrTableNotFound) {
		r.logger.Warn("Лист Assets не найден")
		return []entities.Asset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать активы: %w", err)
	}

	assets := make([]entities.Asset, 0, len(table.Rows))
	for i, rec := range table.Records() {
		if isBlank(rec) {
			continue
		}
		assets = append(assets, AssetFromRecord(rec, idValue(table, i), i))
	}
	return assets, nil
}

func (r *AssetRepository) FindAsset(ctx context.Context, id string) (*entities.Asset, error) {
	table, err := r.ReadAssetTable(ctx)
	if errors.Is(err, sheets.ErrTableNotFound) {
		return nil, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	row := findRow(table, id)
	if row < 0 {
		return nil, apperrors.ErrAssetNotFound
	}
	asset := AssetFromRecord(table.Records()[row], idValue(table, row), row)
	return &asset, nil
}

func (r *AssetRepository) AppendAsset(ctx context.Context, asset entities.Asset) error {
	return appendRecord(ctx, r.store, constants.SheetAssets, constants.AssetHeader, AssetToValues(asset))
}

func (r *AssetRepository) UpdateAssetFields(ctx context.Context, id string, fields map[string]string) (*entities.Asset, error) {
	table, err := r.ReadAssetTable(ctx)
	if errors.Is(err, sheets.ErrTableNotFound) {
		return nil, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	row := findRow(table, id)
	if row < 0 {
		return nil, apperrors.ErrAssetNotFound
	}

	columns := make([]string, 0, len(fields))
	for name := range fields {
		if table.ColumnIndex(name) < 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrColumnMissing, name)
		}
		columns = append(columns, name)
	}
	sort.Strings(columns)

	previous := AssetFromRecord(table.Records()[row], idValue(table, row), row)
	for _, name := range columns {
		if err := r.store.UpdateCell(ctx, constants.SheetAssets, row, table.ColumnIndex(name), fields[name]); err != nil {
			return nil, fmt.Errorf("не удалось обновить колонку %s: %w", name, err)
		}
	}
	return &previous, nil
}

func (r *AssetRepository) DeleteAsset(ctx context.Context, id string) (*entities.Asset, error) {
	table, err := r.ReadAssetTable(ctx)
	if errors.Is(err, sheets.ErrTableNotFound) {
		return nil, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	row := findRow(table, id)
	if row < 0 {
		return nil, apperrors.ErrAssetNotFound
	}
	deleted := AssetFromRecord(table.Records()[row], idValue(table, row), row)
	if err := r.store.DeleteRow(ctx, constants.SheetAssets, row); err != nil {
		return nil, err
	}
	return &deleted, nil
}

// idColumn - колонка ID, а при её отсутствии первая колонка листа.
func idColumn(table *sheets.Table) int {
	if idx := table.ColumnIndex(constants.ColID); idx >= 0 {
		return idx
	}
	return 0
}

func idValue(table *sheets.Table, row int) string {
	col := idColumn(table)
	if row >= len(table.Rows) || col >= len(table.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(table.Rows[row][col])
}

func findRow(table *sheets.Table, id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range table.Rows {
		if idValue(table, i) == id {
			return i
		}
	}
	return -1
}

func isBlank(rec sheets.Record) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}

func AssetFromRecord(rec sheets.Record, id string, row int) entities.Asset {
	return entities.Asset{
		Row:               row,
		ID:                id,
		ItemName:          rec[constants.ColItemName],
		Category:          rec[constants.ColCategory],
		Type:              rec[constants.ColType],
		Manufacture:       rec[constants.ColManufacture],
		Model:             rec[constants.ColModel],
		SerialNumber:      rec[constants.ColSerialNumber],
		AssetTag:          rec[constants.ColAssetTag],
		Company:           rec[constants.ColCompany],
		BisnisUnit:        rec[constants.ColBisnisUnit],
		Location:          rec[constants.ColLocation],
		RoomLocation:      rec[constants.ColRoomLocation],
		Notes:             rec[constants.ColNotes],
		Condition:         rec[constants.ColCondition],
		PurchaseDate:      rec[constants.ColPurchaseDate],
		PurchaseCost:      rec[constants.ColPurchaseCost],
		Warranty:          rec[constants.ColWarranty],
		Supplier:          rec[constants.ColSupplier],
		Journal:           rec[constants.ColJournal],
		Owner:             rec[constants.ColOwner],
		Status:            rec[constants.ColStatus],
		CodeCategory:      rec[constants.ColCodeCategory],
		CodeCompany:       rec[constants.ColCodeCompany],
		CodeType:          rec[constants.ColCodeType],
		CodeOwner:         rec[constants.ColCodeOwner],
		Tahun:             rec[constants.ColTahun],
		ResidualPercent:   rec[constants.ColResidualPercent],
		UsefulLife:        rec[constants.ColUsefulLife],
		ResidualValue:     rec[constants.ColResidualValue],
		DepreciationValue: rec[constants.ColDepreciationValue],
		BookValue:         rec[constants.ColBookValue],
	}
}

func AssetToValues(a entities.Asset) map[string]string {
	return map[string]string{
		constants.ColID:                a.ID,
		constants.ColItemName:          a.ItemName,
		constants.ColCategory:          a.Category,
		constants.ColType:              a.Type,
		constants.ColManufacture:       a.Manufacture,
		constants.ColModel:             a.Model,
		constants.ColSerialNumber:      a.SerialNumber,
		constants.ColAssetTag:          a.AssetTag,
		constants.ColCompany:           a.Company,
		constants.ColBisnisUnit:        a.BisnisUnit,
		constants.ColLocation:          a.Location,
		constants.ColRoomLocation:      a.RoomLocation,
		constants.ColNotes:             a.Notes,
		constants.ColCondition:         a.Condition,
		constants.ColPurchaseDate:      a.PurchaseDate,
		constants.ColPurchaseCost:      a.PurchaseCost,
		constants.ColWarranty:          a.Warranty,
		constants.ColSupplier:          a.Supplier,
		constants.ColJournal:           a.Journal,
		constants.ColOwner:             a.Owner,
		constants.ColStatus:            a.Status,
		constants.ColCodeCategory:      a.CodeCategory,
		constants.ColCodeCompany:       a.CodeCompany,
		constants.ColCodeType:          a.CodeType,
		constants.ColCodeOwner:         a.CodeOwner,
		constants.ColTahun:             a.Tahun,
		constants.ColResidualPercent:   a.ResidualPercent,
		constants.ColUsefulLife:        a.UsefulLife,
		constants.ColResidualValue:     a.ResidualValue,
		constants.ColDepreciationValue: a.DepreciationValue,
		constants.ColBookValue:         a.BookValue,
	}
}
