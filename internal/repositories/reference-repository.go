package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"asset-tracker/internal/entities"
	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/constants"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReferenceRepositoryInterface interface {
	LoadCategories(ctx context.Context) ([]entities.Category, error)
	LoadTypes(ctx context.Context) ([]entities.AssetType, error)
	LoadCompanies(ctx context.Context) ([]entities.Company, error)
	LoadOwners(ctx context.Context) ([]entities.Owner, error)
	LoadLocations(ctx context.Context) ([]entities.Location, error)

	AppendCategory(ctx context.Context, c entities.Category) error
	AppendType(ctx context.Context, t entities.AssetType) error
	AppendCompany(ctx context.Context, c entities.Company) error
	AppendOwner(ctx context.Context, o entities.Owner) error
	AppendLocation(ctx context.Context, l entities.Location) error
}

type ReferenceRepository struct {
	store  sheets.Store
	logger *zap.Logger
}

func NewReferenceRepository(store sheets.Store, logger *zap.Logger) ReferenceRepositoryInterface {
	return &ReferenceRepository{store: store, logger: logger.Named("references")}
}

// records читает лист справочника. Отсутствующий лист - пустой справочник.
func (r *ReferenceRepository) records(ctx context.Context, sheet string) ([]sheets.Record, error) {
	table, err := r.store.ReadTable(ctx, sheet)
	if errors.Is(err, sheets.ErrTableNotFound) {
		r.logger.Warn("Лист справочника не найден", zap.String("sheet", sheet))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return table.Records(), nil
}

func (r *ReferenceRepository) LoadCategories(ctx context.Context) ([]entities.Category, error) {
	recs, err := r.records(ctx, constants.SheetRefCategories)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Category, 0, len(recs))
	for _, rec := range recs {
		if rec[constants.ColCategory] == "" {
			continue
		}
		percent, ok := parsePercent(rec[constants.ColResidualPercent])
		if !ok {
			r.logger.Warn("Процент остатка вне диапазона 0-100, значение ограничено",
				zap.String("category", rec[constants.ColCategory]),
				zap.String("value", rec[constants.ColResidualPercent]),
				zap.String("used", percent.String()),
			)
		}
		out = append(out, entities.Category{
			Name:            rec[constants.ColCategory],
			Code:            rec[constants.ColCodeCategory],
			ResidualPercent: percent,
			UsefulLife:      parseUsefulLife(rec[constants.ColUsefulLife]),
		})
	}
	return out, nil
}

func (r *ReferenceRepository) LoadTypes(ctx context.Context) ([]entities.AssetType, error) {
	recs, err := r.records(ctx, constants.SheetRefTypes)
	if err != nil {
		return nil, err
	}
	out := make([]entities.AssetType, 0, len(recs))
	for _, rec := range recs {
		if rec[constants.ColType] == "" {
			continue
		}
		out = append(out, entities.AssetType{
			Name:     rec[constants.ColType],
			Category: rec[constants.ColCategory],
			Code:     rec[constants.ColCodeType],
		})
	}
	return out, nil
}

func (r *ReferenceRepository) LoadCompanies(ctx context.Context) ([]entities.Company, error) {
	recs, err := r.records(ctx, constants.SheetRefCompanies)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Company, 0, len(recs))
	for _, rec := range recs {
		if rec[constants.ColCompany] == "" {
			continue
		}
		out = append(out, entities.Company{Name: rec[constants.ColCompany], Code: rec[constants.ColCodeCompany]})
	}
	return out, nil
}

func (r *ReferenceRepository) LoadOwners(ctx context.Context) ([]entities.Owner, error) {
	recs, err := r.records(ctx, constants.SheetRefOwners)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Owner, 0, len(recs))
	for _, rec := range recs {
		if rec[constants.ColOwner] == "" {
			continue
		}
		out = append(out, entities.Owner{Name: rec[constants.ColOwner], Code: rec[constants.ColCodeOwner]})
	}
	return out, nil
}

func (r *ReferenceRepository) LoadLocations(ctx context.Context) ([]entities.Location, error) {
	recs, err := r.records(ctx, constants.SheetRefLocation)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Location, 0, len(recs))
	for _, rec := range recs {
		if rec[constants.ColLocation] == "" {
			continue
		}
		out = append(out, entities.Location{Name: rec[constants.ColLocation], Room: rec[constants.ColRoom]})
	}
	return out, nil
}

func (r *ReferenceRepository) AppendCategory(ctx context.Context, c entities.Category) error {
	return appendRecord(ctx, r.store, constants.SheetRefCategories, constants.RefCategoriesHeader, map[string]string{
		constants.ColCategory:        c.Name,
		constants.ColCodeCategory:    c.Code,
		constants.ColResidualPercent: c.ResidualPercent.String(),
		constants.ColUsefulLife:      strconv.Itoa(c.UsefulLife),
	})
}

func (r *ReferenceRepository) AppendType(ctx context.Context, t entities.AssetType) error {
	return appendRecord(ctx, r.store, constants.SheetRefTypes, constants.RefTypesHeader, map[string]string{
		constants.ColType:     t.Name,
		constants.ColCategory: t.Category,
		constants.ColCodeType: t.Code,
	})
}

func (r *ReferenceRepository) AppendCompany(ctx context.Context, c entities.Company) error {
	return appendRecord(ctx, r.store, constants.SheetRefCompanies, constants.RefCompaniesHeader, map[string]string{
		constants.ColCompany:     c.Name,
		constants.ColCodeCompany: c.Code,
	})
}

func (r *ReferenceRepository) AppendOwner(ctx context.Context, o entities.Owner) error {
	return appendRecord(ctx, r.store, constants.SheetRefOwners, constants.RefOwnersHeader, map[string]string{
		constants.ColOwner:     o.Name,
		constants.ColCodeOwner: o.Code,
	})
}

func (r *ReferenceRepository) AppendLocation(ctx context.Context, l entities.Location) error {
	return appendRecord(ctx, r.store, constants.SheetRefLocation, constants.RefLocationHeader, map[string]string{
		constants.ColLocation: l.Name,
		constants.ColRoom:     l.Room,
	})
}

// parsePercent: "10", "10.5", "10%" -> число; мусор -> 0.
// Значение вне [0, 100] ограничивается, второй результат тогда false.
func parsePercent(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	switch {
	case d.IsNegative():
		return decimal.Zero, false
	case d.GreaterThan(maxPercent):
		return maxPercent, false
	}
	return d, true
}

var maxPercent = decimal.NewFromInt(100)

// parseUsefulLife: нечисловое значение считается за 1 год.
func parseUsefulLife(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return n
}
