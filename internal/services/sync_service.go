package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"asset-tracker/internal/dto"
	"asset-tracker/internal/repositories"
	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/constants"
	"asset-tracker/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SyncState string

const (
	SyncStateIdle              SyncState = "IDLE"
	SyncStateLoadingReferences SyncState = "LOADING_REFERENCES"
	SyncStateProcessingRows    SyncState = "PROCESSING_ROWS"
	SyncStateWriting           SyncState = "WRITING"
	SyncStateDone              SyncState = "DONE"
	SyncStateFailed            SyncState = "FAILED"
)

type SyncServiceInterface interface {
	// Run пересчитывает все производные поля и перезаписывает лист Assets одним вызовом.
	// Ошибка возвращается только когда исчерпаны повторы хранилища;
	// прочие сбои отражаются в результате.
	Run(ctx context.Context) (*dto.SyncResultDTO, error)
	LastResult() *dto.SyncResultDTO
}

type SyncService struct {
	assets repositories.AssetRepositoryInterface
	refs   ReferenceServiceInterface
	clock  utils.Clock
	logger *zap.Logger

	// один проход за раз: последовательность тегов рассчитана на одного писателя
	runMu sync.Mutex

	mu    sync.Mutex
	state SyncState
	last  *dto.SyncResultDTO
}

func NewSyncService(
	assets repositories.AssetRepositoryInterface,
	refs ReferenceServiceInterface,
	clock utils.Clock,
	logger *zap.Logger,
) SyncServiceInterface {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &SyncService{
		assets: assets,
		refs:   refs,
		clock:  clock,
		logger: logger.Named("sync"),
		state:  SyncStateIdle,
	}
}

func (s *SyncService) setState(state SyncState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.logger.Debug("Состояние синхронизации", zap.String("state", string(state)))
}

func (s *SyncService) LastResult() *dto.SyncResultDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return &dto.SyncResultDTO{State: string(s.state)}
	}
	res := *s.last
	return &res
}

func (s *SyncService) finish(res *dto.SyncResultDTO) *dto.SyncResultDTO {
	s.mu.Lock()
	s.last = res
	s.mu.Unlock()
	return res
}

func (s *SyncService) fail(stage string, err error) (*dto.SyncResultDTO, error) {
	s.setState(SyncStateFailed)
	s.logger.Error("Синхронизация не выполнена", zap.String("stage", stage), zap.Error(err))

	res := s.finish(&dto.SyncResultDTO{
		Success: false,
		Message: fmt.Sprintf("Синхронизация не выполнена: %v", err),
		State:   string(SyncStateFailed),
	})
	if errors.Is(err, sheets.ErrRetriesExhausted) {
		return res, err
	}
	return res, nil
}

func (s *SyncService) Run(ctx context.Context) (*dto.SyncResultDTO, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	start := time.Now()

	s.setState(SyncStateLoadingReferences)
	refs, err := s.refs.LoadSyncReferences(ctx)
	if err != nil {
		return s.fail("references", err)
	}

	table, err := s.assets.ReadAssetTable(ctx)
	if errors.Is(err, sheets.ErrTableNotFound) {
		return s.fail("read", errors.New("лист Assets не найден"))
	}
	if err != nil {
		return s.fail("read", err)
	}

	s.setState(SyncStateProcessingRows)
	rows, renumbered := s.processRows(table, refs)
	if len(rows) == 0 {
		s.setState(SyncStateDone)
		return s.finish(&dto.SyncResultDTO{
			Success: true,
			Message: "Нет данных для синхронизации",
			State:   string(SyncStateDone),
		}), nil
	}

	s.setState(SyncStateWriting)
	if err := s.assets.WriteAssetTable(ctx, table.Header, rows); err != nil {
		return s.fail("write", err)
	}

	s.setState(SyncStateDone)
	if renumbered > 0 {
		s.logger.Warn("Часть тегов активов изменилась после пересчёта", zap.Int("renumbered", renumbered))
	}
	s.logger.Info("Синхронизация завершена",
		zap.Int("updated", len(rows)),
		zap.Int("renumbered", renumbered),
		zap.Duration("took", time.Since(start)),
	)
	return s.finish(&dto.SyncResultDTO{
		Success:    true,
		Updated:    len(rows),
		Renumbered: renumbered,
		Message:    fmt.Sprintf("Синхронизировано активов: %d", len(rows)),
		State:      string(SyncStateDone),
	}), nil
}

// processRows пересчитывает строки в исходном порядке. Полностью пустые строки отбрасываются.
func (s *SyncService) processRows(table *sheets.Table, refs *SyncReferences) ([][]string, int) {
	currentYear := s.clock.Now().Year()
	tags := NewTagGenerator()
	renumbered := 0

	out := make([][]string, 0, len(table.Rows))
	for _, src := range table.Rows {
		if isBlankRow(src) {
			continue
		}
		row := make([]string, max(len(table.Header), len(src)))
		copy(row, src)

		get := func(col string) string {
			if idx := table.ColumnIndex(col); idx >= 0 {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		set := func(col, value string) {
			if idx := table.ColumnIndex(col); idx >= 0 {
				row[idx] = value
			}
		}

		set(constants.ColID, fmt.Sprintf("%03d", len(out)+1))

		year := parsePurchaseYear(get(constants.ColPurchaseDate), currentYear)
		set(constants.ColTahun, strconv.Itoa(year))

		category := get(constants.ColCategory)
		residualPercent, usefulLife := decimal.Zero, 1
		if cat, ok := refs.Category(category); ok {
			residualPercent, usefulLife = cat.ResidualPercent, cat.UsefulLife
		}
		set(constants.ColResidualPercent, residualPercent.String())
		set(constants.ColUsefulLife, strconv.Itoa(usefulLife))

		cost, _ := ParseMoney(get(constants.ColPurchaseCost))
		dep := CalculateDepreciation(DepreciationInput{
			PurchaseCost:    cost,
			ResidualPercent: residualPercent,
			UsefulLife:      usefulLife,
			PurchaseYear:    year,
			CurrentYear:     currentYear,
		})
		set(constants.ColResidualValue, dep.ResidualValue.StringFixed(2))
		set(constants.ColDepreciationValue, dep.DepreciationPerYear.StringFixed(2))
		set(constants.ColBookValue, dep.BookValue.StringFixed(2))

		codes := TagCodes{
			Company:  refs.CompanyCode(get(constants.ColCompany)),
			Category: refs.CategoryCode(category),
			Type:     refs.TypeCode(get(constants.ColType), category),
			Owner:    refs.OwnerCode(get(constants.ColOwner)),
		}
		set(constants.ColCodeCategory, codes.Category)
		set(constants.ColCodeCompany, codes.Company)
		set(constants.ColCodeType, codes.Type)
		set(constants.ColCodeOwner, codes.Owner)

		oldTag := get(constants.ColAssetTag)
		tag := tags.Next(codes, year)
		if oldTag != "" && oldTag != tag {
			renumbered++
		}
		set(constants.ColAssetTag, tag)

		out = append(out, row)
	}
	return out, renumbered
}

// parsePurchaseYear: YYYY-MM-DD, иначе текущий год.
func parsePurchaseYear(value string, currentYear int) int {
	if value == "" {
		return currentYear
	}
	t, err := time.Parse(constants.PurchaseDateLayout, value)
	if err != nil {
		return currentYear
	}
	return t.Year()
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
