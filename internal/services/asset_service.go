package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"asset-tracker/internal/dto"
	"asset-tracker/internal/entities"
	"asset-tracker/internal/repositories"
	"asset-tracker/pkg/constants"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/types"
	"asset-tracker/pkg/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	defaultNotes         = "Input dari Web"
	defaultWarranty      = "No"
	defaultDisposalValue = "0"
	otherCategoryLabel   = "Lainnya"
	exportSheetName      = "Assets"
)

type AssetServiceInterface interface {
	GetAssets(ctx context.Context, filter types.AssetFilter) ([]entities.Asset, error)
	FindAsset(ctx context.Context, id string) (*entities.Asset, error)
	CreateAsset(ctx context.Context, d dto.CreateAssetDTO) (*entities.Asset, error)
	ChangeStatus(ctx context.Context, id string, d dto.ChangeStatusDTO) (*entities.Asset, error)
	DeleteAsset(ctx context.Context, id string) error

	SearchByLocation(ctx context.Context, location, room string) ([]entities.Asset, error)
	Relocate(ctx context.Context, d dto.RelocateAssetDTO) (*entities.Asset, error)

	GetDisposalCandidates(ctx context.Context) ([]entities.Asset, error)
	Dispose(ctx context.Context, id string, d dto.DisposeAssetDTO) (*entities.Asset, error)
	GetDisposalLogs(ctx context.Context) ([]entities.DisposalLog, error)

	Dashboard(ctx context.Context, status string) (*dto.DashboardDTO, error)
	ExportAssets(ctx context.Context, status string) (*bytes.Buffer, error)
}

type AssetService struct {
	assets  repositories.AssetRepositoryInterface
	logs    repositories.AuditLogRepositoryInterface
	refs    ReferenceServiceInterface
	syncSvc SyncServiceInterface
	clock   utils.Clock
	logger  *zap.Logger
}

func NewAssetService(
	assets repositories.AssetRepositoryInterface,
	logs repositories.AuditLogRepositoryInterface,
	refs ReferenceServiceInterface,
	syncSvc SyncServiceInterface,
	clock utils.Clock,
	logger *zap.Logger,
) AssetServiceInterface {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &AssetService{
		assets:  assets,
		logs:    logs,
		refs:    refs,
		syncSvc: syncSvc,
		clock:   clock,
		logger:  logger.Named("asset_service"),
	}
}

func (s *AssetService) now() string {
	return s.clock.Now().UTC().Format(constants.LogTimestampLayout)
}

// GetAssets фильтрует по статусу ("All" или пусто - все) и по подстроке
// в Item Name, Asset Tag, ID и Category без учёта регистра.
func (s *AssetService) GetAssets(ctx context.Context, filter types.AssetFilter) ([]entities.Asset, error) {
	all, err := s.assets.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(filter.Status)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]entities.Asset, 0, len(all))
	for _, a := range all {
		if status != "" && !strings.EqualFold(status, "All") && a.Status != status {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func matchesSearch(a entities.Asset, needle string) bool {
	for _, field := range []string{a.ItemName, a.AssetTag, a.ID, a.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *AssetService) FindAsset(ctx context.Context, id string) (*entities.Asset, error) {
	return s.assets.FindAsset(ctx, strings.TrimSpace(id))
}

// CreateAsset дописывает строку, затем запускает синхронизацию, чтобы
// новый актив сразу получил ID, тег и амортизацию.
func (s *AssetService) CreateAsset(ctx context.Context, d dto.CreateAssetDTO) (*entities.Asset, error) {
	if err := s.refs.EnsureAssetReferences(ctx, d); err != nil {
		return nil, fmt.Errorf("не удалось обновить справочники: %w", err)
	}

	asset := entities.Asset{
		ItemName:     strings.TrimSpace(d.ItemName),
		Category:     strings.TrimSpace(d.Category),
		Type:         strings.TrimSpace(d.Type),
		Manufacture:  d.Manufacture,
		Model:        d.Model,
		SerialNumber: d.SerialNumber,
		Company:      strings.TrimSpace(d.Company),
		BisnisUnit:   d.BisnisUnit,
		Location:     strings.TrimSpace(d.Location),
		RoomLocation: strings.TrimSpace(d.RoomLocation),
		Notes:        orDefault(d.Notes, defaultNotes),
		Condition:    d.Condition,
		PurchaseDate: strings.TrimSpace(d.PurchaseDate),
		PurchaseCost: strings.TrimSpace(d.PurchaseCost),
		Warranty:     orDefault(d.Warranty, defaultWarranty),
		Supplier:     d.Supplier,
		Journal:      d.Journal,
		Owner:        strings.TrimSpace(d.Owner),
		Status:       constants.StatusActive,
		CodeCompany:  strings.TrimSpace(d.CodeCompany),
		CodeOwner:    strings.TrimSpace(d.CodeOwner),
	}
	if err := s.assets.AppendAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("не удалось добавить актив: %w", err)
	}
	s.logger.Info("Актив добавлен", zap.String("item", asset.ItemName), zap.String("by", utils.GetUsernameFromCtx(ctx)))

	res, err := s.syncSvc.Run(ctx)
	switch {
	case err != nil:
		s.logger.Error("Автосинхронизация после добавления не выполнена", zap.Error(err))
	case !res.Success:
		s.logger.Warn("Автосинхронизация после добавления не удалась", zap.String("message", res.Message))
	}

	// синхронизация не меняет порядок строк, новый актив - последний
	all, err := s.assets.GetAssets(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return &asset, nil
	}
	return &all[len(all)-1], nil
}

func (s *AssetService) ChangeStatus(ctx context.Context, id string, d dto.ChangeStatusDTO) (*entities.Asset, error) {
	previous, err := s.assets.UpdateAssetFields(ctx, id, map[string]string{constants.ColStatus: d.Status})
	if err != nil {
		return nil, err
	}

	entry := entities.StatusLog{
		Timestamp: s.now(),
		AssetID:   previous.ID,
		AssetName: previous.ItemName,
		OldStatus: previous.Status,
		NewStatus: d.Status,
		ChangedBy: utils.GetUsernameFromCtx(ctx),
	}
	if err := s.logs.AppendStatusLog(ctx, entry); err != nil {
		s.logger.Error("Не удалось записать Log_Status", zap.String("asset_id", id), zap.Error(err))
	}

	updated := *previous
	updated.Status = d.Status
	return &updated, nil
}

func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	deleted, err := s.assets.DeleteAsset(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("Актив удалён",
		zap.String("asset_id", deleted.ID),
		zap.String("item", deleted.ItemName),
		zap.String("by", utils.GetUsernameFromCtx(ctx)),
	)
	return nil
}

func (s *AssetService) SearchByLocation(ctx context.Context, location, room string) ([]entities.Asset, error) {
	location, room = strings.TrimSpace(location), strings.TrimSpace(room)
	if location == "" || room == "" {
		return nil, apperrors.NewBadRequestError("Укажите локацию и помещение")
	}
	all, err := s.assets.GetAssets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Asset, 0)
	for _, a := range all {
		if strings.EqualFold(strings.TrimSpace(a.Location), location) && strings.EqualFold(strings.TrimSpace(a.RoomLocation), room) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *AssetService) Relocate(ctx context.Context, d dto.RelocateAssetDTO) (*entities.Asset, error) {
	toLocation, toRoom := strings.TrimSpace(d.ToLocation), strings.TrimSpace(d.ToRoom)

	current, err := s.assets.FindAsset(ctx, d.AssetID)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(current.Location, toLocation) && strings.EqualFold(current.RoomLocation, toRoom) {
		return nil, apperrors.ErrSameLocation
	}

	previous, err := s.assets.UpdateAssetFields(ctx, d.AssetID, map[string]string{
		constants.ColLocation:     toLocation,
		constants.ColRoomLocation: toRoom,
	})
	if err != nil {
		return nil, err
	}

	entry := entities.RelocationLog{
		Timestamp:    s.now(),
		AssetID:      previous.ID,
		AssetName:    previous.ItemName,
		FromLocation: previous.Location,
		FromRoom:     previous.RoomLocation,
		ToLocation:   toLocation,
		ToRoom:       toRoom,
		MovedBy:      utils.GetUsernameFromCtx(ctx),
	}
	if err := s.logs.AppendRelocationLog(ctx, entry); err != nil {
		s.logger.Error("Не удалось записать Log_Relocation", zap.String("asset_id", d.AssetID), zap.Error(err))
	}

	updated := *previous
	updated.Location, updated.RoomLocation = toLocation, toRoom
	return &updated, nil
}

func (s *AssetService) GetDisposalCandidates(ctx context.Context) ([]entities.Asset, error) {
	return s.GetAssets(ctx, types.AssetFilter{Status: constants.StatusToBeDisposed})
}

func (s *AssetService) Dispose(ctx context.Context, id string, d dto.DisposeAssetDTO) (*entities.Asset, error) {
	current, err := s.assets.FindAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == constants.StatusDisposed {
		return nil, apperrors.ErrAlreadyDisposed
	}

	previous, err := s.assets.UpdateAssetFields(ctx, id, map[string]string{constants.ColStatus: constants.StatusDisposed})
	if err != nil {
		return nil, err
	}

	entry := entities.DisposalLog{
		Timestamp:      s.now(),
		AssetID:        previous.ID,
		AssetName:      previous.ItemName,
		DisposalMethod: strings.TrimSpace(d.DisposalMethod),
		DisposalValue:  orDefault(d.DisposalValue, defaultDisposalValue),
		DisposedBy:     utils.GetUsernameFromCtx(ctx),
		Notes:          d.Notes,
		Status:         constants.StatusDisposed,
	}
	if err := s.logs.AppendDisposalLog(ctx, entry); err != nil {
		s.logger.Error("Не удалось записать Log_Disposal", zap.String("asset_id", id), zap.Error(err))
	}

	updated := *previous
	updated.Status = constants.StatusDisposed
	return &updated, nil
}

func (s *AssetService) GetDisposalLogs(ctx context.Context) ([]entities.DisposalLog, error) {
	return s.logs.GetDisposalLogs(ctx)
}

// Dashboard считает активы по категориям и годам покупки.
func (s *AssetService) Dashboard(ctx context.Context, status string) (*dto.DashboardDTO, error) {
	assets, err := s.GetAssets(ctx, types.AssetFilter{Status: status})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]int)
	byYear := make(map[string]int)
	for _, a := range assets {
		category := strings.TrimSpace(a.Category)
		if category == "" {
			category = otherCategoryLabel
		}
		byCategory[category]++
		if year := strings.TrimSpace(a.Tahun); year != "" {
			byYear[year]++
		}
	}

	if status == "" {
		status = "All"
	}
	return &dto.DashboardDTO{
		Status:     status,
		Total:      len(assets),
		ByCategory: dashboardEntries(byCategory),
		ByYear:     dashboardEntries(byYear),
	}, nil
}

func dashboardEntries(counts map[string]int) []dto.DashboardEntryDTO {
	out := make([]dto.DashboardEntryDTO, 0, len(counts))
	for label, count := range counts {
		out = append(out, dto.DashboardEntryDTO{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// ExportAssets строит XLSX с каноническим заголовком листа Assets.
func (s *AssetService) ExportAssets(ctx context.Context, status string) (*bytes.Buffer, error) {
	assets, err := s.GetAssets(ctx, types.AssetFilter{Status: status})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(constants.AssetHeader))
	for i, h := range constants.AssetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, err
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastCol, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(exportSheetName, "A1", lastCol, style)

	for i, a := range assets {
		values := repositories.AssetToValues(a)
		row := make([]interface{}, len(constants.AssetHeader))
		for j, col := range constants.AssetHeader {
			row[j] = values[col]
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(exportSheetName, "B", "B", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("не удалось сформировать XLSX: %w", err)
	}
	return buf, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
