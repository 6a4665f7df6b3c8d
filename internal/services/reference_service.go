package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/dto"
	"asset-tracker/internal/entities"
	"asset-tracker/internal/repositories"
	"asset-tracker/pkg/constants"
	apperrors "asset-tracker/pkg/errors"

	"go.uber.org/zap"
)

type ReferenceServiceInterface interface {
	GetReferenceLists(ctx context.Context) (*dto.ReferenceListsDTO, error)
	GetLocationRoomMap(ctx context.Context) (map[string][]string, error)
	LoadSyncReferences(ctx context.Context) (*SyncReferences, error)

	AddTypeIfNotExists(ctx context.Context, typeName, category string) (*dto.ReferenceCodeDTO, error)
	AddCompanyIfNotExists(ctx context.Context, name, code string) (*dto.ReferenceCodeDTO, error)
	AddOwnerIfNotExists(ctx context.Context, name, code string) (*dto.ReferenceCodeDTO, error)
	AddLocationIfNotExists(ctx context.Context, location, room string) (bool, error)
	EnsureAssetReferences(ctx context.Context, d dto.CreateAssetDTO) error
}

type ReferenceService struct {
	repo   repositories.ReferenceRepositoryInterface
	cache  *cache.Cache
	logger *zap.Logger
}

func NewReferenceService(repo repositories.ReferenceRepositoryInterface, c *cache.Cache, logger *zap.Logger) ReferenceServiceInterface {
	return &ReferenceService{repo: repo, cache: c, logger: logger.Named("reference_service")}
}

func (s *ReferenceService) GetReferenceLists(ctx context.Context) (*dto.ReferenceListsDTO, error) {
	return cache.Remember(ctx, s.cache, constants.CacheKeyReferenceLists, s.loadReferenceLists)
}

func (s *ReferenceService) GetLocationRoomMap(ctx context.Context) (map[string][]string, error) {
	return cache.Remember(ctx, s.cache, constants.CacheKeyLocationRoomMap, s.buildLocationRoomMap)
}

func (s *ReferenceService) LoadSyncReferences(ctx context.Context) (*SyncReferences, error) {
	return cache.Remember(ctx, s.cache, constants.CacheKeySyncReferences, s.loadSyncReferences)
}

func (s *ReferenceService) loadReferenceLists(ctx context.Context) (*dto.ReferenceListsDTO, error) {
	categories, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.repo.LoadTypes(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.repo.LoadCompanies(ctx)
	if err != nil {
		return nil, err
	}
	owners, err := s.repo.LoadOwners(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.repo.LoadLocations(ctx)
	if err != nil {
		return nil, err
	}

	lists := &dto.ReferenceListsDTO{
		Types:     make([]dto.TypeRefDTO, 0, len(types)),
		Companies: make([]string, 0, len(companies)),
	}

	categoryNames := make([]string, 0, len(categories))
	for _, c := range categories {
		categoryNames = append(categoryNames, c.Name)
	}
	lists.Categories = sortedUnique(categoryNames)

	for _, t := range types {
		lists.Types = append(lists.Types, dto.TypeRefDTO{Type: t.Name, Category: t.Category, CodeType: padCode(t.Code)})
	}
	for _, c := range companies {
		lists.Companies = append(lists.Companies, fmt.Sprintf("%s (%s)", c.Name, c.Code))
	}

	ownerNames := make([]string, 0, len(owners))
	for _, o := range owners {
		ownerNames = append(ownerNames, o.Name)
	}
	lists.Owners = sortedUnique(ownerNames)

	locNames := make([]string, 0, len(locations))
	rooms := make([]string, 0, len(locations))
	for _, l := range locations {
		locNames = append(locNames, l.Name)
		rooms = append(rooms, l.Room)
	}
	lists.Locations = sortedUnique(locNames)
	lists.Rooms = sortedUnique(rooms)

	return lists, nil
}

func (s *ReferenceService) buildLocationRoomMap(ctx context.Context) (map[string][]string, error) {
	locations, err := s.repo.LoadLocations(ctx)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string][]string)
	for _, l := range locations {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}
		if _, ok := mapping[name]; !ok {
			mapping[name] = []string{}
		}
		if room := strings.TrimSpace(l.Room); room != "" {
			mapping[name] = append(mapping[name], room)
		}
	}
	return mapping, nil
}

func (s *ReferenceService) loadSyncReferences(ctx context.Context) (*SyncReferences, error) {
	categories, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("Ref_Categories: %w", err)
	}
	types, err := s.repo.LoadTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("Ref_Types: %w", err)
	}
	companies, err := s.repo.LoadCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("Ref_Companies: %w", err)
	}
	owners, err := s.repo.LoadOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("Ref_Owners: %w", err)
	}
	return BuildSyncReferences(categories, types, companies, owners), nil
}

// invalidate сбрасывает все ключи справочников. Запись в таблицу уже прошла,
// поэтому ошибка кеша только логируется.
func (s *ReferenceService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, constants.ReferenceCacheKeys...); err != nil {
		s.logger.Error("Справочник изменён, но кеш не сброшен", zap.Error(err))
	}
}

// AddTypeIfNotExists присваивает новому типу следующий свободный код внутри категории.
func (s *ReferenceService) AddTypeIfNotExists(ctx context.Context, typeName, category string) (*dto.ReferenceCodeDTO, error) {
	typeName, category = strings.TrimSpace(typeName), strings.TrimSpace(category)
	types, err := s.repo.LoadTypes(ctx)
	if err != nil {
		return nil, err
	}

	maxCode := 0
	for _, t := range types {
		if !strings.EqualFold(strings.TrimSpace(t.Category), category) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(t.Name), typeName) {
			return &dto.ReferenceCodeDTO{Name: t.Name, Code: padCode(t.Code)}, nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(t.Code)); err == nil && n > maxCode {
			maxCode = n
		}
	}

	code := fmt.Sprintf("%02d", maxCode+1)
	if err := s.repo.AppendType(ctx, entities.AssetType{Name: typeName, Category: category, Code: code}); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("Добавлен тип", zap.String("type", typeName), zap.String("category", category), zap.String("code", code))
	return &dto.ReferenceCodeDTO{Name: typeName, Code: code, Created: true}, nil
}

type codedEntry struct {
	name string
	code string
}

// addCoded - общая логика для компаний и владельцев: существующее имя возвращается как есть,
// новое требует кода, который ещё не занят.
func (s *ReferenceService) addCoded(ctx context.Context, kind, name, code string, existing []codedEntry, appendFn func() error) (*dto.ReferenceCodeDTO, error) {
	for _, e := range existing {
		if strings.EqualFold(strings.TrimSpace(e.name), name) {
			return &dto.ReferenceCodeDTO{Name: e.name, Code: e.code}, nil
		}
	}
	if code == "" {
		s.logger.Warn("Новая запись справочника без кода пропущена", zap.String("kind", kind), zap.String("name", name))
		return &dto.ReferenceCodeDTO{Name: name}, nil
	}
	for _, e := range existing {
		if strings.EqualFold(strings.TrimSpace(e.code), code) {
			return nil, fmt.Errorf("%w: %s %q", apperrors.ErrReferenceCodeTaken, kind, code)
		}
	}
	if err := appendFn(); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("Добавлена запись справочника", zap.String("kind", kind), zap.String("name", name), zap.String("code", code))
	return &dto.ReferenceCodeDTO{Name: name, Code: code, Created: true}, nil
}

func (s *ReferenceService) AddCompanyIfNotExists(ctx context.Context, name, code string) (*dto.ReferenceCodeDTO, error) {
	name, code = strings.TrimSpace(name), strings.TrimSpace(code)
	companies, err := s.repo.LoadCompanies(ctx)
	if err != nil {
		return nil, err
	}
	existing := make([]codedEntry, 0, len(companies))
	for _, c := range companies {
		existing = append(existing, codedEntry{name: c.Name, code: c.Code})
	}
	return s.addCoded(ctx, "company", name, code, existing, func() error {
		return s.repo.AppendCompany(ctx, entities.Company{Name: name, Code: code})
	})
}

func (s *ReferenceService) AddOwnerIfNotExists(ctx context.Context, name, code string) (*dto.ReferenceCodeDTO, error) {
	name, code = strings.TrimSpace(name), strings.TrimSpace(code)
	owners, err := s.repo.LoadOwners(ctx)
	if err != nil {
		return nil, err
	}
	existing := make([]codedEntry, 0, len(owners))
	for _, o := range owners {
		existing = append(existing, codedEntry{name: o.Name, code: o.Code})
	}
	return s.addCoded(ctx, "owner", name, code, existing, func() error {
		return s.repo.AppendOwner(ctx, entities.Owner{Name: name, Code: code})
	})
}

func (s *ReferenceService) AddLocationIfNotExists(ctx context.Context, location, room string) (bool, error) {
	location, room = strings.TrimSpace(location), strings.TrimSpace(room)
	locations, err := s.repo.LoadLocations(ctx)
	if err != nil {
		return false, err
	}
	for _, l := range locations {
		if strings.EqualFold(strings.TrimSpace(l.Name), location) && strings.EqualFold(strings.TrimSpace(l.Room), room) {
			return false, nil
		}
	}
	if err := s.repo.AppendLocation(ctx, entities.Location{Name: location, Room: room}); err != nil {
		return false, err
	}
	s.invalidate(ctx)
	return true, nil
}

// EnsureAssetReferences дополняет справочники значениями из формы нового актива.
// Категории фиксированы и здесь не добавляются.
func (s *ReferenceService) EnsureAssetReferences(ctx context.Context, d dto.CreateAssetDTO) error {
	if _, err := s.AddTypeIfNotExists(ctx, d.Type, d.Category); err != nil {
		return fmt.Errorf("тип: %w", err)
	}
	if _, err := s.AddLocationIfNotExists(ctx, d.Location, d.RoomLocation); err != nil {
		return fmt.Errorf("локация: %w", err)
	}
	if _, err := s.AddCompanyIfNotExists(ctx, d.Company, d.CodeCompany); err != nil {
		return fmt.Errorf("компания: %w", err)
	}
	if _, err := s.AddOwnerIfNotExists(ctx, d.Owner, d.CodeOwner); err != nil {
		return fmt.Errorf("владелец: %w", err)
	}
	return nil
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
