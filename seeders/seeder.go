package seeders

import (
	"context"
	"fmt"
	"log"

	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/config"
	"asset-tracker/pkg/constants"

	"github.com/jackc/pgx/v5/pgxpool"
)

// worksheets - все листы, с которыми работает приложение, и их заголовки.
var worksheets = []struct {
	name   string
	header []string
}{
	{constants.SheetAssets, constants.AssetHeader},
	{constants.SheetRefCategories, constants.RefCategoriesHeader},
	{constants.SheetRefTypes, constants.RefTypesHeader},
	{constants.SheetRefCompanies, constants.RefCompaniesHeader},
	{constants.SheetRefOwners, constants.RefOwnersHeader},
	{constants.SheetRefLocation, constants.RefLocationHeader},
	{constants.SheetLogStatus, constants.LogStatusHeader},
	{constants.SheetLogRelocation, constants.LogRelocationHeader},
	{constants.SheetLogDisposal, constants.LogDisposalHeader},
}

// SeedAdmin создаёт учётную запись администратора из ADMIN_USERNAME / ADMIN_PASSWORD.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("▶️  Запуск создания администратора...")
	if err := seedAdminUser(ctx, db, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("сидер администратора: %w", err)
	}
	log.Println("✅ Администратор проверен/создан.")
	return nil
}

// SeedSheets создаёт недостающие листы с заголовками. Существующие данные не трогаются.
func SeedSheets(ctx context.Context, store sheets.Store) error {
	log.Println("▶️  Проверка структуры листов...")
	for _, ws := range worksheets {
		if err := store.EnsureTable(ctx, ws.name, ws.header); err != nil {
			return fmt.Errorf("не удалось подготовить лист %s: %w", ws.name, err)
		}
		log.Printf("  - Лист %s готов.", ws.name)
	}
	log.Println("✅ Структура листов проверена.")
	return nil
}
