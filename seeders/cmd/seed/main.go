package main

import (
	"context"
	"flag"
	"log"

	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/config"
	"asset-tracker/pkg/database/postgresql"
	"asset-tracker/seeders"

	"go.uber.org/zap"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД и листов)    ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "Применить миграции Postgres")
	runAdmin := flag.Bool("admin", false, "Создать администратора (ADMIN_USERNAME / ADMIN_PASSWORD)")
	runSheets := flag.Bool("sheets", false, "Создать недостающие листы с заголовками")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -migrate -admin -sheets)")

	flag.Parse()

	if !*runMigrate && !*runAdmin && !*runSheets && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -migrate -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()

	if *runAll || *runMigrate || *runAdmin {
		dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer dbPool.Close()

		if *runAll || *runMigrate {
			if err := postgresql.Migrate(dbPool); err != nil {
				log.Fatalf("❌ %v", err)
			}
			log.Println("✅ Миграции применены.")
			log.Println("======================================================")
		}

		if *runAll || *runAdmin {
			if err := seeders.SeedAdmin(ctx, dbPool, cfg); err != nil {
				log.Fatalf("❌ %v", err)
			}
			log.Println("======================================================")
		}
	}

	if *runAll || *runSheets {
		store, err := openStore(ctx, cfg)
		if err != nil {
			log.Fatalf("❌ не удалось открыть хранилище листов: %v", err)
		}
		if err := seeders.SeedSheets(ctx, store); err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}

func openStore(ctx context.Context, cfg *config.Config) (sheets.Store, error) {
	logger := zap.NewNop()
	if cfg.Sheets.Backend == config.SheetsBackendWorkbook {
		return sheets.NewWorkbookStore(cfg.Sheets.WorkbookPath, logger)
	}
	creds, err := cfg.GoogleCredentials()
	if err != nil {
		return nil, err
	}
	return sheets.NewGoogleStore(ctx, creds, cfg.Sheets.SpreadsheetID, cfg.Sheets.RequestsPerMinute, logger)
}
