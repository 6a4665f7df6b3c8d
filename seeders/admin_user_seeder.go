// Файл: seeders/admin_user_seeder.go
package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"asset-tracker/pkg/constants"
	"asset-tracker/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// seedAdminUser создаёт администратора, если пользователя с таким логином ещё нет.
// Существующий пароль не перезаписывается.
func seedAdminUser(ctx context.Context, db *pgxpool.Pool, username, password string) error {
	log.Printf("  - Создание администратора '%s'...", username)

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&userID)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, password_hash, role, is_active, full_name)
              VALUES ($1, $2, $3, TRUE, $4)
              ON CONFLICT (username) DO NOTHING
              RETURNING id`
	err = db.QueryRow(ctx, query, username, hashedPassword, constants.RoleAdmin, "Administrator").Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Println("    - Администратор создан параллельно. Пропускаем.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	log.Printf("    - Администратор создан (id=%d). Смените пароль после первого входа.", userID)
	return nil
}
