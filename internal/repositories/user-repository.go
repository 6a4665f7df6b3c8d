package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asset-tracker/internal/entities"
	"asset-tracker/pkg/constants"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userTable = "users"

var userColumns = []string{
	"id", "username", "password_hash", "role", "is_active", "email", "full_name", "created_at", "updated_at",
}

const pgUniqueViolation = "23505"

//go:generate mockgen -source=user-repository.go -destination=mocks/mock_user_repository.go -package=mocks

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.UserFilter) ([]entities.User, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	UsernameExists(ctx context.Context, username string, excludeID uint64) (bool, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.Email, &u.FullName, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func mapUserWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.UserFilter) ([]entities.User, error) {
	builder := psql().Select(userColumns...).From(userTable).OrderBy("username ASC")
	if filter.Role == constants.RoleAdmin || filter.Role == constants.RoleUser {
		builder = builder.Where(sq.Eq{"role": filter.Role})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*entities.User, error) {
	query, args, err := psql().Select(userColumns...).From(userTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeID uint64) (bool, error) {
	builder := psql().Select("1").From(userTable).Where(sq.Eq{"username": username})
	if excludeID != 0 {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}
	query, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query, args, err := psql().Insert(userTable).
		Columns("username", "password_hash", "role", "is_active", "email", "full_name").
		Values(user.Username, user.PasswordHash, user.Role, user.IsActive, user.Email, user.FullName).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapUserWriteError(err)
	}
	return created, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query, args, err := psql().Update(userTable).
		Set("username", user.Username).
		Set("role", user.Role).
		Set("is_active", user.IsActive).
		Set("email", user.Email).
		Set("full_name", user.FullName).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapUserWriteError(err)
	}
	return updated, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	query, args, err := psql().Update(userTable).
		Set("password_hash", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	query, args, err := psql().Delete(userTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func joinColumns() string {
	return strings.Join(userColumns, ", ")
}
