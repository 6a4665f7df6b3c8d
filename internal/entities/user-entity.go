// Файл: internal/entities/user_entity.go
package entities

import (
	"asset-tracker/pkg/types"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID           uint64      `json:"id" db:"id"`
	Username     string      `json:"username" db:"username"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Role         string      `json:"role" db:"role"`
	IsActive     bool        `json:"is_active" db:"is_active"`
	Email        null.String `json:"email" db:"email"`
	FullName     null.String `json:"full_name" db:"full_name"`

	types.BaseEntity
}
