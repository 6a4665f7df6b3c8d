package dto

type UserDTO struct {
	ID        uint64  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	Email     *string `json:"email"`
	FullName  *string `json:"full_name"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type CreateUserDTO struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=admin user"`
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

type UpdateUserDTO struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=100"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	IsActive *bool   `json:"is_active,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}
