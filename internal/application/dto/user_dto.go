package dto

import (
	"time"

	"github.com/xpyme/backoffice-api/internal/domain/entity"
)

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FirstName        string `json:"first_name" validate:"required"`
	PaternalLastName string `json:"paternal_last_name" validate:"required"`
	MaternalLastName string `json:"maternal_last_name"`
	Phone            string `json:"phone" validate:"required,len=10"`
	Role             string `json:"role"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token y usuario autenticado.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UserResponse salida de usuario (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateEmployeeRequest edición desde el directorio de colaboradores.
type UpdateEmployeeRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	PaternalLastName *string `json:"paternal_last_name,omitempty"`
	MaternalLastName *string `json:"maternal_last_name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Role             *string `json:"role,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

// EmployeeListResponse directorio paginado.
type EmployeeListResponse struct {
	Total     int             `json:"total"`
	Employees []*UserResponse `json:"employees"`
}

// ToUserResponse convierte la entidad a DTO.
func ToUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName(),
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
