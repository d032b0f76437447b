package dto

import (
	"time"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// RegisterRequest entrada para registro de staff (password en texto, se hashea en use case).
type RegisterRequest struct {
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=8"`
	Name       string   `json:"name" validate:"required,min=1,max=200"`
	IDNumber   string   `json:"idNumber" validate:"required,max=30"`
	Role       string   `json:"role" validate:"omitempty,oneof=SUPER_ADMIN ADMIN MANAGER ATTENDANT CLIENT"`
	Phone      string   `json:"phone" validate:"omitempty,max=30"`
	CompanyIDs []string `json:"companyIds"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	IDNumber   string    `json:"idNumber"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Phone      string    `json:"phone,omitempty"`
	PhotoURL   string    `json:"photoUrl,omitempty"`
	IsActive   bool      `json:"isActive"`
	CompanyIDs []string  `json:"companyIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest edición parcial de un usuario.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	PhotoURL *string `json:"photoUrl"`
	IsActive *bool   `json:"isActive"`
	Role     *string `json:"role"`
}

// FilterUsersRequest filtros del listado de usuarios.
type FilterUsersRequest struct {
	PageRequest
	Role     string `query:"role"`
	IsActive *bool  `query:"isActive"`
	Search   string `query:"search"`
}

// ToUserResponse convierte la entidad a DTO.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		IDNumber:   u.IDNumber,
		Name:       u.Name,
		Role:       u.Role,
		Phone:      u.Phone,
		PhotoURL:   u.PhotoURL,
		IsActive:   u.IsActive,
		CompanyIDs: u.CompanyIDs,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
