package repository

import "github.com/tu-usuario/valet-pro/internal/domain/entity"

// UserFilter filtros de listado de usuarios.
type UserFilter struct {
	Role       string
	Roles      []string // alternativa a Role: cualquiera de estos roles
	CompanyIDs []string // nil = sin restricción; restringe por pertenencia a empresa
	IsActive   *bool
	Search     string // busca en nombre, email y cédula
	Page       int
	Limit      int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario y sus asociaciones de empresa.
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByIDNumber(idNumber string) (*entity.User, error)
	Update(user *entity.User) error
	List(filter UserFilter) ([]*entity.User, int64, error)
	CountActiveByRole(role string) (int64, error)
}

// ValetRepository define el puerto de persistencia para Valet.
type ValetRepository interface {
	Create(valet *entity.Valet) error
	GetByID(id string) (*entity.Valet, error)
	// List devuelve los valets ordenados por nombre. companyIDs nil = todos;
	// un valet sin empresa asignada es visible para cualquier staff.
	List(companyIDs []string) ([]*entity.Valet, error)
	Delete(id string) error
}
