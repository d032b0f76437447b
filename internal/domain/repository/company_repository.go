package repository

import "github.com/tu-usuario/valet-pro/internal/domain/entity"

// CompanyFilter filtros de listado de empresas.
type CompanyFilter struct {
	CompanyIDs []string // restricción del actor; nil = sin restricción
	Name       string
	IsActive   *bool
	Search     string
	Page       int
	Limit      int
}

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	// GetByID excluye empresas con soft delete.
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
	// SetUsers reemplaza las asociaciones usuario-empresa.
	SetUsers(companyID string, userIDs []string) error
	List(filter CompanyFilter) ([]*entity.Company, int64, error)
	// SoftDelete marca deleted_at y desactiva; nunca borra la fila.
	SoftDelete(id string) error
}
