package repository

import "github.com/tu-usuario/valet-pro/internal/domain/entity"

// PlanRepository define el puerto de persistencia para CompanyPlan.
// Los planes son un log de versiones: se insertan y se desactivan,
// nunca se editan ni se borran.
type PlanRepository interface {
	Create(plan *entity.CompanyPlan) error
	GetByID(id string) (*entity.CompanyPlan, error)
	// GetActiveByCompany devuelve nil si la empresa nunca ha tenido plan.
	GetActiveByCompany(companyID string) (*entity.CompanyPlan, error)
	// DeactivateActive apaga el plan activo de la empresa (si existe).
	// Debe ejecutarse en la misma transacción que el Create del nuevo.
	DeactivateActive(companyID string) error
	ListByCompany(companyID string) ([]*entity.CompanyPlan, error)
}
