package repository

import "github.com/tu-usuario/valet-pro/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para CompanyInvoice.
// Las facturas no se recalculan en sitio: corregir es crear un reemplazo.
type InvoiceRepository interface {
	Create(invoice *entity.CompanyInvoice) error
	GetByID(id string) (*entity.CompanyInvoice, error)
	// GetByPlanAndID valida la pertenencia de la factura al plan.
	GetByPlanAndID(planID, invoiceID string) (*entity.CompanyInvoice, error)
	UpdateStatus(id, status string) error
	ListByPlan(planID string) ([]*entity.CompanyInvoice, error)
}
