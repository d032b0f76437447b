package plans

import (
	"context"

	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el cambio de plan (desactivar
// el vigente + insertar el nuevo) y la facturación (snapshot de uso + plan
// activo + factura) sean atómicos.
type TxRunner interface {
	RunPlanChange(ctx context.Context, fn func(
		planRepo repository.PlanRepository,
	) error) error

	RunInvoice(ctx context.Context, fn func(
		planRepo repository.PlanRepository,
		invoiceRepo repository.InvoiceRepository,
		recordRepo repository.ParkingRecordRepository,
	) error) error
}
