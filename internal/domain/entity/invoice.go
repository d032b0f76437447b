package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyInvoice es la factura calculada para una empresa por un período,
// siempre contra una versión concreta de plan (CompanyPlanID). Cambiar el
// plan después no altera facturas pasadas. Una factura no se recalcula:
// corregirla significa crear una de reemplazo.
type CompanyInvoice struct {
	ID            string
	CompanyPlanID string
	AmountUSD     decimal.Decimal
	Status        string // PENDING | RECEIVED | CANCELLED (constantes de Payment)
	Validation    string // MANUAL | AUTOMATIC
	PlanType      string // copia de la forma del plan al momento del cálculo

	// Snapshot de uso y desglose del cálculo. Los componentes presentes
	// son exactamente los que aplican a la forma del plan.
	VehicleCount  *int64
	BaseAmount    *decimal.Decimal
	VehicleAmount *decimal.Decimal
	FeeAmount     *decimal.Decimal
	PeriodStart   *time.Time
	PeriodEnd     *time.Time

	PaymentMethodID string
	Reference       string
	Note            string
	Date            time.Time
}
