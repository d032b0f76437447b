package billing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// Breakdown es el desglose de una factura de empresa. Los componentes en
// nil no aplican a la forma del plan; Amount es la suma de los presentes.
type Breakdown struct {
	BaseAmount    *decimal.Decimal
	VehicleAmount *decimal.Decimal
	FeeAmount     *decimal.Decimal
	Amount        decimal.Decimal
}

var cien = decimal.NewFromInt(100)

// Compute calcula el monto a facturar para un plan y un conteo de
// vehículos del período. Función pura: no persiste nada.
//
//	FLAT_RATE:   base = flatRate
//	PER_VEHICLE: vehículos = usageCount × perVehicleRate
//	MIXED:       base = basePrice, vehículos = usageCount × perVehicleRate
//
// El recargo, si el plan lo define, se aplica sobre el subtotal de la
// forma: PERCENTAGE ⇒ subtotal × feeValue / 100, FIXED ⇒ feeValue.
//
// Un plan sin los parámetros de su forma es un error de configuración:
// se rechaza, nunca se asume cero. usageCount = 0 produce un componente
// de vehículos en 0 (presente, no nil) en las formas que lo usan.
func Compute(plan *entity.CompanyPlan, usageCount int64) (*Breakdown, error) {
	if plan == nil || usageCount < 0 {
		return nil, domain.ErrInvalidInput
	}

	b := &Breakdown{}
	count := decimal.NewFromInt(usageCount)

	switch plan.PlanType {
	case entity.PlanFlatRate:
		if plan.FlatRate == nil {
			return nil, domain.ErrInvalidInput
		}
		base := *plan.FlatRate
		b.BaseAmount = &base

	case entity.PlanPerVehicle:
		if plan.PerVehicleRate == nil {
			return nil, domain.ErrInvalidInput
		}
		vehicles := count.Mul(*plan.PerVehicleRate)
		b.VehicleAmount = &vehicles

	case entity.PlanMixed:
		if plan.BasePrice == nil || plan.PerVehicleRate == nil {
			return nil, domain.ErrInvalidInput
		}
		base := *plan.BasePrice
		vehicles := count.Mul(*plan.PerVehicleRate)
		b.BaseAmount = &base
		b.VehicleAmount = &vehicles

	default:
		return nil, domain.ErrInvalidInput
	}

	subtotal := decimal.Zero
	if b.BaseAmount != nil {
		subtotal = subtotal.Add(*b.BaseAmount)
	}
	if b.VehicleAmount != nil {
		subtotal = subtotal.Add(*b.VehicleAmount)
	}

	switch plan.FeeType {
	case "":
		// sin recargo
	case entity.FeePercentage:
		if plan.FeeValue == nil {
			return nil, domain.ErrInvalidInput
		}
		fee := subtotal.Mul(*plan.FeeValue).Div(cien)
		b.FeeAmount = &fee
	case entity.FeeFixed:
		if plan.FeeValue == nil {
			return nil, domain.ErrInvalidInput
		}
		fee := *plan.FeeValue
		b.FeeAmount = &fee
	default:
		return nil, domain.ErrInvalidInput
	}

	b.Amount = subtotal
	if b.FeeAmount != nil {
		b.Amount = b.Amount.Add(*b.FeeAmount)
	}
	return b, nil
}
