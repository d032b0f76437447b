package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain"
)

// Formas de plan de facturación.
const (
	PlanFlatRate   = "FLAT_RATE"   // tarifa plana por período
	PlanPerVehicle = "PER_VEHICLE" // tarifa por vehículo atendido
	PlanMixed      = "MIXED"       // base fija + tarifa por vehículo
)

// Tipos de recargo opcional sobre el subtotal del plan.
const (
	FeePercentage = "PERCENTAGE"
	FeeFixed      = "FIXED"
)

// CompanyPlan es UNA versión del contrato de facturación de una empresa.
// Los planes nunca se editan ni se borran: cambiar condiciones es crear
// una versión nueva y desactivar la anterior, para que las facturas
// pasadas conserven la regla de precio con la que se calcularon.
type CompanyPlan struct {
	ID             string
	CompanyID      string
	PlanType       string // FLAT_RATE | PER_VEHICLE | MIXED
	FlatRate       *decimal.Decimal
	PerVehicleRate *decimal.Decimal
	BasePrice      *decimal.Decimal
	FeeType        string // PERCENTAGE | FIXED, vacío = sin recargo
	FeeValue       *decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
}

// PlanParams agrupa los parámetros de construcción de un plan.
// Cuáles son obligatorios depende de la forma (ver NewCompanyPlan).
type PlanParams struct {
	FlatRate       *decimal.Decimal
	PerVehicleRate *decimal.Decimal
	BasePrice      *decimal.Decimal
	FeeType        string
	FeeValue       *decimal.Decimal
}

// NewCompanyPlan construye un plan validando los parámetros obligatorios
// de cada forma. La validación ocurre aquí, en la construcción: un plan
// persistido nunca puede estar incompleto para su forma.
//
//	FLAT_RATE   requiere flatRate
//	PER_VEHICLE requiere perVehicleRate
//	MIXED       requiere basePrice y perVehicleRate
//
// El recargo (feeType + feeValue) es opcional en cualquier forma, pero si
// se indica feeType debe venir feeValue y viceversa.
func NewCompanyPlan(companyID, planType string, params PlanParams) (*CompanyPlan, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}

	switch planType {
	case PlanFlatRate:
		if params.FlatRate == nil {
			return nil, domain.ErrInvalidInput
		}
	case PlanPerVehicle:
		if params.PerVehicleRate == nil {
			return nil, domain.ErrInvalidInput
		}
	case PlanMixed:
		if params.BasePrice == nil || params.PerVehicleRate == nil {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	switch params.FeeType {
	case "":
		if params.FeeValue != nil {
			return nil, domain.ErrInvalidInput
		}
	case FeePercentage, FeeFixed:
		if params.FeeValue == nil || params.FeeValue.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	return &CompanyPlan{
		CompanyID:      companyID,
		PlanType:       planType,
		FlatRate:       params.FlatRate,
		PerVehicleRate: params.PerVehicleRate,
		BasePrice:      params.BasePrice,
		FeeType:        params.FeeType,
		FeeValue:       params.FeeValue,
		IsActive:       true,
	}, nil
}
