package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewCompanyPlan_ParametrosPorForma(t *testing.T) {
	casos := []struct {
		nombre   string
		planType string
		params   entity.PlanParams
		ok       bool
	}{
		{"flat rate completo", entity.PlanFlatRate, entity.PlanParams{FlatRate: dec("800")}, true},
		{"flat rate sin tarifa", entity.PlanFlatRate, entity.PlanParams{}, false},
		{"per vehicle completo", entity.PlanPerVehicle, entity.PlanParams{PerVehicleRate: dec("5")}, true},
		{"per vehicle sin tarifa", entity.PlanPerVehicle, entity.PlanParams{FlatRate: dec("800")}, false},
		{"mixed completo", entity.PlanMixed, entity.PlanParams{BasePrice: dec("300"), PerVehicleRate: dec("3")}, true},
		{"mixed sin base", entity.PlanMixed, entity.PlanParams{PerVehicleRate: dec("3")}, false},
		{"mixed sin tarifa por vehículo", entity.PlanMixed, entity.PlanParams{BasePrice: dec("300")}, false},
		{"forma desconocida", "HOURLY", entity.PlanParams{FlatRate: dec("10")}, false},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			plan, err := entity.NewCompanyPlan("company-1", c.planType, c.params)
			if c.ok {
				require.NoError(t, err)
				assert.True(t, plan.IsActive, "un plan nuevo nace activo")
				assert.Equal(t, c.planType, plan.PlanType)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestNewCompanyPlan_Recargo(t *testing.T) {
	// feeType sin feeValue
	_, err := entity.NewCompanyPlan("c1", entity.PlanFlatRate, entity.PlanParams{
		FlatRate: dec("800"), FeeType: entity.FeePercentage,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// feeValue sin feeType
	_, err = entity.NewCompanyPlan("c1", entity.PlanFlatRate, entity.PlanParams{
		FlatRate: dec("800"), FeeValue: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// feeValue negativo
	_, err = entity.NewCompanyPlan("c1", entity.PlanFlatRate, entity.PlanParams{
		FlatRate: dec("800"), FeeType: entity.FeeFixed, FeeValue: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// recargo bien formado
	plan, err := entity.NewCompanyPlan("c1", entity.PlanPerVehicle, entity.PlanParams{
		PerVehicleRate: dec("5"), FeeType: entity.FeeFixed, FeeValue: dec("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.FeeFixed, plan.FeeType)
}

func TestNewCompanyPlan_EmpresaRequerida(t *testing.T) {
	_, err := entity.NewCompanyPlan("", entity.PlanFlatRate, entity.PlanParams{FlatRate: dec("800")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPayment_DeriveStatus(t *testing.T) {
	assert.Equal(t, entity.PaymentStatusReceived, entity.DeriveStatus(entity.ValidationManual))
	assert.Equal(t, entity.PaymentStatusPending, entity.DeriveStatus(entity.ValidationAutomatic))
}

func TestPayment_CanTransitionTo(t *testing.T) {
	p := &entity.Payment{Status: entity.PaymentStatusPending}
	assert.True(t, p.CanTransitionTo(entity.PaymentStatusReceived))
	assert.True(t, p.CanTransitionTo(entity.PaymentStatusCancelled))
	assert.False(t, p.CanTransitionTo("REFUNDED"), "estado fuera del enum")

	// CANCELLED es terminal
	p.Status = entity.PaymentStatusCancelled
	assert.False(t, p.CanTransitionTo(entity.PaymentStatusReceived))
	assert.False(t, p.CanTransitionTo(entity.PaymentStatusPending))
}

func TestParkingRecord_HasPayableRecord(t *testing.T) {
	r := &entity.ParkingRecord{}
	assert.False(t, r.HasPayableRecord(), "sin pagos no hay entrega")

	r.Payments = []*entity.Payment{{Status: entity.PaymentStatusCancelled}}
	assert.False(t, r.HasPayableRecord(), "pagos anulados no habilitan la entrega")

	r.Payments = append(r.Payments, &entity.Payment{Status: entity.PaymentStatusPending})
	assert.True(t, r.HasPayableRecord(), "un pago PENDING basta: la existencia gatilla la entrega")
}
