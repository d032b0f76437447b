package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/billing"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// TestCompute_FlatRate: tarifa plana 800, el conteo de vehículos no afecta.
func TestCompute_FlatRate(t *testing.T) {
	plan := &entity.CompanyPlan{
		PlanType: entity.PlanFlatRate,
		FlatRate: dec("800"),
	}

	b, err := billing.Compute(plan, 50)
	require.NoError(t, err)

	require.NotNil(t, b.BaseAmount)
	assert.True(t, b.BaseAmount.Equal(decimal.RequireFromString("800")))
	assert.Nil(t, b.VehicleAmount, "FLAT_RATE no tiene componente por vehículo")
	assert.Nil(t, b.FeeAmount)
	assert.True(t, b.Amount.Equal(decimal.RequireFromString("800")))
}

// TestCompute_PerVehicleConRecargoFijo: 38 × 5 = 190, más recargo fijo de 1.
func TestCompute_PerVehicleConRecargoFijo(t *testing.T) {
	plan := &entity.CompanyPlan{
		PlanType:       entity.PlanPerVehicle,
		PerVehicleRate: dec("5"),
		FeeType:        entity.FeeFixed,
		FeeValue:       dec("1"),
	}

	b, err := billing.Compute(plan, 38)
	require.NoError(t, err)

	assert.Nil(t, b.BaseAmount, "PER_VEHICLE no tiene componente base")
	require.NotNil(t, b.VehicleAmount)
	assert.True(t, b.VehicleAmount.Equal(decimal.RequireFromString("190")))
	require.NotNil(t, b.FeeAmount)
	assert.True(t, b.FeeAmount.Equal(decimal.RequireFromString("1")))
	assert.True(t, b.Amount.Equal(decimal.RequireFromString("191")))
}

// TestCompute_MixedConRecargoPorcentual: base 300 + 55×3 = 465,
// recargo 10% = 46.5, total 511.5.
func TestCompute_MixedConRecargoPorcentual(t *testing.T) {
	plan := &entity.CompanyPlan{
		PlanType:       entity.PlanMixed,
		BasePrice:      dec("300"),
		PerVehicleRate: dec("3"),
		FeeType:        entity.FeePercentage,
		FeeValue:       dec("10"),
	}

	b, err := billing.Compute(plan, 55)
	require.NoError(t, err)

	require.NotNil(t, b.BaseAmount)
	assert.True(t, b.BaseAmount.Equal(decimal.RequireFromString("300")))
	require.NotNil(t, b.VehicleAmount)
	assert.True(t, b.VehicleAmount.Equal(decimal.RequireFromString("165")))
	require.NotNil(t, b.FeeAmount)
	assert.True(t, b.FeeAmount.Equal(decimal.RequireFromString("46.5")))
	assert.True(t, b.Amount.Equal(decimal.RequireFromString("511.5")))
}

// TestCompute_UsoCero: con cero vehículos el componente queda en 0
// explícito, no en nil.
func TestCompute_UsoCero(t *testing.T) {
	plan := &entity.CompanyPlan{
		PlanType:       entity.PlanPerVehicle,
		PerVehicleRate: dec("5"),
	}

	b, err := billing.Compute(plan, 0)
	require.NoError(t, err)

	require.NotNil(t, b.VehicleAmount)
	assert.True(t, b.VehicleAmount.IsZero())
	assert.True(t, b.Amount.IsZero())
}

// TestCompute_PlanIncompleto: un plan sin el parámetro de su forma es un
// error de configuración, nunca se asume cero.
func TestCompute_PlanIncompleto(t *testing.T) {
	casos := []*entity.CompanyPlan{
		{PlanType: entity.PlanFlatRate},                         // falta flatRate
		{PlanType: entity.PlanPerVehicle},                       // falta perVehicleRate
		{PlanType: entity.PlanMixed, BasePrice: dec("300")},     // falta perVehicleRate
		{PlanType: entity.PlanMixed, PerVehicleRate: dec("3")},  // falta basePrice
		{PlanType: "DESCONOCIDO", FlatRate: dec("100")},         // forma inválida
		{PlanType: entity.PlanFlatRate, FlatRate: dec("100"), FeeType: entity.FeePercentage}, // fee sin valor
	}

	for _, plan := range casos {
		_, err := billing.Compute(plan, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "plan %+v debe rechazarse", plan)
	}
}

// TestCompute_UsoNegativo rechaza conteos negativos.
func TestCompute_UsoNegativo(t *testing.T) {
	plan := &entity.CompanyPlan{PlanType: entity.PlanFlatRate, FlatRate: dec("800")}
	_, err := billing.Compute(plan, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
