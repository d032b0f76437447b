package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/application/reports"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

type fakeReportRepo struct {
	rows   []repository.RevenueRow
	counts repository.VehicleCounts
	since  decimal.Decimal
}

func (f *fakeReportRepo) ReceivedPayments(_ context.Context, _ []string, start, end time.Time) ([]repository.RevenueRow, error) {
	var out []repository.RevenueRow
	for _, r := range f.rows {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeReportRepo) VehicleCounts(context.Context, []string, *time.Time, *time.Time) (*repository.VehicleCounts, error) {
	c := f.counts
	return &c, nil
}
func (f *fakeReportRepo) ReceivedTotalSince(context.Context, []string, time.Time) (decimal.Decimal, error) {
	return f.since, nil
}

type fakeUserRepo struct {
	activeByRole map[string]int64
}

func (f *fakeUserRepo) Create(*entity.User) error                  { return nil }
func (f *fakeUserRepo) GetByID(string) (*entity.User, error)       { return nil, domain.ErrUserNotFound }
func (f *fakeUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, domain.ErrUserNotFound }
func (f *fakeUserRepo) GetByIDNumber(string) (*entity.User, error) { return nil, domain.ErrUserNotFound }
func (f *fakeUserRepo) Update(*entity.User) error                  { return nil }
func (f *fakeUserRepo) List(repository.UserFilter) ([]*entity.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) CountActiveByRole(role string) (int64, error) {
	return f.activeByRole[role], nil
}

func staffActor() entity.Actor {
	return entity.Actor{UserID: "u1", Role: entity.RoleManager, CompanyIDs: []string{"c1"}}
}

// Los pagos del mismo día se agrupan en un bucket; los totales concilian.
func TestRevenue_AgrupaPorDia(t *testing.T) {
	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 15, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{rows: []repository.RevenueRow{
		{AmountUSD: decimal.NewFromInt(10), Tip: decimal.NewFromInt(1), Date: day1},
		{AmountUSD: decimal.NewFromInt(5), Tip: decimal.Zero, Date: day1.Add(2 * time.Hour)},
		{AmountUSD: decimal.NewFromInt(20), Tip: decimal.NewFromInt(2), Date: day2},
	}}
	uc := reports.NewUseCase(repo, &fakeUserRepo{})

	resp, err := uc.Revenue(context.Background(), staffActor(), dto.RevenueReportRequest{
		DateFrom: "2026-08-01", DateTo: "2026-08-31",
	})
	require.NoError(t, err)

	require.Len(t, resp.Buckets, 2)
	assert.Equal(t, "2026-08-10", resp.Buckets[0].Day, "los buckets van ordenados por día")
	assert.Equal(t, int64(2), resp.Buckets[0].Count)
	assert.True(t, resp.Buckets[0].Combined.Equal(decimal.NewFromInt(16)),
		"10+5 más 1 de propina: fue %s", resp.Buckets[0].Combined)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(35)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(38)), "monto + propinas")
}

// Ventana invertida: rechazada.
func TestRevenue_VentanaInvertida(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportRepo{}, &fakeUserRepo{})

	_, err := uc.Revenue(context.Background(), staffActor(), dto.RevenueReportRequest{
		DateFrom: "2026-08-31", DateTo: "2026-08-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTimestamp)
}

// Un cliente no accede a reportes.
func TestRevenue_ClienteBloqueado(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportRepo{}, &fakeUserRepo{})

	_, err := uc.Revenue(context.Background(), entity.Actor{UserID: "u9", Role: entity.RoleClient}, dto.RevenueReportRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El dashboard combina activos, check-ins de hoy e ingresos del día.
func TestDashboard_ResumenDelDia(t *testing.T) {
	repo := &fakeReportRepo{
		counts: repository.VehicleCounts{Total: 7, Active: 4, CheckedOut: 3},
		since:  decimal.RequireFromString("120.5"),
	}
	users := &fakeUserRepo{activeByRole: map[string]int64{entity.RoleAttendant: 5}}
	uc := reports.NewUseCase(repo, users)

	resp, err := uc.Dashboard(context.Background(), staffActor())
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.ActiveVehicles)
	assert.Equal(t, int64(7), resp.TodayCheckIns)
	assert.Equal(t, int64(5), resp.ActiveAttendants)
	assert.True(t, resp.TodayRevenue.Equal(decimal.RequireFromString("120.5")))
}
