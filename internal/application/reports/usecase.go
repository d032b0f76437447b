package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// UseCase reportes de solo lectura: ingresos, vehículos y dashboard.
// Todas las consultas quedan acotadas a las empresas del actor.
type UseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo, userRepo: userRepo}
}

// Revenue reporte de ingresos por día dentro de la ventana. Solo pagos
// RECEIVED cuentan como ingreso.
func (uc *UseCase) Revenue(ctx context.Context, actor entity.Actor, in dto.RevenueReportRequest) (*dto.RevenueReportResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	start, end, err := reportWindow(in.DateFrom, in.DateTo)
	if err != nil {
		return nil, err
	}

	rows, err := uc.reportRepo.ReceivedPayments(ctx, actor.AllowedCompanies(), start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*dto.RevenueBucket)
	resp := &dto.RevenueReportResponse{
		PeriodStart: start,
		PeriodEnd:   end,
		TotalAmount: decimal.Zero,
		TotalTips:   decimal.Zero,
		Total:       decimal.Zero,
	}
	for _, row := range rows {
		day := row.Date.Format("2006-01-02")
		bucket, ok := byDay[day]
		if !ok {
			bucket = &dto.RevenueBucket{Day: day, Amount: decimal.Zero, Tips: decimal.Zero, Combined: decimal.Zero}
			byDay[day] = bucket
		}
		bucket.Count++
		bucket.Amount = bucket.Amount.Add(row.AmountUSD)
		bucket.Tips = bucket.Tips.Add(row.Tip)
		bucket.Combined = bucket.Amount.Add(bucket.Tips)

		resp.TotalAmount = resp.TotalAmount.Add(row.AmountUSD)
		resp.TotalTips = resp.TotalTips.Add(row.Tip)
	}
	resp.Total = resp.TotalAmount.Add(resp.TotalTips)

	resp.Buckets = make([]dto.RevenueBucket, 0, len(byDay))
	for _, bucket := range byDay {
		resp.Buckets = append(resp.Buckets, *bucket)
	}
	sort.Slice(resp.Buckets, func(i, j int) bool { return resp.Buckets[i].Day < resp.Buckets[j].Day })
	return resp, nil
}

// Vehicles conteos de registros dentro de la ventana (opcional).
func (uc *UseCase) Vehicles(ctx context.Context, actor entity.Actor, dateFrom, dateTo string) (*dto.VehicleReportResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	var start, end *time.Time
	if dateFrom != "" || dateTo != "" {
		s, e, err := reportWindow(dateFrom, dateTo)
		if err != nil {
			return nil, err
		}
		start, end = &s, &e
	}
	counts, err := uc.reportRepo.VehicleCounts(ctx, actor.AllowedCompanies(), start, end)
	if err != nil {
		return nil, err
	}
	return &dto.VehicleReportResponse{
		Total:      counts.Total,
		Active:     counts.Active,
		CheckedOut: counts.CheckedOut,
	}, nil
}

// Dashboard resumen del día en curso: vehículos activos, check-ins de hoy,
// ingresos recibidos desde medianoche y attendants activos.
func (uc *UseCase) Dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	companies := actor.AllowedCompanies()
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := uc.reportRepo.VehicleCounts(ctx, companies, &midnight, &now)
	if err != nil {
		return nil, err
	}
	open, err := uc.reportRepo.VehicleCounts(ctx, companies, nil, nil)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.reportRepo.ReceivedTotalSince(ctx, companies, midnight)
	if err != nil {
		return nil, err
	}
	attendants, err := uc.userRepo.CountActiveByRole(entity.RoleAttendant)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		ActiveVehicles:   open.Active,
		TodayCheckIns:    today.Total,
		TodayRevenue:     revenue,
		ActiveAttendants: attendants,
	}, nil
}

// reportWindow interpreta la ventana YYYY-MM-DD; sin fechas, el mes en curso.
func reportWindow(from, to string) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now

	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		start = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidTimestamp
	}
	return start, end, nil
}
