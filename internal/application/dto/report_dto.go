package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueReportRequest ventana del reporte de ingresos.
type RevenueReportRequest struct {
	DateFrom string `query:"dateFrom"`
	DateTo   string `query:"dateTo"`
}

// RevenueBucket ingresos agregados de un día.
type RevenueBucket struct {
	Day      string          `json:"day"` // YYYY-MM-DD
	Count    int64           `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
	Tips     decimal.Decimal `json:"tips"`
	Combined decimal.Decimal `json:"combined"`
}

// RevenueReportResponse reporte de ingresos por día dentro de la ventana.
type RevenueReportResponse struct {
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalTips   decimal.Decimal `json:"totalTips"`
	Total       decimal.Decimal `json:"total"`
	Buckets     []RevenueBucket `json:"buckets"`
}

// VehicleReportResponse conteos de registros de parqueo en la ventana.
type VehicleReportResponse struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	CheckedOut int64 `json:"checkedOut"`
}

// DashboardResponse resumen operativo del día.
type DashboardResponse struct {
	ActiveVehicles   int64           `json:"activeVehicles"`
	TodayCheckIns    int64           `json:"todayCheckIns"`
	TodayRevenue     decimal.Decimal `json:"todayRevenue"`
	ActiveAttendants int64           `json:"activeAttendants"`
}
