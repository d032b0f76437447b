package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRow un pago RECEIVED dentro de la ventana del reporte.
type RevenueRow struct {
	AmountUSD decimal.Decimal
	Tip       decimal.Decimal
	Date      time.Time
}

// VehicleCounts conteos de registros para el reporte de vehículos.
type VehicleCounts struct {
	Total      int64
	Active     int64
	CheckedOut int64
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
type ReportRepository interface {
	// ReceivedPayments pagos RECEIVED dentro de la ventana, ordenados por fecha.
	ReceivedPayments(ctx context.Context, companyIDs []string, start, end time.Time) ([]RevenueRow, error)
	VehicleCounts(ctx context.Context, companyIDs []string, start, end *time.Time) (*VehicleCounts, error)
	// ReceivedTotalSince suma monto+propina de pagos RECEIVED desde el instante dado.
	ReceivedTotalSince(ctx context.Context, companyIDs []string, since time.Time) (decimal.Decimal, error)
}
