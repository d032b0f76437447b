package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// companyCond restringe por el conjunto de empresas del actor a través
// del registro de parqueo del pago. nil = sin restricción.
func companyCond(companyIDs []string, args *[]any, column string) string {
	if companyIDs == nil {
		return ""
	}
	*args = append(*args, companyIDs)
	return fmt.Sprintf(" AND %s = ANY($%d)", column, len(*args))
}

// ReceivedPayments pagos RECEIVED dentro de la ventana, ordenados por fecha.
func (r *ReportRepo) ReceivedPayments(ctx context.Context, companyIDs []string, start, end time.Time) ([]repository.RevenueRow, error) {
	args := []any{start, end}
	query := `
		SELECT p.amount_usd, p.tip, p.date
		FROM payments p
		JOIN parking_records rec ON rec.id = p.parking_record_id
		WHERE p.status = 'RECEIVED' AND p.date >= $1 AND p.date <= $2` +
		companyCond(companyIDs, &args, "rec.company_id") + `
		ORDER BY p.date`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.ReceivedPayments: %w", err)
	}
	defer rows.Close()
	var list []repository.RevenueRow
	for rows.Next() {
		var row repository.RevenueRow
		if err := rows.Scan(&row.AmountUSD, &row.Tip, &row.Date); err != nil {
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// VehicleCounts conteos total/activos/entregados dentro del rango opcional.
func (r *ReportRepo) VehicleCounts(ctx context.Context, companyIDs []string, start, end *time.Time) (*repository.VehicleCounts, error) {
	var args []any
	where := "WHERE TRUE"
	if start != nil {
		args = append(args, *start)
		where += fmt.Sprintf(" AND check_in_at >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		where += fmt.Sprintf(" AND check_in_at <= $%d", len(args))
	}
	where += companyCond(companyIDs, &args, "company_id")

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE check_out_at IS NULL),
			COUNT(*) FILTER (WHERE check_out_at IS NOT NULL)
		FROM parking_records ` + where

	var c repository.VehicleCounts
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.Total, &c.Active, &c.CheckedOut); err != nil {
		return nil, fmt.Errorf("reports.VehicleCounts: %w", err)
	}
	return &c, nil
}

// ReceivedTotalSince suma monto+propina de pagos RECEIVED desde el instante dado.
func (r *ReportRepo) ReceivedTotalSince(ctx context.Context, companyIDs []string, since time.Time) (decimal.Decimal, error) {
	args := []any{entity.PaymentStatusReceived, since}
	query := `
		SELECT COALESCE(SUM(p.amount_usd + p.tip), 0)
		FROM payments p
		JOIN parking_records rec ON rec.id = p.parking_record_id
		WHERE p.status = $1 AND p.date >= $2` +
		companyCond(companyIDs, &args, "rec.company_id")

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("reports.ReceivedTotalSince: %w", err)
	}
	return total, nil
}
