package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, company_plan_id, amount_usd, status, validation, plan_type,
	vehicle_count, base_amount, vehicle_amount, fee_amount,
	period_start, period_end, payment_method_id, reference, note, date`

// Create persiste una factura de empresa con su desglose.
func (r *InvoiceRepo) Create(invoice *entity.CompanyInvoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO company_invoices (id, company_plan_id, amount_usd, status, validation,
			plan_type, vehicle_count, base_amount, vehicle_amount, fee_amount,
			period_start, period_end, payment_method_id, reference, note, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyPlanID, invoice.AmountUSD, invoice.Status,
		invoice.Validation, invoice.PlanType, invoice.VehicleCount,
		invoice.BaseAmount, invoice.VehicleAmount, invoice.FeeAmount,
		invoice.PeriodStart, invoice.PeriodEnd,
		nullIfEmpty(invoice.PaymentMethodID), nullIfEmpty(invoice.Reference),
		nullIfEmpty(invoice.Note), invoice.Date,
	)
	if err != nil {
		return fmt.Errorf("insert company invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.CompanyInvoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM company_invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPlanAndID valida la pertenencia de la factura al plan.
func (r *InvoiceRepo) GetByPlanAndID(planID, invoiceID string) (*entity.CompanyInvoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM company_invoices
		WHERE id = $1 AND company_plan_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, invoiceID, planID))
}

// UpdateStatus avanza el estado de la factura.
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE company_invoices SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByPlan facturas de una versión de plan, más recientes primero.
func (r *InvoiceRepo) ListByPlan(planID string) ([]*entity.CompanyInvoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM company_invoices
		WHERE company_plan_id = $1 ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, planID)
	if err != nil {
		return nil, fmt.Errorf("list company invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompanyInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) scanOne(row pgx.Row) (*entity.CompanyInvoice, error) {
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func scanInvoice(row pgx.Row) (*entity.CompanyInvoice, error) {
	var inv entity.CompanyInvoice
	var paymentMethodID, reference, note *string
	err := row.Scan(
		&inv.ID, &inv.CompanyPlanID, &inv.AmountUSD, &inv.Status, &inv.Validation,
		&inv.PlanType, &inv.VehicleCount, &inv.BaseAmount, &inv.VehicleAmount,
		&inv.FeeAmount, &inv.PeriodStart, &inv.PeriodEnd,
		&paymentMethodID, &reference, &note, &inv.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan company invoice: %w", err)
	}
	inv.PaymentMethodID = derefStr(paymentMethodID)
	inv.Reference = derefStr(reference)
	inv.Note = derefStr(note)
	return &inv, nil
}
