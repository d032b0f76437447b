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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, parking_record_id, payment_method_id, amount_usd, tip, status,
	validation, reference, note, processed_by_id, date`

// Create persiste un pago. Los pagos nunca se borran.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, parking_record_id, payment_method_id, amount_usd, tip,
			status, validation, reference, note, processed_by_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.ParkingRecordID, payment.PaymentMethodID,
		payment.AmountUSD, payment.Tip, payment.Status, payment.Validation,
		nullIfEmpty(payment.Reference), nullIfEmpty(payment.Note),
		payment.ProcessedByID, payment.Date,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`
	var p entity.Payment
	var reference, note *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ParkingRecordID, &p.PaymentMethodID, &p.AmountUSD, &p.Tip,
		&p.Status, &p.Validation, &reference, &note, &p.ProcessedByID, &p.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.Reference = derefStr(reference)
	p.Note = derefStr(note)
	return &p, nil
}

// UpdateStatus sobrescribe el estado del pago.
func (r *PaymentRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE payments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByRecord pagos de un registro, más recientes primero.
func (r *PaymentRepo) ListByRecord(recordID string) ([]*entity.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments
		WHERE parking_record_id = $1 ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, recordID)
	if err != nil {
		return nil, fmt.Errorf("list payments by record: %w", err)
	}
	return scanPayments(rows)
}

// CountPayableByRecord pagos no-CANCELLED del registro (condición de entrega).
func (r *PaymentRepo) CountPayableByRecord(recordID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM payments WHERE parking_record_id = $1 AND status <> $2`,
		recordID, entity.PaymentStatusCancelled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count payable payments: %w", err)
	}
	return count, nil
}

// Aggregate página de pagos más conteo y suma por estado, todo bajo el
// mismo predicado del filtro (una sola sentencia para los totales:
// snapshot consistente con la página).
func (r *PaymentRepo) Aggregate(filter repository.PaymentFilter) (*repository.PaymentAggregate, error) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.CompanyIDs != nil {
		add(`EXISTS (SELECT 1 FROM parking_records rec
			WHERE rec.id = parking_record_id AND rec.company_id = ANY($%d))`, filter.CompanyIDs)
	}
	if filter.ParkingRecordID != "" {
		add(`parking_record_id = $%d`, filter.ParkingRecordID)
	}
	if filter.PaymentMethodID != "" {
		add(`payment_method_id = $%d`, filter.PaymentMethodID)
	}
	if filter.Status != "" {
		add(`status = $%d`, filter.Status)
	}
	if filter.DateFrom != nil {
		add(`date >= $%d`, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add(`date <= $%d`, *filter.DateTo)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + conds[0]
		for _, c := range conds[1:] {
			where += " AND " + c
		}
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	listQuery := `SELECT` + paymentColumns + ` FROM payments ` + where +
		fmt.Sprintf(` ORDER BY date DESC LIMIT %d OFFSET %d`, limit, (page-1)*limit)
	rows, err := r.q.Query(context.Background(), listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments, err := scanPayments(rows)
	if err != nil {
		return nil, err
	}

	agg := &repository.PaymentAggregate{Payments: payments}
	statsQuery := `
		SELECT
			COUNT(*),
			COUNT(*)                  FILTER (WHERE status = 'PENDING'),
			COALESCE(SUM(amount_usd) FILTER (WHERE status = 'PENDING'),   0),
			COUNT(*)                  FILTER (WHERE status = 'RECEIVED'),
			COALESCE(SUM(amount_usd) FILTER (WHERE status = 'RECEIVED'),  0),
			COUNT(*)                  FILTER (WHERE status = 'CANCELLED'),
			COALESCE(SUM(amount_usd) FILTER (WHERE status = 'CANCELLED'), 0)
		FROM payments ` + where
	err = r.q.QueryRow(context.Background(), statsQuery, args...).Scan(
		&agg.Total,
		&agg.Pending.Count, &agg.Pending.Sum,
		&agg.Received.Count, &agg.Received.Sum,
		&agg.Cancelled.Count, &agg.Cancelled.Sum,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate payments: %w", err)
	}
	return agg, nil
}

func scanPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var reference, note *string
		if err := rows.Scan(
			&p.ID, &p.ParkingRecordID, &p.PaymentMethodID, &p.AmountUSD, &p.Tip,
			&p.Status, &p.Validation, &reference, &note, &p.ProcessedByID, &p.Date,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Reference = derefStr(reference)
		p.Note = derefStr(note)
		list = append(list, &p)
	}
	return list, rows.Err()
}

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo catálogo de métodos de pago.
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador de métodos de pago.
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

// Create persiste un método de pago del catálogo.
func (r *PaymentMethodRepo) Create(method *entity.PaymentMethod) error {
	if method.ID == "" {
		method.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payment_methods (id, name, form, type, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		method.ID, method.Name, method.Form, method.Type, method.IsActive, method.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// GetByID obtiene un método de pago por ID.
func (r *PaymentMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, form, type, is_active, created_at FROM payment_methods WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Form, &m.Type, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

// ListActive métodos de pago vigentes, más recientes primero.
func (r *PaymentMethodRepo) ListActive() ([]*entity.PaymentMethod, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, form, type, is_active, created_at FROM payment_methods
		 WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		var m entity.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Form, &m.Type, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
