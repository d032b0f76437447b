package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/valet-pro/internal/application/custody"
	"github.com/tu-usuario/valet-pro/internal/application/plans"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// Ensure TxRunner implements custody.TxRunner and plans.TxRunner.
var _ custody.TxRunner = (*TxRunner)(nil)
var _ plans.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckIn transacción del check-in: resolución de dueño y vehículo más
// la creación del registro deben ser un solo commit.
func (r *TxRunner) RunCheckIn(ctx context.Context, fn func(
	recordRepo repository.ParkingRecordRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewParkingRecordRepository(q), NewVehicleRepository(q), NewUserRepository(q))
	})
}

// RunCheckout transacción del checkout: la verificación de pagos y la
// mutación terminal del registro van juntas.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	recordRepo repository.ParkingRecordRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewParkingRecordRepository(q), NewPaymentRepository(q))
	})
}

// RunPlanChange transacción del cambio de plan: desactivar el vigente e
// insertar el nuevo es una unidad; nadie observa dos activos ni cero.
func (r *TxRunner) RunPlanChange(ctx context.Context, fn func(
	planRepo repository.PlanRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewPlanRepository(q))
	})
}

// RunInvoice transacción de generación de factura: snapshot de uso,
// lectura del plan activo y persistencia de la factura en un solo commit.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	planRepo repository.PlanRepository,
	invoiceRepo repository.InvoiceRepository,
	recordRepo repository.ParkingRecordRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewPlanRepository(q), NewInvoiceRepository(q), NewParkingRecordRepository(q))
	})
}
