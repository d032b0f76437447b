package custody

import (
	"context"

	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el check-in
// (dueño + vehículo + registro) y el checkout (pagos + mutación terminal).
type TxRunner interface {
	RunCheckIn(ctx context.Context, fn func(
		recordRepo repository.ParkingRecordRepository,
		vehicleRepo repository.VehicleRepository,
		userRepo repository.UserRepository,
	) error) error

	RunCheckout(ctx context.Context, fn func(
		recordRepo repository.ParkingRecordRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
