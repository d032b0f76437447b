package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// PaymentFilter filtros de listado/agregación de pagos.
type PaymentFilter struct {
	CompanyIDs      []string // nil = sin restricción; vacío = nada visible
	ParkingRecordID string
	PaymentMethodID string
	Status          string
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	Limit           int
}

// StatusTotal conteo y suma de montos de un estado dentro del filtro activo.
type StatusTotal struct {
	Count int64
	Sum   decimal.Decimal
}

// PaymentAggregate página de pagos más los totales por estado, calculados
// con el mismo predicado (conciliación: página y totales deben ser
// consistentes entre sí).
type PaymentAggregate struct {
	Payments  []*entity.Payment
	Total     int64
	Pending   StatusTotal
	Received  StatusTotal
	Cancelled StatusTotal
}

// PaymentRepository define el puerto de persistencia para Payment.
// Los pagos nunca se borran.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	UpdateStatus(id, status string) error
	ListByRecord(recordID string) ([]*entity.Payment, error)
	// CountPayableByRecord cuenta pagos no-CANCELLED del registro; es la
	// condición de entrega del checkout.
	CountPayableByRecord(recordID string) (int64, error)
	Aggregate(filter PaymentFilter) (*PaymentAggregate, error)
}

// PaymentMethodRepository catálogo de métodos de pago.
type PaymentMethodRepository interface {
	Create(method *entity.PaymentMethod) error
	GetByID(id string) (*entity.PaymentMethod, error)
	ListActive() ([]*entity.PaymentMethod, error)
}
