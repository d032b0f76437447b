package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago. También los usa CompanyInvoice.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusReceived  = "RECEIVED"
	PaymentStatusCancelled = "CANCELLED"
)

// Modos de validación de un pago.
const (
	ValidationManual    = "MANUAL"    // confirmado por el staff al registrarlo (ej. efectivo)
	ValidationAutomatic = "AUTOMATIC" // requiere confirmación externa antes de confiar en él
)

// Formas de pago soportadas por PaymentMethod.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCard     = "CARD"
	PaymentMethodMobile   = "MOBILE"
)

// PaymentMethod es el catálogo de métodos de pago configurables.
type PaymentMethod struct {
	ID        string
	Name      string
	Form      string // presentación en UI externa (texto libre)
	Type      string // ver constantes PaymentMethod*
	IsActive  bool
	CreatedAt time.Time
}

// IsCash indica si el método es efectivo (no requiere referencia externa).
func (m *PaymentMethod) IsCash() bool {
	return m.Type == PaymentMethodCash
}

// Payment es una transacción asociada a exactamente un ParkingRecord.
// Nunca se borra; anular significa pasar a CANCELLED.
type Payment struct {
	ID              string
	ParkingRecordID string
	PaymentMethodID string
	AmountUSD       decimal.Decimal
	Tip             decimal.Decimal
	Status          string // ver constantes PaymentStatus*
	Validation      string // MANUAL | AUTOMATIC
	Reference       string // código externo, obligatorio para métodos no-efectivo
	Note            string
	ProcessedByID   string
	Date            time.Time
}

// DeriveStatus calcula el estado inicial según el modo de validación:
// MANUAL se confía al registrarlo, AUTOMATIC queda pendiente de confirmación.
func DeriveStatus(validation string) string {
	if validation == ValidationManual {
		return PaymentStatusReceived
	}
	return PaymentStatusPending
}

// CanTransitionTo valida un cambio de estado. CANCELLED es terminal;
// el resto de transiciones entre los tres estados son libres.
func (p *Payment) CanTransitionTo(newStatus string) bool {
	if !validPaymentStatus(newStatus) {
		return false
	}
	return p.Status != PaymentStatusCancelled
}

func validPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusReceived, PaymentStatusCancelled:
		return true
	}
	return false
}
