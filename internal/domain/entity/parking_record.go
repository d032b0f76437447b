package entity

import "time"

// Estados derivados de un registro de parqueo (para filtros de listado).
const (
	RecordStatusActive          = "active"           // en custodia, sin pagos
	RecordStatusPendingDelivery = "pending_delivery" // pagado, esperando entrega
	RecordStatusCompleted       = "completed"        // entregado (check-out)
)

// ParkingRecord es la estancia de un vehículo desde el check-in hasta la
// entrega. Los campos descriptivos (placa, marca, modelo, color) son una
// copia tomada en el check-in: editar el catálogo del dueño después no
// altera registros pasados.
type ParkingRecord struct {
	ID      string
	Plate   string
	Brand   string
	Model   string
	Color   string
	OwnerID string // puede estar vacío: registro sin dueño identificado

	CompanyID        string
	RegisteredByID   string // usuario (attendant) que registró el check-in
	CheckInValetID   string // valet que recibió el vehículo (opcional)
	CheckOutValetID  string // valet que lo entregó (opcional)
	CheckInAt        time.Time
	CheckOutAt       *time.Time // nil mientras está en custodia
	Notes            string

	Payments []*Payment // cargados según la consulta; no siempre presentes
}

// IsOpen indica si el vehículo sigue en custodia.
func (r *ParkingRecord) IsOpen() bool {
	return r.CheckOutAt == nil
}

// HasPayableRecord indica si existe al menos un pago que habilite la
// entrega. Los pagos CANCELLED no cuentan: un registro cuyos pagos fueron
// todos anulados sigue sin pagar.
func (r *ParkingRecord) HasPayableRecord() bool {
	for _, p := range r.Payments {
		if p.Status != PaymentStatusCancelled {
			return true
		}
	}
	return false
}
