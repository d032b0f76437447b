package dto

import (
	"time"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// RegisterVehicleRequest check-in de un vehículo. El dueño se resuelve en
// orden: UserID explícito, luego IDNumber, luego Email; si ninguno existe
// se crea una identidad nueva con esos datos.
type RegisterVehicleRequest struct {
	// Pistas de identidad del dueño
	UserID   string `json:"userId"`
	IDNumber string `json:"idNumber"`
	Email    string `json:"email"`
	Name     string `json:"name"`

	// Pistas del vehículo
	VehicleID string `json:"vehicleId"`
	Plate     string `json:"plate"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Color     string `json:"color"`

	CompanyID string `json:"companyId"`
	ValetID   string `json:"valetId"` // valet que recibe el vehículo
	Notes     string `json:"notes"`
}

// CheckoutVehicleRequest entrega del vehículo.
type CheckoutVehicleRequest struct {
	CheckOutAt    *time.Time `json:"checkOutAt"`
	CheckOutValet string     `json:"checkOutValet"`
	Notes         string     `json:"notes"`
}

// FilterVehiclesRequest filtros del listado de registros.
type FilterVehiclesRequest struct {
	PageRequest
	CompanyID string `query:"companyId"`
	Status    string `query:"status"`
	Plate     string `query:"plate"`
	Brand     string `query:"brand"`
	Model     string `query:"model"`
	Color     string `query:"color"`
	Search    string `query:"search"`
	DateFrom  string `query:"dateFrom"` // YYYY-MM-DD
	DateTo    string `query:"dateTo"`
}

// ParkingRecordResponse registro de parqueo serializado.
type ParkingRecordResponse struct {
	ID              string             `json:"id"`
	Plate           string             `json:"plate"`
	Brand           string             `json:"brand,omitempty"`
	Model           string             `json:"model,omitempty"`
	Color           string             `json:"color,omitempty"`
	OwnerID         string             `json:"ownerId,omitempty"`
	CompanyID       string             `json:"companyId,omitempty"`
	RegisteredByID  string             `json:"registeredById"`
	CheckInValetID  string             `json:"checkInValetId,omitempty"`
	CheckOutValetID string             `json:"checkOutValetId,omitempty"`
	CheckInAt       time.Time          `json:"checkInAt"`
	CheckOutAt      *time.Time         `json:"checkOutAt,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	Payments        []*PaymentResponse `json:"payments,omitempty"`
}

// RegisterVehicleResponse resultado del check-in. IsNewUser permite al
// caller disparar la notificación de bienvenida.
type RegisterVehicleResponse struct {
	ParkingRecord *ParkingRecordResponse `json:"parkingRecord"`
	IsNewUser     bool                   `json:"isNewUser"`
	OwnerEmail    string                 `json:"-"` // destino de la bienvenida, no se serializa
}

// VehicleListResponse página de registros con conteos por estado.
type VehicleListResponse struct {
	Data []*ParkingRecordResponse `json:"data"`
	Meta VehicleListMeta          `json:"meta"`
}

// VehicleListMeta metadatos del listado: página y conteos por estado
// calculados bajo el mismo filtro.
type VehicleListMeta struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalPages      int64 `json:"totalPages"`
	Active          int64 `json:"active"`
	PendingDelivery int64 `json:"pending_delivery"`
	Completed       int64 `json:"completed"`
	All             int64 `json:"all"`
}

// ValetResponse valet serializado.
type ValetResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
}

// ToParkingRecordResponse convierte la entidad a DTO.
func ToParkingRecordResponse(r *entity.ParkingRecord) *ParkingRecordResponse {
	if r == nil {
		return nil
	}
	resp := &ParkingRecordResponse{
		ID:              r.ID,
		Plate:           r.Plate,
		Brand:           r.Brand,
		Model:           r.Model,
		Color:           r.Color,
		OwnerID:         r.OwnerID,
		CompanyID:       r.CompanyID,
		RegisteredByID:  r.RegisteredByID,
		CheckInValetID:  r.CheckInValetID,
		CheckOutValetID: r.CheckOutValetID,
		CheckInAt:       r.CheckInAt,
		CheckOutAt:      r.CheckOutAt,
		Notes:           r.Notes,
	}
	for _, p := range r.Payments {
		resp.Payments = append(resp.Payments, ToPaymentResponse(p))
	}
	return resp
}
