package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// CreatePaymentRequest registra un pago contra un registro de parqueo.
type CreatePaymentRequest struct {
	ParkingRecordID string          `json:"parkingRecordId"`
	PaymentMethodID string          `json:"paymentMethodId"`
	AmountUSD       decimal.Decimal `json:"amountUSD"`
	Tip             decimal.Decimal `json:"tip"`
	Validation      string          `json:"validation"` // MANUAL | AUTOMATIC
	Reference       string          `json:"reference"`
	Note            string          `json:"note"`
}

// UpdatePaymentStatusRequest avanza el estado de un pago.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
}

// FilterPaymentsRequest filtros del listado/agregación de pagos.
type FilterPaymentsRequest struct {
	PageRequest
	ParkingRecordID string `query:"parkingRecordId"`
	PaymentMethodID string `query:"paymentMethodId"`
	Status          string `query:"status"`
	DateFrom        string `query:"dateFrom"`
	DateTo          string `query:"dateTo"`
}

// PaymentResponse pago serializado.
type PaymentResponse struct {
	ID              string          `json:"id"`
	ParkingRecordID string          `json:"parkingRecordId"`
	PaymentMethodID string          `json:"paymentMethodId"`
	AmountUSD       decimal.Decimal `json:"amountUSD"`
	Tip             decimal.Decimal `json:"tip"`
	Status          string          `json:"status"`
	Validation      string          `json:"validation"`
	Reference       string          `json:"reference,omitempty"`
	Note            string          `json:"note,omitempty"`
	ProcessedByID   string          `json:"processedById"`
	Date            time.Time       `json:"date"`
}

// StatusTotalResponse conteo y suma de un estado dentro del filtro.
type StatusTotalResponse struct {
	Count int64           `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
}

// PaymentAggregateResponse página de pagos más totales por estado.
type PaymentAggregateResponse struct {
	Data []*PaymentResponse `json:"data"`
	Meta struct {
		Page      int                 `json:"page"`
		Limit     int                 `json:"limit"`
		Total     int64               `json:"total"`
		Pending   StatusTotalResponse `json:"pending"`
		Received  StatusTotalResponse `json:"received"`
		Cancelled StatusTotalResponse `json:"cancelled"`
	} `json:"meta"`
}

// CreatePaymentMethodRequest agrega un método al catálogo.
type CreatePaymentMethodRequest struct {
	Name string `json:"name"`
	Form string `json:"form"`
	Type string `json:"type"`
}

// PaymentMethodResponse método de pago serializado.
type PaymentMethodResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Form      string    `json:"form,omitempty"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPaymentResponse convierte la entidad a DTO.
func ToPaymentResponse(p *entity.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:              p.ID,
		ParkingRecordID: p.ParkingRecordID,
		PaymentMethodID: p.PaymentMethodID,
		AmountUSD:       p.AmountUSD,
		Tip:             p.Tip,
		Status:          p.Status,
		Validation:      p.Validation,
		Reference:       p.Reference,
		Note:            p.Note,
		ProcessedByID:   p.ProcessedByID,
		Date:            p.Date,
	}
}

// ToPaymentMethodResponse convierte la entidad a DTO.
func ToPaymentMethodResponse(m *entity.PaymentMethod) *PaymentMethodResponse {
	if m == nil {
		return nil
	}
	return &PaymentMethodResponse{
		ID:        m.ID,
		Name:      m.Name,
		Form:      m.Form,
		Type:      m.Type,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}
