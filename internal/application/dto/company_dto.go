package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// CreateCompanyRequest alta de una empresa.
type CreateCompanyRequest struct {
	Name     string   `json:"name"`
	PhotoURL string   `json:"photoUrl"`
	UserIDs  []string `json:"userIds"`
}

// UpdateCompanyRequest edición parcial de una empresa.
type UpdateCompanyRequest struct {
	Name     *string  `json:"name"`
	PhotoURL *string  `json:"photoUrl"`
	IsActive *bool    `json:"isActive"`
	UserIDs  []string `json:"userIds"`
}

// FilterCompaniesRequest filtros del listado de empresas.
type FilterCompaniesRequest struct {
	PageRequest
	Name     string `query:"name"`
	IsActive *bool  `query:"isActive"`
	Search   string `query:"search"`
}

// CompanyResponse empresa serializada.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	UserIDs   []string  `json:"userIds,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPlanRequest define la nueva versión del plan de facturación.
type SetPlanRequest struct {
	PlanType       string           `json:"planType"`
	FlatRate       *decimal.Decimal `json:"flatRate"`
	PerVehicleRate *decimal.Decimal `json:"perVehicleRate"`
	BasePrice      *decimal.Decimal `json:"basePrice"`
	FeeType        string           `json:"feeType"`
	FeeValue       *decimal.Decimal `json:"feeValue"`
}

// PlanResponse versión de plan serializada.
type PlanResponse struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"companyId"`
	PlanType       string           `json:"planType"`
	FlatRate       *decimal.Decimal `json:"flatRate,omitempty"`
	PerVehicleRate *decimal.Decimal `json:"perVehicleRate,omitempty"`
	BasePrice      *decimal.Decimal `json:"basePrice,omitempty"`
	FeeType        string           `json:"feeType,omitempty"`
	FeeValue       *decimal.Decimal `json:"feeValue,omitempty"`
	IsActive       bool             `json:"isActive"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// GenerateInvoiceRequest pide la factura del período para la empresa.
type GenerateInvoiceRequest struct {
	PeriodStart     time.Time `json:"periodStart"`
	PeriodEnd       time.Time `json:"periodEnd"`
	Validation      string    `json:"validation"` // MANUAL | AUTOMATIC
	PaymentMethodID string    `json:"paymentMethodId"`
	Reference       string    `json:"reference"`
	Note            string    `json:"note"`
}

// UpdateInvoiceStatusRequest avanza el estado de una factura.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceResponse factura serializada con su desglose.
type InvoiceResponse struct {
	ID            string           `json:"id"`
	CompanyPlanID string           `json:"companyPlanId"`
	AmountUSD     decimal.Decimal  `json:"amountUSD"`
	Status        string           `json:"status"`
	Validation    string           `json:"validation"`
	PlanType      string           `json:"planType"`
	VehicleCount  *int64           `json:"vehicleCount,omitempty"`
	BaseAmount    *decimal.Decimal `json:"baseAmount,omitempty"`
	VehicleAmount *decimal.Decimal `json:"vehicleAmount,omitempty"`
	FeeAmount     *decimal.Decimal `json:"feeAmount,omitempty"`
	PeriodStart   *time.Time       `json:"periodStart,omitempty"`
	PeriodEnd     *time.Time       `json:"periodEnd,omitempty"`
	Reference     string           `json:"reference,omitempty"`
	Note          string           `json:"note,omitempty"`
	Date          time.Time        `json:"date"`
}

// ToCompanyResponse convierte la entidad a DTO.
func ToCompanyResponse(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		PhotoURL:  c.PhotoURL,
		IsActive:  c.IsActive,
		UserIDs:   c.UserIDs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToPlanResponse convierte la entidad a DTO.
func ToPlanResponse(p *entity.CompanyPlan) *PlanResponse {
	if p == nil {
		return nil
	}
	return &PlanResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		PlanType:       p.PlanType,
		FlatRate:       p.FlatRate,
		PerVehicleRate: p.PerVehicleRate,
		BasePrice:      p.BasePrice,
		FeeType:        p.FeeType,
		FeeValue:       p.FeeValue,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

// ToInvoiceResponse convierte la entidad a DTO.
func ToInvoiceResponse(inv *entity.CompanyInvoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:            inv.ID,
		CompanyPlanID: inv.CompanyPlanID,
		AmountUSD:     inv.AmountUSD,
		Status:        inv.Status,
		Validation:    inv.Validation,
		PlanType:      inv.PlanType,
		VehicleCount:  inv.VehicleCount,
		BaseAmount:    inv.BaseAmount,
		VehicleAmount: inv.VehicleAmount,
		FeeAmount:     inv.FeeAmount,
		PeriodStart:   inv.PeriodStart,
		PeriodEnd:     inv.PeriodEnd,
		Reference:     inv.Reference,
		Note:          inv.Note,
		Date:          inv.Date,
	}
}
