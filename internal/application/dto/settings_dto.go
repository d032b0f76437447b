package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// UpdateSettingsRequest edición parcial de la configuración operativa.
type UpdateSettingsRequest struct {
	BaseFeeUSD *decimal.Decimal `json:"baseFeeUSD"`
	TipEnabled *bool            `json:"tipEnabled"`
	BillingDay *int             `json:"billingDay"`
}

// SettingsResponse configuración operativa serializada.
type SettingsResponse struct {
	BaseFeeUSD decimal.Decimal `json:"baseFeeUSD"`
	TipEnabled bool            `json:"tipEnabled"`
	BillingDay int             `json:"billingDay"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ToSettingsResponse convierte la entidad a DTO.
func ToSettingsResponse(s *entity.Settings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		BaseFeeUSD: s.BaseFeeUSD,
		TipEnabled: s.TipEnabled,
		BillingDay: s.BillingDay,
		UpdatedAt:  s.UpdatedAt,
	}
}
