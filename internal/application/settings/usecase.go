package settings

import (
	"time"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// UseCase configuración operativa global (fila única).
type UseCase struct {
	settingsRepo repository.SettingsRepository
}

// NewUseCase construye el caso de uso de configuración.
func NewUseCase(settingsRepo repository.SettingsRepository) *UseCase {
	return &UseCase{settingsRepo: settingsRepo}
}

// Get devuelve la configuración vigente (se crea con defaults si no existe).
func (uc *UseCase) Get(actor entity.Actor) (*dto.SettingsResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	s, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	return dto.ToSettingsResponse(s), nil
}

// Update edición parcial de la configuración (solo administración).
func (uc *UseCase) Update(actor entity.Actor, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if actor.Role != entity.RoleSuperAdmin && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	s, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	if in.BaseFeeUSD != nil {
		if in.BaseFeeUSD.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		s.BaseFeeUSD = *in.BaseFeeUSD
	}
	if in.TipEnabled != nil {
		s.TipEnabled = *in.TipEnabled
	}
	if in.BillingDay != nil {
		if *in.BillingDay < 1 || *in.BillingDay > 28 {
			return nil, domain.ErrInvalidInput
		}
		s.BillingDay = *in.BillingDay
	}
	s.UpdatedAt = time.Now()
	if err := uc.settingsRepo.Upsert(s); err != nil {
		return nil, err
	}
	return dto.ToSettingsResponse(s), nil
}
