package repository

import "github.com/tu-usuario/valet-pro/internal/domain/entity"

// SettingsRepository fila única de configuración operativa.
type SettingsRepository interface {
	// Get devuelve la fila "default", creándola si no existe.
	Get() (*entity.Settings, error)
	Upsert(settings *entity.Settings) error
}
