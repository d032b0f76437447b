package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo fila única "default" de configuración operativa.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de settings.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la fila default, creándola con valores por defecto si no existe.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	query := `
		SELECT id, base_fee_usd, tip_enabled, billing_day, updated_at
		FROM settings WHERE id = $1`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query, entity.SettingsID).Scan(
		&s.ID, &s.BaseFeeUSD, &s.TipEnabled, &s.BillingDay, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := &entity.Settings{
				ID:         entity.SettingsID,
				BaseFeeUSD: decimal.Zero,
				TipEnabled: true,
				BillingDay: 1,
				UpdatedAt:  time.Now(),
			}
			if err := r.Upsert(defaults); err != nil {
				return nil, err
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila default.
func (r *SettingsRepo) Upsert(settings *entity.Settings) error {
	settings.ID = entity.SettingsID
	query := `
		INSERT INTO settings (id, base_fee_usd, tip_enabled, billing_day, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET base_fee_usd = EXCLUDED.base_fee_usd,
		    tip_enabled  = EXCLUDED.tip_enabled,
		    billing_day  = EXCLUDED.billing_day,
		    updated_at   = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		settings.ID, settings.BaseFeeUSD, settings.TipEnabled, settings.BillingDay, settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
