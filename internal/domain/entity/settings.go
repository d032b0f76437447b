package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID es la clave del registro único de configuración.
const SettingsID = "default"

// Settings es la configuración operativa global (fila única "default").
type Settings struct {
	ID         string
	BaseFeeUSD decimal.Decimal // tarifa base sugerida por estancia
	TipEnabled bool
	BillingDay int // día del mes en que se generan facturas de empresa
	UpdatedAt  time.Time
}
