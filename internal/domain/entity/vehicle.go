package entity

import "time"

// Vehicle representa un vehículo registrado bajo un dueño.
// El catálogo del dueño es editable; los registros de parqueo guardan
// su propia copia de los campos descriptivos (ver ParkingRecord).
type Vehicle struct {
	ID        string
	OwnerID   string
	Plate     string
	Brand     string
	Model     string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
