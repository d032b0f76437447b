package repository

import "github.com/tu-usuario/valet-pro/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	ListByOwner(ownerID string) ([]*entity.Vehicle, error)
	// FindByOwnerAndPlate devuelve nil si el dueño no tiene esa placa.
	FindByOwnerAndPlate(ownerID, plate string) (*entity.Vehicle, error)
}
