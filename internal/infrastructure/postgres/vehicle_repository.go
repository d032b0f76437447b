package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo bajo su dueño.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}
	query := `
		INSERT INTO vehicles (id, owner_id, plate, brand, model, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.OwnerID, vehicle.Plate, vehicle.Brand, vehicle.Model, vehicle.Color,
		vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `
		SELECT id, owner_id, plate, brand, model, color, created_at, updated_at
		FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.OwnerID, &v.Plate, &v.Brand, &v.Model, &v.Color, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// ListByOwner vehículos registrados bajo un dueño.
func (r *VehicleRepo) ListByOwner(ownerID string) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, owner_id, plate, brand, model, color, created_at, updated_at
		FROM vehicles WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Plate, &v.Brand, &v.Model, &v.Color, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// FindByOwnerAndPlate devuelve nil si el dueño no tiene esa placa.
func (r *VehicleRepo) FindByOwnerAndPlate(ownerID, plate string) (*entity.Vehicle, error) {
	query := `
		SELECT id, owner_id, plate, brand, model, color, created_at, updated_at
		FROM vehicles WHERE owner_id = $1 AND plate = $2`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, ownerID, plate).Scan(
		&v.ID, &v.OwnerID, &v.Plate, &v.Brand, &v.Model, &v.Color, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vehicle by plate: %w", err)
	}
	return &v, nil
}
