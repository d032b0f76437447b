package repository

import (
	"time"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// RecordFilter filtros de listado de registros de parqueo.
type RecordFilter struct {
	CompanyIDs []string // nil = sin restricción; vacío = nada visible
	CompanyID  string
	Status     string // active | pending_delivery | completed | "" = todos
	Plate      string // coincidencia parcial, sin distinción de mayúsculas
	Brand      string
	Model      string
	Color      string
	Search     string // busca en placa, marca y modelo
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

// RecordStatusCounts conteos por estado bajo el mismo predicado del listado.
type RecordStatusCounts struct {
	Active          int64
	PendingDelivery int64
	Completed       int64
	Total           int64
}

// ParkingRecordRepository define el puerto de persistencia para ParkingRecord.
type ParkingRecordRepository interface {
	Create(record *entity.ParkingRecord) error
	// GetByID carga el registro con sus pagos.
	GetByID(id string) (*entity.ParkingRecord, error)
	// GetOpenByPlate devuelve el registro abierto (check_out_at IS NULL)
	// para la placa, o nil si no hay ninguno.
	GetOpenByPlate(plate string) (*entity.ParkingRecord, error)
	// Checkout fija check_out_at, valet de entrega y notas. El registro
	// queda terminal: ninguna otra mutación es válida después.
	Checkout(record *entity.ParkingRecord) error
	// List devuelve la página y los conteos por estado calculados con el
	// mismo predicado del filtro.
	List(filter RecordFilter) ([]*entity.ParkingRecord, *RecordStatusCounts, error)
	ListOpenByOwner(ownerID string) ([]*entity.ParkingRecord, error)
	// ListOpenByCheckInValet registros activos recibidos por el valet con
	// esa cédula (búsqueda operativa de piso).
	ListOpenByCheckInValet(idNumber string) ([]*entity.ParkingRecord, error)
	// CountByCompanyAndPeriod cuenta check-ins de la empresa dentro del
	// período; es el snapshot de uso de la facturación.
	CountByCompanyAndPeriod(companyID string, start, end time.Time) (int64, error)
}
