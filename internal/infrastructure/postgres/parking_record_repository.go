package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

var _ repository.ParkingRecordRepository = (*ParkingRecordRepo)(nil)

// ParkingRecordRepo implementación de ParkingRecordRepository (usable con pool o tx).
type ParkingRecordRepo struct {
	q Querier
}

// NewParkingRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewParkingRecordRepository(q Querier) *ParkingRecordRepo {
	return &ParkingRecordRepo{q: q}
}

const recordColumns = `
	id, plate, brand, model, color, owner_id, company_id,
	registered_by_id, check_in_valet_id, check_out_valet_id,
	check_in_at, check_out_at, notes`

// Create persiste un registro nuevo. El índice parcial único sobre
// (plate) WHERE check_out_at IS NULL respalda la regla "una placa no
// puede estar en custodia dos veces" frente a check-ins concurrentes.
func (r *ParkingRecordRepo) Create(record *entity.ParkingRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO parking_records (id, plate, brand, model, color, owner_id, company_id,
			registered_by_id, check_in_valet_id, check_in_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.Plate, record.Brand, record.Model, record.Color,
		nullIfEmpty(record.OwnerID), nullIfEmpty(record.CompanyID),
		record.RegisteredByID, nullIfEmpty(record.CheckInValetID),
		record.CheckInAt, nullIfEmpty(record.Notes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyInCustody
		}
		return fmt.Errorf("insert parking record: %w", err)
	}
	return nil
}

// GetByID obtiene el registro con sus pagos.
func (r *ParkingRecordRepo) GetByID(id string) (*entity.ParkingRecord, error) {
	query := `SELECT` + recordColumns + ` FROM parking_records WHERE id = $1`
	record, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil || record == nil {
		return record, err
	}
	payments, err := NewPaymentRepository(r.q).ListByRecord(record.ID)
	if err != nil {
		return nil, err
	}
	record.Payments = payments
	return record, nil
}

// GetOpenByPlate devuelve el registro abierto de la placa, o nil.
func (r *ParkingRecordRepo) GetOpenByPlate(plate string) (*entity.ParkingRecord, error) {
	query := `SELECT` + recordColumns + ` FROM parking_records
		WHERE plate = $1 AND check_out_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, plate))
}

// Checkout fija la salida solo si el registro sigue abierto: el predicado
// check_out_at IS NULL hace que de dos checkouts concurrentes solo uno
// mute la fila; el otro ve 0 filas afectadas.
func (r *ParkingRecordRepo) Checkout(record *entity.ParkingRecord) error {
	query := `
		UPDATE parking_records
		SET check_out_at = $2,
		    check_out_valet_id = COALESCE($3, check_out_valet_id),
		    notes = COALESCE($4, notes)
		WHERE id = $1 AND check_out_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		record.ID, record.CheckOutAt,
		nullIfEmpty(record.CheckOutValetID), nullIfEmpty(record.Notes),
	)
	if err != nil {
		return fmt.Errorf("checkout parking record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyCheckedOut
	}
	return nil
}

// List devuelve la página y los conteos por estado con el mismo predicado.
func (r *ParkingRecordRepo) List(filter repository.RecordFilter) ([]*entity.ParkingRecord, *repository.RecordStatusCounts, error) {
	where, args := buildRecordWhere(filter)

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	listQuery := `SELECT` + recordColumns + ` FROM parking_records r ` + where +
		fmt.Sprintf(` ORDER BY check_in_at DESC LIMIT %d OFFSET %d`, limit, (page-1)*limit)

	rows, err := r.q.Query(context.Background(), listQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("list parking records: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, nil, err
	}

	// Conteos por estado bajo el mismo WHERE que la página (FILTER por
	// estado dentro de una sola sentencia: snapshot consistente).
	countQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE check_out_at IS NULL AND NOT EXISTS (
				SELECT 1 FROM payments p WHERE p.parking_record_id = r.id)),
			COUNT(*) FILTER (WHERE check_out_at IS NULL AND EXISTS (
				SELECT 1 FROM payments p WHERE p.parking_record_id = r.id)),
			COUNT(*) FILTER (WHERE check_out_at IS NOT NULL)
		FROM parking_records r ` + where
	var counts repository.RecordStatusCounts
	err = r.q.QueryRow(context.Background(), countQuery, args...).Scan(
		&counts.Total, &counts.Active, &counts.PendingDelivery, &counts.Completed,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("count parking records: %w", err)
	}
	return records, &counts, nil
}

// ListOpenByOwner registros activos de un dueño, con pagos.
func (r *ParkingRecordRepo) ListOpenByOwner(ownerID string) ([]*entity.ParkingRecord, error) {
	query := `SELECT` + recordColumns + ` FROM parking_records
		WHERE owner_id = $1 AND check_out_at IS NULL
		ORDER BY check_in_at DESC`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list open records by owner: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return r.attachPayments(records)
}

// ListOpenByCheckInValet registros activos recibidos por el valet con esa cédula.
func (r *ParkingRecordRepo) ListOpenByCheckInValet(idNumber string) ([]*entity.ParkingRecord, error) {
	query := `SELECT` + recordColumns + ` FROM parking_records r
		WHERE check_out_at IS NULL
		  AND check_in_valet_id IN (SELECT id FROM valets WHERE id_number = $1)
		ORDER BY check_in_at DESC`
	rows, err := r.q.Query(context.Background(), query, idNumber)
	if err != nil {
		return nil, fmt.Errorf("list open records by valet: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return r.attachPayments(records)
}

// CountByCompanyAndPeriod snapshot de uso para facturación.
func (r *ParkingRecordRepo) CountByCompanyAndPeriod(companyID string, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM parking_records
		WHERE company_id = $1 AND check_in_at >= $2 AND check_in_at <= $3`
	var count int64
	if err := r.q.QueryRow(context.Background(), query, companyID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records by company and period: %w", err)
	}
	return count, nil
}

func (r *ParkingRecordRepo) attachPayments(records []*entity.ParkingRecord) ([]*entity.ParkingRecord, error) {
	payRepo := NewPaymentRepository(r.q)
	for _, rec := range records {
		payments, err := payRepo.ListByRecord(rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Payments = payments
	}
	return records, nil
}

func (r *ParkingRecordRepo) scanOne(row pgx.Row) (*entity.ParkingRecord, error) {
	var rec entity.ParkingRecord
	var ownerID, companyID, checkInValet, checkOutValet, notes *string
	err := row.Scan(
		&rec.ID, &rec.Plate, &rec.Brand, &rec.Model, &rec.Color,
		&ownerID, &companyID, &rec.RegisteredByID, &checkInValet, &checkOutValet,
		&rec.CheckInAt, &rec.CheckOutAt, &notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parking record: %w", err)
	}
	rec.OwnerID = derefStr(ownerID)
	rec.CompanyID = derefStr(companyID)
	rec.CheckInValetID = derefStr(checkInValet)
	rec.CheckOutValetID = derefStr(checkOutValet)
	rec.Notes = derefStr(notes)
	return &rec, nil
}

func scanRecords(rows pgx.Rows) ([]*entity.ParkingRecord, error) {
	defer rows.Close()
	var list []*entity.ParkingRecord
	for rows.Next() {
		var rec entity.ParkingRecord
		var ownerID, companyID, checkInValet, checkOutValet, notes *string
		if err := rows.Scan(
			&rec.ID, &rec.Plate, &rec.Brand, &rec.Model, &rec.Color,
			&ownerID, &companyID, &rec.RegisteredByID, &checkInValet, &checkOutValet,
			&rec.CheckInAt, &rec.CheckOutAt, &notes,
		); err != nil {
			return nil, fmt.Errorf("scan parking record: %w", err)
		}
		rec.OwnerID = derefStr(ownerID)
		rec.CompanyID = derefStr(companyID)
		rec.CheckInValetID = derefStr(checkInValet)
		rec.CheckOutValetID = derefStr(checkOutValet)
		rec.Notes = derefStr(notes)
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// buildRecordWhere arma el WHERE dinámico del listado. El mismo par
// (where, args) alimenta la página y los conteos.
func buildRecordWhere(f repository.RecordFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CompanyIDs != nil {
		add(`company_id = ANY($%d)`, f.CompanyIDs)
	}
	if f.CompanyID != "" {
		add(`company_id = $%d`, f.CompanyID)
	}
	switch f.Status {
	case entity.RecordStatusActive:
		conds = append(conds, `check_out_at IS NULL AND NOT EXISTS (
			SELECT 1 FROM payments p WHERE p.parking_record_id = r.id)`)
	case entity.RecordStatusPendingDelivery:
		conds = append(conds, `check_out_at IS NULL AND EXISTS (
			SELECT 1 FROM payments p WHERE p.parking_record_id = r.id)`)
	case entity.RecordStatusCompleted:
		conds = append(conds, `check_out_at IS NOT NULL`)
	}
	if f.Plate != "" {
		add(`plate ILIKE '%%' || $%d || '%%'`, f.Plate)
	}
	if f.Brand != "" {
		add(`brand ILIKE '%%' || $%d || '%%'`, f.Brand)
	}
	if f.Model != "" {
		add(`model ILIKE '%%' || $%d || '%%'`, f.Model)
	}
	if f.Color != "" {
		add(`color ILIKE '%%' || $%d || '%%'`, f.Color)
	}
	if f.DateFrom != nil {
		add(`check_in_at >= $%d`, *f.DateFrom)
	}
	if f.DateTo != nil {
		add(`check_in_at <= $%d`, *f.DateTo)
	}
	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(plate ILIKE '%%' || $%d || '%%' OR brand ILIKE '%%' || $%d || '%%' OR model ILIKE '%%' || $%d || '%%')`,
			n, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := "WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}
