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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación de PlanRepository (usable con pool o tx).
// El índice parcial único sobre (company_id) WHERE is_active respalda la
// regla "a lo sumo un plan activo por empresa" ante escrituras concurrentes.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `
	id, company_id, plan_type, flat_rate, per_vehicle_rate, base_price,
	fee_type, fee_value, is_active, created_at`

// Create inserta una versión nueva de plan.
func (r *PlanRepo) Create(plan *entity.CompanyPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	query := `
		INSERT INTO company_plans (id, company_id, plan_type, flat_rate, per_vehicle_rate,
			base_price, fee_type, fee_value, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.CompanyID, plan.PlanType,
		plan.FlatRate, plan.PerVehicleRate, plan.BasePrice,
		nullIfEmpty(plan.FeeType), plan.FeeValue,
		plan.IsActive, plan.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert company plan: %w", err)
	}
	return nil
}

// GetByID obtiene una versión de plan por ID.
func (r *PlanRepo) GetByID(id string) (*entity.CompanyPlan, error) {
	query := `SELECT` + planColumns + ` FROM company_plans WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveByCompany devuelve el plan vigente de la empresa, o nil.
func (r *PlanRepo) GetActiveByCompany(companyID string) (*entity.CompanyPlan, error) {
	query := `SELECT` + planColumns + ` FROM company_plans
		WHERE company_id = $1 AND is_active`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID))
}

// DeactivateActive apaga el plan vigente de la empresa (si existe).
// is_active solo transiciona true→false; un plan nunca se reactiva.
func (r *PlanRepo) DeactivateActive(companyID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE company_plans SET is_active = FALSE WHERE company_id = $1 AND is_active`,
		companyID)
	if err != nil {
		return fmt.Errorf("deactivate company plan: %w", err)
	}
	return nil
}

// ListByCompany historial de versiones, más reciente primero.
func (r *PlanRepo) ListByCompany(companyID string) ([]*entity.CompanyPlan, error) {
	query := `SELECT` + planColumns + ` FROM company_plans
		WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompanyPlan
	for rows.Next() {
		var p entity.CompanyPlan
		var feeType *string
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.PlanType, &p.FlatRate, &p.PerVehicleRate,
			&p.BasePrice, &feeType, &p.FeeValue, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company plan: %w", err)
		}
		p.FeeType = derefStr(feeType)
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PlanRepo) scanOne(row pgx.Row) (*entity.CompanyPlan, error) {
	var p entity.CompanyPlan
	var feeType *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.PlanType, &p.FlatRate, &p.PerVehicleRate,
		&p.BasePrice, &feeType, &p.FeeValue, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company plan: %w", err)
	}
	p.FeeType = derefStr(feeType)
	return &p, nil
}
