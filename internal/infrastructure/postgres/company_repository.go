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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste la empresa y sus usuarios asociados.
func (r *CompanyRepo) Create(company *entity.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	query := `
		INSERT INTO companies (id, name, photo_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, nullIfEmpty(company.PhotoURL),
		company.IsActive, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return r.SetUsers(company.ID, company.UserIDs)
}

// GetByID obtiene una empresa (excluye soft-deleted).
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `
		SELECT id, name, photo_url, is_active, created_at, updated_at, deleted_at
		FROM companies WHERE id = $1 AND deleted_at IS NULL`
	var c entity.Company
	var photoURL *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &photoURL, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	c.PhotoURL = derefStr(photoURL)
	if err := r.loadUsers(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update actualiza nombre, foto y estado.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, photo_url = $3, is_active = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, nullIfEmpty(company.PhotoURL),
		company.IsActive, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetUsers reemplaza las asociaciones usuario-empresa.
func (r *CompanyRepo) SetUsers(companyID string, userIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM company_users WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("clear company users: %w", err)
	}
	for _, userID := range userIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO company_users (user_id, company_id) VALUES ($1, $2)`, userID, companyID)
		if err != nil {
			return fmt.Errorf("link company user: %w", err)
		}
	}
	return nil
}

// List empresas con filtros, restringido al conjunto del actor.
func (r *CompanyRepo) List(filter repository.CompanyFilter) ([]*entity.Company, int64, error) {
	conds := []string{`deleted_at IS NULL`}
	var args []any
	if filter.CompanyIDs != nil {
		args = append(args, filter.CompanyIDs)
		conds = append(conds, fmt.Sprintf(`id = ANY($%d)`, len(args)))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		conds = append(conds, fmt.Sprintf(`name ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf(`is_active = $%d`, len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		conds = append(conds, fmt.Sprintf(`name ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	where := "WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var total int64
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM companies `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	query := `
		SELECT id, name, photo_url, is_active, created_at, updated_at, deleted_at
		FROM companies ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, (page-1)*limit)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		var photoURL *string
		if err := rows.Scan(&c.ID, &c.Name, &photoURL, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		c.PhotoURL = derefStr(photoURL)
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// SoftDelete marca la empresa como eliminada y la desactiva.
func (r *CompanyRepo) SoftDelete(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE companies SET deleted_at = $2, is_active = FALSE WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("soft delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) loadUsers(c *entity.Company) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT user_id FROM company_users WHERE company_id = $1 ORDER BY user_id`, c.ID)
	if err != nil {
		return fmt.Errorf("load company users: %w", err)
	}
	defer rows.Close()
	c.UserIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan user id: %w", err)
		}
		c.UserIDs = append(c.UserIDs, id)
	}
	return rows.Err()
}
