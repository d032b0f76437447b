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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
// Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `
	id, email, id_number, name, password_hash, role, phone, photo_url,
	is_active, created_at, updated_at`

// Create persiste un usuario y sus asociaciones de empresa.
func (r *UserRepo) Create(user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, email, id_number, name, password_hash, role, phone, photo_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, nullIfEmpty(user.Email), nullIfEmpty(user.IDNumber), user.Name,
		user.PasswordHash, user.Role, nullIfEmpty(user.Phone), nullIfEmpty(user.PhotoURL),
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return r.setCompanies(user.ID, user.CompanyIDs)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy(`id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`email = $1`, email)
}

// GetByIDNumber obtiene un usuario por cédula.
func (r *UserRepo) GetByIDNumber(idNumber string) (*entity.User, error) {
	return r.getBy(`id_number = $1`, idNumber)
}

func (r *UserRepo) getBy(cond, arg string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE ` + cond
	var u entity.User
	var email, idNumber, phone, photoURL *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &email, &idNumber, &u.Name, &u.PasswordHash, &u.Role,
		&phone, &photoURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Email = derefStr(email)
	u.IDNumber = derefStr(idNumber)
	u.Phone = derefStr(phone)
	u.PhotoURL = derefStr(photoURL)
	if err := r.loadCompanies(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update actualiza datos del usuario (no la contraseña salvo que venga hasheada).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, id_number = $3, name = $4, password_hash = $5,
		    role = $6, phone = $7, photo_url = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, nullIfEmpty(user.Email), nullIfEmpty(user.IDNumber), user.Name,
		user.PasswordHash, user.Role, nullIfEmpty(user.Phone), nullIfEmpty(user.PhotoURL),
		user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return r.setCompanies(user.ID, user.CompanyIDs)
}

// List usuarios con filtros y paginación. Devuelve la página y el total.
func (r *UserRepo) List(filter repository.UserFilter) ([]*entity.User, int64, error) {
	var conds []string
	var args []any
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf(`role = $%d`, len(args)))
	}
	if len(filter.Roles) > 0 {
		args = append(args, filter.Roles)
		conds = append(conds, fmt.Sprintf(`role = ANY($%d)`, len(args)))
	}
	if filter.CompanyIDs != nil {
		args = append(args, filter.CompanyIDs)
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM company_users cu
				WHERE cu.user_id = users.id AND cu.company_id = ANY($%d))`, len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf(`is_active = $%d`, len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(name ILIKE '%%' || $%d || '%%' OR email ILIKE '%%' || $%d || '%%' OR id_number ILIKE '%%' || $%d || '%%')`,
			n, n, n))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + conds[0]
		for _, c := range conds[1:] {
			where += " AND " + c
		}
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
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT` + userColumns + ` FROM users ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, (page-1)*limit)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var email, idNumber, phone, photoURL *string
		if err := rows.Scan(
			&u.ID, &email, &idNumber, &u.Name, &u.PasswordHash, &u.Role,
			&phone, &photoURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		u.Email = derefStr(email)
		u.IDNumber = derefStr(idNumber)
		u.Phone = derefStr(phone)
		u.PhotoURL = derefStr(photoURL)
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, u := range list {
		if err := r.loadCompanies(u); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// CountActiveByRole cuenta usuarios activos con un rol (dashboard).
func (r *UserRepo) CountActiveByRole(role string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM users WHERE role = $1 AND is_active`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

func (r *UserRepo) loadCompanies(u *entity.User) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT company_id FROM company_users WHERE user_id = $1 ORDER BY company_id`, u.ID)
	if err != nil {
		return fmt.Errorf("load user companies: %w", err)
	}
	defer rows.Close()
	u.CompanyIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan company id: %w", err)
		}
		u.CompanyIDs = append(u.CompanyIDs, id)
	}
	return rows.Err()
}

func (r *UserRepo) setCompanies(userID string, companyIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM company_users WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user companies: %w", err)
	}
	for _, companyID := range companyIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO company_users (user_id, company_id) VALUES ($1, $2)`, userID, companyID)
		if err != nil {
			return fmt.Errorf("link user company: %w", err)
		}
	}
	return nil
}

var _ repository.ValetRepository = (*ValetRepo)(nil)

// ValetRepo implementación de ValetRepository.
type ValetRepo struct {
	q Querier
}

// NewValetRepository construye el adaptador de valets.
func NewValetRepository(q Querier) *ValetRepo {
	return &ValetRepo{q: q}
}

// Create persiste un valet nuevo.
func (r *ValetRepo) Create(valet *entity.Valet) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO valets (id, name, id_number, company_id) VALUES ($1, $2, $3, $4)`,
		valet.ID, valet.Name, valet.IDNumber, nullIfEmpty(valet.CompanyID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create valet: %w", err)
	}
	return nil
}

// GetByID obtiene un valet por ID.
func (r *ValetRepo) GetByID(id string) (*entity.Valet, error) {
	var v entity.Valet
	var companyID *string
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, id_number, company_id FROM valets WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.IDNumber, &companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get valet: %w", err)
	}
	v.CompanyID = derefStr(companyID)
	return &v, nil
}

// List valets ordenados por nombre, opcionalmente acotados por empresa.
// Un valet sin empresa asignada aparece en cualquier listado.
func (r *ValetRepo) List(companyIDs []string) ([]*entity.Valet, error) {
	query := `SELECT id, name, id_number, company_id FROM valets`
	var args []any
	if companyIDs != nil {
		query += ` WHERE company_id IS NULL OR company_id = ANY($1)`
		args = append(args, companyIDs)
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list valets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Valet
	for rows.Next() {
		var v entity.Valet
		var companyID *string
		if err := rows.Scan(&v.ID, &v.Name, &v.IDNumber, &companyID); err != nil {
			return nil, fmt.Errorf("scan valet: %w", err)
		}
		v.CompanyID = derefStr(companyID)
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Delete elimina un valet. Los registros de parqueo conservan el ID en sus
// columnas de valet como referencia histórica.
func (r *ValetRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM valets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete valet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
