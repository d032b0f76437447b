package employees

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// UseCase administra el personal operativo: valets (sin cuenta) y
// attendants (usuarios con rol ATTENDANT). Ambos se exponen como una sola
// lista de empleados.
type UseCase struct {
	valetRepo repository.ValetRepository
	userRepo  repository.UserRepository
}

// NewUseCase construye el caso de uso de empleados.
func NewUseCase(valetRepo repository.ValetRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{valetRepo: valetRepo, userRepo: userRepo}
}

func isAdmin(actor entity.Actor) bool {
	return actor.Role == entity.RoleSuperAdmin || actor.Role == entity.RoleAdmin
}

// Create da de alta un empleado. Un VALET es una fila propia sin
// credenciales; un ATTENDANT es un usuario cuya contraseña inicial es su
// cédula (la cambia en el primer acceso).
func (uc *UseCase) Create(actor entity.Actor, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if !isAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.IDNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	companyID := in.CompanyID
	if companyID == "" && len(actor.CompanyIDs) > 0 {
		companyID = actor.CompanyIDs[0]
	}
	if companyID != "" && !actor.CanAccess(companyID) {
		return nil, domain.ErrForbidden
	}

	switch in.Type {
	case dto.EmployeeTypeValet:
		valet := &entity.Valet{
			ID:        uuid.New().String(),
			Name:      in.Name,
			IDNumber:  in.IDNumber,
			CompanyID: companyID,
		}
		if err := uc.valetRepo.Create(valet); err != nil {
			return nil, err
		}
		return valetToEmployee(valet), nil

	case dto.EmployeeTypeAttendant:
		if in.Email == "" {
			return nil, domain.ErrInvalidInput
		}
		if existing, err := uc.userRepo.GetByEmail(in.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		if existing, err := uc.userRepo.GetByIDNumber(in.IDNumber); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.ErrConflict
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.IDNumber), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user := &entity.User{
			ID:           uuid.New().String(),
			Email:        in.Email,
			IDNumber:     in.IDNumber,
			Name:         in.Name,
			PasswordHash: string(hash),
			Role:         entity.RoleAttendant,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if companyID != "" {
			user.CompanyIDs = []string{companyID}
		}
		if err := uc.userRepo.Create(user); err != nil {
			return nil, err
		}
		return userToEmployee(user), nil
	}

	return nil, domain.ErrInvalidInput
}

// List combina valets y staff operativo (attendants y managers) de las
// empresas del actor, ordenados por nombre dentro de cada grupo.
func (uc *UseCase) List(actor entity.Actor) ([]*dto.EmployeeResponse, error) {
	if !isAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	companies := actor.AllowedCompanies()

	valets, err := uc.valetRepo.List(companies)
	if err != nil {
		return nil, err
	}
	active := true
	users, _, err := uc.userRepo.List(repository.UserFilter{
		Roles:      []string{entity.RoleAttendant, entity.RoleManager},
		CompanyIDs: companies,
		IsActive:   &active,
		Limit:      500,
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	out := make([]*dto.EmployeeResponse, 0, len(valets)+len(users))
	for _, v := range valets {
		out = append(out, valetToEmployee(v))
	}
	for _, u := range users {
		out = append(out, userToEmployee(u))
	}
	return out, nil
}

// Delete retira un empleado. Un VALET se elimina (los registros de parqueo
// conservan su ID como atribución histórica); un ATTENDANT se desactiva,
// nunca se borra: puede haber pagos procesados a su nombre.
func (uc *UseCase) Delete(actor entity.Actor, id, employeeType string) error {
	if !isAdmin(actor) {
		return domain.ErrForbidden
	}

	switch employeeType {
	case dto.EmployeeTypeValet:
		valet, err := uc.valetRepo.GetByID(id)
		if err != nil {
			return err
		}
		if valet == nil {
			return domain.ErrNotFound
		}
		if valet.CompanyID != "" && !actor.CanAccess(valet.CompanyID) {
			return domain.ErrForbidden
		}
		return uc.valetRepo.Delete(id)

	case dto.EmployeeTypeAttendant:
		user, err := uc.userRepo.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil || user.Role != entity.RoleAttendant {
			return domain.ErrNotFound
		}
		user.IsActive = false
		user.UpdatedAt = time.Now()
		return uc.userRepo.Update(user)
	}

	return domain.ErrInvalidInput
}

func valetToEmployee(v *entity.Valet) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:       v.ID,
		Name:     v.Name,
		IDNumber: v.IDNumber,
		Type:     dto.EmployeeTypeValet,
	}
}

func userToEmployee(u *entity.User) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:       u.ID,
		Name:     u.Name,
		IDNumber: u.IDNumber,
		Type:     u.Role,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
	}
}
