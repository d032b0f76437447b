package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
	"github.com/tu-usuario/valet-pro/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación y gestión de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// canCreateRole reglas de creación: SUPER_ADMIN crea cualquier rol; ADMIN
// crea MANAGER, ATTENDANT y CLIENT dentro de sus empresas.
func canCreateRole(actor entity.Actor, role string) bool {
	switch actor.Role {
	case entity.RoleSuperAdmin:
		return true
	case entity.RoleAdmin:
		switch role {
		case entity.RoleManager, entity.RoleAttendant, entity.RoleClient:
			return true
		}
	}
	return false
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Caso especial de bootstrap: si no existe ningún SUPER_ADMIN activo, el
// primer registro crea uno sin exigir actor autenticado.
func (uc *UseCase) Register(actor entity.Actor, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 || in.IDNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	role := in.Role
	superAdmins, err := uc.userRepo.CountActiveByRole(entity.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if superAdmins == 0 {
		role = entity.RoleSuperAdmin // bootstrap del sistema
	} else {
		if role == "" {
			role = entity.RoleAttendant
		}
		if !canCreateRole(actor, role) {
			return nil, domain.ErrForbidden
		}
		for _, companyID := range in.CompanyIDs {
			if !actor.CanAccess(companyID) {
				return nil, domain.ErrForbidden
			}
		}
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

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
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
		Role:         role,
		Phone:        in.Phone,
		IsActive:     true,
		CompanyIDs:   in.CompanyIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.CompanyIDs, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}

// GetByID devuelve un usuario. El staff ve cualquiera; un cliente solo a sí mismo.
func (uc *UseCase) GetByID(actor entity.Actor, id string) (*dto.UserResponse, error) {
	if !actor.IsStaff() && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// Update edición parcial de un usuario. Cambiar el rol exige las mismas
// reglas que crearlo.
func (uc *UseCase) Update(actor entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsStaff() && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Role != nil && *in.Role != user.Role {
		if !canCreateRole(actor, *in.Role) {
			return nil, domain.ErrForbidden
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		if !canCreateRole(actor, user.Role) {
			return nil, domain.ErrForbidden
		}
		user.IsActive = *in.IsActive
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.PhotoURL != nil {
		user.PhotoURL = *in.PhotoURL
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// List página de usuarios (solo staff).
func (uc *UseCase) List(actor entity.Actor, in dto.FilterUsersRequest) ([]*dto.UserResponse, dto.PageMeta, error) {
	if !actor.IsStaff() {
		return nil, dto.PageMeta{}, domain.ErrForbidden
	}
	in.DefaultPage()
	users, total, err := uc.userRepo.List(repository.UserFilter{
		Role:     in.Role,
		IsActive: in.IsActive,
		Search:   in.Search,
		Page:     in.Page,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, dto.PageMeta{}, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, dto.NewPageMeta(in.Page, in.Limit, total), nil
}
