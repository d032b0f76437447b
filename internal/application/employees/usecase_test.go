package employees_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/application/employees"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeValetRepo struct {
	valets []*entity.Valet
}

func (f *fakeValetRepo) Create(v *entity.Valet) error {
	for _, existing := range f.valets {
		if existing.IDNumber == v.IDNumber {
			return domain.ErrConflict
		}
	}
	f.valets = append(f.valets, v)
	return nil
}
func (f *fakeValetRepo) GetByID(id string) (*entity.Valet, error) {
	for _, v := range f.valets {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}
func (f *fakeValetRepo) List(companyIDs []string) ([]*entity.Valet, error) {
	if companyIDs == nil {
		return f.valets, nil
	}
	var out []*entity.Valet
	for _, v := range f.valets {
		if v.CompanyID == "" {
			out = append(out, v)
			continue
		}
		for _, id := range companyIDs {
			if v.CompanyID == id {
				out = append(out, v)
				break
			}
		}
	}
	return out, nil
}
func (f *fakeValetRepo) Delete(id string) error {
	for i, v := range f.valets {
		if v.ID == id {
			f.valets = append(f.valets[:i], f.valets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.users = append(f.users, u)
	return nil
}
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByIDNumber(idNumber string) (*entity.User, error) {
	for _, u := range f.users {
		if u.IDNumber == idNumber {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error {
	for i, existing := range f.users {
		if existing.ID == u.ID {
			f.users[i] = u
			return nil
		}
	}
	return domain.ErrUserNotFound
}
func (f *fakeUserRepo) List(filter repository.UserFilter) ([]*entity.User, int64, error) {
	var out []*entity.User
	for _, u := range f.users {
		if len(filter.Roles) > 0 {
			ok := false
			for _, r := range filter.Roles {
				if u.Role == r {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if filter.CompanyIDs != nil {
			ok := false
			for _, want := range filter.CompanyIDs {
				for _, has := range u.CompanyIDs {
					if has == want {
						ok = true
					}
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}
func (f *fakeUserRepo) CountActiveByRole(role string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role && u.IsActive {
			n++
		}
	}
	return n, nil
}

const testCompanyID = "00000000-0000-0000-0000-0000000000c1"

func adminActor() entity.Actor {
	return entity.Actor{
		UserID:     "00000000-0000-0000-0000-0000000000a1",
		Role:       entity.RoleAdmin,
		CompanyIDs: []string{testCompanyID},
	}
}

type fixture struct {
	uc     *employees.UseCase
	valets *fakeValetRepo
	users  *fakeUserRepo
}

func newFixture() *fixture {
	f := &fixture{valets: &fakeValetRepo{}, users: &fakeUserRepo{}}
	f.uc = employees.NewUseCase(f.valets, f.users)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

// Un valet nuevo queda asignado a la empresa del admin cuando la petición
// no trae empresa explícita.
func TestCreate_ValetEnLaEmpresaDelAdmin(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(adminActor(), dto.CreateEmployeeRequest{
		Type: dto.EmployeeTypeValet, Name: "Pedro Rojas", IDNumber: "11223344",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.EmployeeTypeValet, resp.Type)
	require.Len(t, f.valets.valets, 1)
	assert.Equal(t, testCompanyID, f.valets.valets[0].CompanyID)
}

// Un attendant nuevo es un usuario con rol ATTENDANT cuya contraseña
// inicial es su cédula.
func TestCreate_AttendantConCedulaComoPassword(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(adminActor(), dto.CreateEmployeeRequest{
		Type: dto.EmployeeTypeAttendant, Name: "Laura Gil",
		IDNumber: "99887766", Email: "laura@empresa.com",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.EmployeeTypeAttendant, resp.Type)
	require.Len(t, f.users.users, 1)
	created := f.users.users[0]
	assert.Equal(t, entity.RoleAttendant, created.Role)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{testCompanyID}, created.CompanyIDs)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("99887766")))
}

// Un ATTENDANT requiere email; un valet no.
func TestCreate_AttendantSinEmail(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(adminActor(), dto.CreateEmployeeRequest{
		Type: dto.EmployeeTypeAttendant, Name: "Laura Gil", IDNumber: "99887766",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Email ya registrado: rechazado.
func TestCreate_EmailDuplicado(t *testing.T) {
	f := newFixture()
	f.users.users = append(f.users.users, &entity.User{
		ID: "u1", Email: "laura@empresa.com", IDNumber: "1", Role: entity.RoleClient,
	})

	_, err := f.uc.Create(adminActor(), dto.CreateEmployeeRequest{
		Type: dto.EmployeeTypeAttendant, Name: "Laura Gil",
		IDNumber: "99887766", Email: "laura@empresa.com",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Solo administración gestiona empleados.
func TestCreate_SoloAdministracion(t *testing.T) {
	f := newFixture()
	manager := entity.Actor{UserID: "u2", Role: entity.RoleManager, CompanyIDs: []string{testCompanyID}}

	_, err := f.uc.Create(manager, dto.CreateEmployeeRequest{
		Type: dto.EmployeeTypeValet, Name: "Pedro Rojas", IDNumber: "11223344",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Empresa fuera del conjunto del admin: rechazada.
func TestCreate_EmpresaAjena(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(adminActor(), dto.CreateEmployeeRequest{
		Type: dto.EmployeeTypeValet, Name: "Pedro Rojas", IDNumber: "11223344",
		CompanyID: "otra-empresa",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List y Delete
// ──────────────────────────────────────────────────────────────────────────────

// El listado combina valets y staff operativo de las empresas del actor.
func TestList_CombinaValetsYStaff(t *testing.T) {
	f := newFixture()
	f.valets.valets = append(f.valets.valets,
		&entity.Valet{ID: "v1", Name: "Pedro", IDNumber: "1", CompanyID: testCompanyID},
		&entity.Valet{ID: "v2", Name: "Ana", IDNumber: "2", CompanyID: "otra-empresa"},
	)
	f.users.users = append(f.users.users,
		&entity.User{ID: "u1", Name: "Laura", Role: entity.RoleAttendant, IsActive: true, CompanyIDs: []string{testCompanyID}},
		&entity.User{ID: "u2", Name: "Sofía", Role: entity.RoleClient, IsActive: true, CompanyIDs: []string{testCompanyID}},
	)

	list, err := f.uc.List(adminActor())
	require.NoError(t, err)

	require.Len(t, list, 2, "el valet y el cliente de otra empresa quedan fuera")
	assert.Equal(t, "v1", list[0].ID)
	assert.Equal(t, "u1", list[1].ID)
	assert.Equal(t, entity.RoleAttendant, list[1].Type)
}

// Eliminar un valet lo quita del catálogo; uno inexistente es NotFound.
func TestDelete_Valet(t *testing.T) {
	f := newFixture()
	f.valets.valets = append(f.valets.valets,
		&entity.Valet{ID: "v1", Name: "Pedro", IDNumber: "1", CompanyID: testCompanyID})

	require.NoError(t, f.uc.Delete(adminActor(), "v1", dto.EmployeeTypeValet))
	assert.Empty(t, f.valets.valets)

	err := f.uc.Delete(adminActor(), "v1", dto.EmployeeTypeValet)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un valet de una empresa ajena no se puede eliminar.
func TestDelete_ValetDeEmpresaAjena(t *testing.T) {
	f := newFixture()
	f.valets.valets = append(f.valets.valets,
		&entity.Valet{ID: "v1", Name: "Pedro", IDNumber: "1", CompanyID: "otra-empresa"})

	err := f.uc.Delete(adminActor(), "v1", dto.EmployeeTypeValet)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un attendant no se borra: se desactiva, porque puede tener pagos
// procesados a su nombre.
func TestDelete_AttendantSeDesactiva(t *testing.T) {
	f := newFixture()
	f.users.users = append(f.users.users,
		&entity.User{ID: "u1", Name: "Laura", Role: entity.RoleAttendant, IsActive: true})

	require.NoError(t, f.uc.Delete(adminActor(), "u1", dto.EmployeeTypeAttendant))

	require.Len(t, f.users.users, 1)
	assert.False(t, f.users.users[0].IsActive)
}

// Delete de tipo ATTENDANT solo aplica a usuarios con ese rol.
func TestDelete_AttendantRolIncorrecto(t *testing.T) {
	f := newFixture()
	f.users.users = append(f.users.users,
		&entity.User{ID: "u1", Name: "Laura", Role: entity.RoleManager, IsActive: true})

	err := f.uc.Delete(adminActor(), "u1", dto.EmployeeTypeAttendant)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
