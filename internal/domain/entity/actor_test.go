package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// Un SUPER_ADMIN no tiene filtro de empresas: nil = sin restricción.
func TestAllowedCompanies_SuperAdminSinRestriccion(t *testing.T) {
	a := entity.Actor{UserID: "u1", Role: entity.RoleSuperAdmin}

	assert.Nil(t, a.AllowedCompanies())
}

// Un actor de staff sin empresas asignadas recibe un conjunto vacío, no
// nil: el filtro vacío no muestra registros de ninguna empresa.
func TestAllowedCompanies_StaffSinEmpresasNoVeNada(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleManager, entity.RoleAttendant, entity.RoleClient} {
		a := entity.Actor{UserID: "u2", Role: role, CompanyIDs: nil}

		got := a.AllowedCompanies()
		require.NotNil(t, got, "rol %s: nil significaría acceso global", role)
		assert.Empty(t, got)
	}
}

// Con empresas asignadas, el filtro es exactamente ese conjunto.
func TestAllowedCompanies_StaffConEmpresas(t *testing.T) {
	a := entity.Actor{UserID: "u3", Role: entity.RoleManager, CompanyIDs: []string{"c1", "c2"}}

	assert.Equal(t, []string{"c1", "c2"}, a.AllowedCompanies())
}

// CanAccess respeta el conjunto de empresas; SUPER_ADMIN lo ignora.
func TestCanAccess(t *testing.T) {
	manager := entity.Actor{UserID: "u4", Role: entity.RoleManager, CompanyIDs: []string{"c1"}}
	assert.True(t, manager.CanAccess("c1"))
	assert.False(t, manager.CanAccess("c2"))

	sinEmpresas := entity.Actor{UserID: "u5", Role: entity.RoleAttendant}
	assert.False(t, sinEmpresas.CanAccess("c1"))

	root := entity.Actor{UserID: "u6", Role: entity.RoleSuperAdmin}
	assert.True(t, root.CanAccess("c9"))
}
