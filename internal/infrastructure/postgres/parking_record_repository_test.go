package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// Un filtro con conjunto de empresas vacío (no nil) sí genera el
// predicado de empresa: el staff sin empresas asignadas no ve registros.
// Solo el filtro nil (SUPER_ADMIN) omite la restricción.
func TestBuildRecordWhere_ConjuntoVacioRestringe(t *testing.T) {
	where, args := buildRecordWhere(repository.RecordFilter{CompanyIDs: []string{}})

	require.Contains(t, where, `company_id = ANY($1)`)
	require.Len(t, args, 1)
	assert.Empty(t, args[0].([]string))
}

func TestBuildRecordWhere_NilSinRestriccion(t *testing.T) {
	where, args := buildRecordWhere(repository.RecordFilter{})

	assert.Empty(t, where)
	assert.Nil(t, args)
}

// El predicado combina empresa y estado con AND y numera los argumentos
// en orden de aparición.
func TestBuildRecordWhere_CombinaCondiciones(t *testing.T) {
	where, args := buildRecordWhere(repository.RecordFilter{
		CompanyIDs: []string{"c1"},
		Status:     entity.RecordStatusCompleted,
		Plate:      "ABC",
	})

	assert.Contains(t, where, `company_id = ANY($1)`)
	assert.Contains(t, where, `check_out_at IS NOT NULL`)
	assert.Contains(t, where, `plate ILIKE '%' || $2 || '%'`)
	assert.Len(t, args, 2)
}
