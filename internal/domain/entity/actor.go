package entity

// Actor es el contexto de autorización que acompaña cada operación de
// custodia, pagos y planes: quién llama y sobre qué empresas puede actuar.
// Se construye una sola vez en el middleware de auth y se pasa explícito,
// en vez de inferir permisos en cada call site.
type Actor struct {
	UserID     string
	Role       string
	CompanyIDs []string
}

// CanAccess indica si el actor puede operar sobre la empresa dada.
// SUPER_ADMIN no está restringido por el conjunto de empresas.
func (a Actor) CanAccess(companyID string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	for _, id := range a.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// IsStaff indica si el actor pertenece al personal operativo.
func (a Actor) IsStaff() bool {
	switch a.Role {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleAttendant:
		return true
	}
	return false
}

// AllowedCompanies devuelve el filtro de empresas a aplicar en listados:
// nil significa sin restricción (SUPER_ADMIN ve todo). Para cualquier otro
// rol el resultado es siempre no-nil: un actor sin empresas asignadas
// recibe un conjunto vacío y no ve nada, nunca todo.
func (a Actor) AllowedCompanies() []string {
	if a.Role == RoleSuperAdmin {
		return nil
	}
	if a.CompanyIDs == nil {
		return []string{}
	}
	return a.CompanyIDs
}
