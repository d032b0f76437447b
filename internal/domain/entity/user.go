package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleAttendant  = "ATTENDANT"
	RoleClient     = "CLIENT"
)

// User representa un usuario del sistema: staff operativo o cliente dueño de vehículos.
type User struct {
	ID           string
	Email        string
	IDNumber     string // cédula / documento de identidad (único)
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ver constantes Role*
	Phone        string
	PhotoURL     string
	IsActive     bool
	CompanyIDs   []string // empresas a las que pertenece (tabla company_users)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Valet es la persona que físicamente recibe o entrega el vehículo.
// Es una entidad aparte de User: un valet no necesariamente tiene cuenta.
type Valet struct {
	ID        string
	Name      string
	IDNumber  string
	CompanyID string // empresa a la que está asignado (opcional)
}
