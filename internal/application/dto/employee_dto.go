package dto

// Tipos de empleado operativo.
const (
	EmployeeTypeValet     = "VALET"
	EmployeeTypeAttendant = "ATTENDANT"
)

// CreateEmployeeRequest alta de personal operativo. Un VALET es solo
// nombre y cédula; un ATTENDANT es un usuario con cuenta y requiere email.
type CreateEmployeeRequest struct {
	Type      string `json:"type" validate:"required,oneof=VALET ATTENDANT"`
	Name      string `json:"name" validate:"required"`
	IDNumber  string `json:"idNumber" validate:"required"`
	Email     string `json:"email,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
}

// EmployeeResponse empleado serializado: valets y attendants en una sola
// lista homogénea, distinguidos por Type.
type EmployeeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
	Type     string `json:"type"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}
