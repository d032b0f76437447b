package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Ciclo de vida del registro de parqueo.
	ErrAlreadyInCustody  = errors.New("el vehículo ya tiene un check-in activo")
	ErrAlreadyCheckedOut = errors.New("el vehículo ya fue entregado")
	ErrPaymentRequired   = errors.New("el registro no tiene pagos asociados")
	ErrInvalidTimestamp  = errors.New("la fecha de salida es anterior al check-in")

	// Planes y facturación de empresas.
	ErrNoActivePlan = errors.New("la empresa no tiene un plan activo")
)
