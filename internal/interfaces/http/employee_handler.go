package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/application/employees"
)

// EmployeeHandler administración del personal operativo (valets y attendants).
type EmployeeHandler struct {
	uc *employees.UseCase
}

// NewEmployeeHandler construye el handler de empleados.
func NewEmployeeHandler(uc *employees.UseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de un empleado (VALET o ATTENDANT)
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "tipo, nombre y cédula; email para attendants"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listado combinado de valets y staff operativo
// @Tags         employees
// @Produce      json
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Retiro de un empleado
// @Tags         employees
// @Produce      json
// @Param        id    path   string  true  "ID del empleado"
// @Param        type  query  string  true  "VALET o ATTENDANT"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id"), c.Query("type")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "empleado retirado"})
}
