package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/valet-pro/internal/application/custody"
	"github.com/tu-usuario/valet-pro/internal/application/dto"
)

// VehicleHandler maneja el ciclo de custodia: check-in, checkout y consultas.
type VehicleHandler struct {
	uc *custody.UseCase
}

// NewVehicleHandler construye el handler de custodia.
func NewVehicleHandler(uc *custody.UseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// Register godoc
// @Summary      Check-in de un vehículo
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterVehicleRequest  true  "placa, empresa y pistas de identidad del dueño"
// @Success      201   {object}  dto.RegisterVehicleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehicles/register [post]
func (h *VehicleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Plate == "" || in.CompanyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "plate y companyId son requeridos"})
	}
	out, err := h.uc.CheckIn(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Checkout godoc
// @Summary      Entrega del vehículo
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.CheckoutVehicleRequest  true  "valet de entrega y notas"
// @Success      200   {object}  dto.ParkingRecordResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id}/checkout [post]
func (h *VehicleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Checkout(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve un registro con sus pagos.
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List página de registros con conteos por estado.
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	var in dto.FilterVehiclesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.List(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Mine registros abiertos del usuario autenticado (vista del cliente).
func (h *VehicleHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.ActiveByOwner(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OpenByValet registros activos recibidos por el valet con esa cédula.
func (h *VehicleHandler) OpenByValet(c *fiber.Ctx) error {
	out, err := h.uc.OpenByValet(GetActor(c), c.Params("idNumber"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListValets catálogo de valets.
func (h *VehicleHandler) ListValets(c *fiber.Ctx) error {
	out, err := h.uc.ListValets(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
