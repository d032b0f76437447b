package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/application/plans"
)

// CompanyHandler maneja empresas, sus planes de facturación y facturas.
type CompanyHandler struct {
	companyUC *plans.CompanyUseCase
	planUC    *plans.UseCase
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(companyUC *plans.CompanyUseCase, planUC *plans.UseCase) *CompanyHandler {
	return &CompanyHandler{companyUC: companyUC, planUC: planUC}
}

// Create alta de empresa.
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.companyUC.Create(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve una empresa.
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.companyUC.GetByID(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edición parcial de una empresa.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.companyUC.Update(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List página de empresas visibles.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var in dto.FilterCompaniesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, meta, err := h.companyUC.List(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": out, "meta": meta})
}

// Delete baja lógica de la empresa.
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.companyUC.Delete(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPlan godoc
// @Summary      Asignar o cambiar el plan de facturación
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.SetPlanRequest  true  "forma del plan y parámetros"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/plan [put]
func (h *CompanyHandler) SetPlan(c *fiber.Ctx) error {
	var in dto.SetPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.planUC.SetPlan(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ActivePlan plan vigente de la empresa.
func (h *CompanyHandler) ActivePlan(c *fiber.Ctx) error {
	out, err := h.planUC.ActivePlan(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPlans historial de versiones de plan.
func (h *CompanyHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.planUC.ListPlans(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerateInvoice godoc
// @Summary      Generar la factura del período
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.GenerateInvoiceRequest  true  "período y modo de validación"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/invoices [post]
func (h *CompanyHandler) GenerateInvoice(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.planUC.GenerateInvoice(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateInvoiceStatus avanza el estado de una factura del plan.
func (h *CompanyHandler) UpdateInvoiceStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.planUC.UpdateInvoiceStatus(GetActor(c), c.Params("planId"), c.Params("invoiceId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListInvoices facturas emitidas contra una versión de plan.
func (h *CompanyHandler) ListInvoices(c *fiber.Ctx) error {
	out, err := h.planUC.ListInvoices(GetActor(c), c.Params("planId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
