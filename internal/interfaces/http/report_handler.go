package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/application/reports"
)

// ReportHandler reportes y dashboard.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Revenue ingresos por día dentro de la ventana.
func (h *ReportHandler) Revenue(c *fiber.Ctx) error {
	var in dto.RevenueReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.Revenue(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Vehicles conteos de registros dentro de la ventana.
func (h *ReportHandler) Vehicles(c *fiber.Ctx) error {
	out, err := h.uc.Vehicles(c.Context(), GetActor(c), c.Query("dateFrom"), c.Query("dateTo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard resumen operativo del día.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
