package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/application/reportes"
	"github.com/jdrada/retail-backoffice/internal/domain"
)

// ReporteHandler genera reportes descargables.
type ReporteHandler struct {
	uc *reportes.UseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reportes.UseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// InventarioPDF godoc
// @Summary      Descargar reporte de inventario en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        sucursal_id    query  string  true   "Sucursal"
// @Param        solo_criticos  query  bool    false  "Solo registros críticos"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/inventario.pdf [get]
func (h *ReporteHandler) InventarioPDF(c *fiber.Ctx) error {
	sucursalID, ok := ScopeSucursal(c, c.Query("sucursal_id"))
	if !ok || sucursalID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}

	pdfBytes, filename, err := h.uc.InventarioPDF(c.Context(), sucursalID, c.QueryBool("solo_criticos"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
