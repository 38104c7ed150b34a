package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jdrada/retail-backoffice/internal/application/analytics"
	"github.com/jdrada/retail-backoffice/internal/application/dto"
)

// DashboardHandler métricas agregadas para el tablero principal.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Métricas del dashboard
// @Description  Ventas agregadas, productos top y stock crítico del rango pedido. Sin fechas: los últimos 30 días. SUPER_ADMIN sin sucursal agrega todas.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id  query  string  false  "Sucursal"
// @Param        desde        query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta        query  string  false  "Fecha final exclusiva (YYYY-MM-DD)"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	sucursalID, ok := ScopeSucursal(c, c.Query("sucursal_id"))
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}

	hasta := time.Now()
	desde := hasta.AddDate(0, 0, -30)
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "desde: formato YYYY-MM-DD"})
		}
		desde = t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "hasta: formato YYYY-MM-DD"})
		}
		hasta = t
	}
	if !desde.Before(hasta) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "desde debe ser anterior a hasta"})
	}

	out, err := h.uc.GetDashboard(c.Context(), sucursalID, desde, hasta)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
