package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/application/ventas"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// VentaHandler maneja ventas y sus devoluciones.
type VentaHandler struct {
	uc *ventas.UseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.UseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Valida todas las líneas y persiste venta + descuento de inventario en una transacción. Stock insuficiente en cualquier línea revierte toda la venta.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVentaRequest  true  "Venta"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SucursalID == "" || len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sucursal_id y detalles son requeridos"})
	}
	sucursalID, ok := ScopeSucursal(c, in.SucursalID)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}

	input := ventas.VentaInput{
		SucursalID: sucursalID,
		ClienteID:  in.ClienteID,
		UsuarioID:  GetUserID(c),
	}
	for _, det := range in.Detalles {
		input.Detalles = append(input.Detalles, ventas.DetalleInput{
			ProductoID:      det.ProductoID,
			Cantidad:        det.Cantidad,
			PrecioUnitario:  det.PrecioUnitario,
			TipoPropietario: entity.TipoPropietario(det.TipoPropietario),
		})
	}

	venta, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return errorTransaccion(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVentaResponse(venta))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	venta, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if venta == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	if _, ok := ScopeSucursal(c, venta.SucursalID); !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}
	return c.JSON(toVentaResponse(venta))
}

// List godoc
// @Summary      Listar ventas de una sucursal
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id  query  string  false  "Sucursal (SUPER_ADMIN puede elegir)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.VentaListResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	sucursalID, ok := ScopeSucursal(c, c.Query("sucursal_id"))
	if !ok || sucursalID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), sucursalID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.VentaListResponse{
		Items: make([]dto.VentaResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, venta := range list {
		out.Items = append(out.Items, toVentaResponse(venta))
	}
	return c.JSON(out)
}

// Devolver godoc
// @Summary      Devolver una línea de venta
// @Description  El cliente devuelve producto: entra stock a la sucursal. La cantidad acumulada devuelta nunca puede exceder la cantidad original de la línea.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CreateDevolucionRequest  true  "Devolución"
// @Success      201   {object}  dto.DevolucionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/devoluciones [post]
func (h *VentaHandler) Devolver(c *fiber.Ctx) error {
	var in dto.CreateDevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DetalleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "detalle_id es requerido"})
	}
	venta, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if venta == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	if _, ok := ScopeSucursal(c, venta.SucursalID); !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}
	devolucion, err := h.uc.DevolverDetalle(c.Context(), c.Params("id"), ventas.DevolucionInput{
		DetalleID:       in.DetalleID,
		Cantidad:        in.Cantidad,
		TipoPropietario: entity.TipoPropietario(in.TipoPropietario),
		Motivo:          in.Motivo,
		UsuarioID:       GetUserID(c),
	})
	if err != nil {
		return errorTransaccion(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDevolucionResponse(devolucion))
}

func toVentaResponse(venta *entity.Venta) dto.VentaResponse {
	out := dto.VentaResponse{
		ID:         venta.ID,
		SucursalID: venta.SucursalID,
		ClienteID:  venta.ClienteID,
		UsuarioID:  venta.UsuarioID,
		Total:      venta.Total,
		Fecha:      venta.Fecha,
		Detalles:   make([]dto.DetalleVentaResponse, 0, len(venta.Detalles)),
	}
	for _, d := range venta.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleVentaResponse{
			ID:              d.ID,
			ProductoID:      d.ProductoID,
			Cantidad:        d.Cantidad,
			PrecioUnitario:  d.PrecioUnitario,
			TipoPropietario: string(d.TipoPropietario),
		})
	}
	return out
}
