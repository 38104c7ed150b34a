package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jdrada/retail-backoffice/internal/application/compras"
	"github.com/jdrada/retail-backoffice/internal/application/dto"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// CompraHandler maneja compras a proveedor y sus devoluciones.
type CompraHandler struct {
	uc *compras.UseCase
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc *compras.UseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra a proveedor
// @Description  Valida todas las líneas (cantidad según unidad, tipo de propietario contra la sucursal) y persiste compra + entrada de inventario en una transacción.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompraRequest  true  "Compra"
// @Success      201   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SucursalID == "" || in.ProveedorID == "" || len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sucursal_id, proveedor_id y detalles son requeridos"})
	}
	sucursalID, ok := ScopeSucursal(c, in.SucursalID)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}

	input := compras.CompraInput{
		SucursalID:  sucursalID,
		ProveedorID: in.ProveedorID,
		UsuarioID:   GetUserID(c),
	}
	for _, det := range in.Detalles {
		input.Detalles = append(input.Detalles, compras.DetalleInput{
			ProductoID:      det.ProductoID,
			Cantidad:        det.Cantidad,
			PrecioUnitario:  det.PrecioUnitario,
			TipoPropietario: entity.TipoPropietario(det.TipoPropietario),
		})
	}

	compra, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return errorTransaccion(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCompraResponse(compra))
}

// GetByID godoc
// @Summary      Obtener compra por ID
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.CompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *CompraHandler) GetByID(c *fiber.Ctx) error {
	compra, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if compra == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
	}
	if _, ok := ScopeSucursal(c, compra.SucursalID); !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}
	return c.JSON(toCompraResponse(compra))
}

// List godoc
// @Summary      Listar compras de una sucursal
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id  query  string  false  "Sucursal (SUPER_ADMIN puede elegir)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.CompraListResponse
// @Router       /api/compras [get]
func (h *CompraHandler) List(c *fiber.Ctx) error {
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
	out := dto.CompraListResponse{
		Items: make([]dto.CompraResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, compra := range list {
		out.Items = append(out.Items, toCompraResponse(compra))
	}
	return c.JSON(out)
}

// Devolver godoc
// @Summary      Devolver una línea de compra al proveedor
// @Description  La cantidad acumulada devuelta nunca puede exceder la cantidad original de la línea. Sale stock de la sucursal.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.CreateDevolucionRequest  true  "Devolución"
// @Success      201   {object}  dto.DevolucionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/devoluciones [post]
func (h *CompraHandler) Devolver(c *fiber.Ctx) error {
	var in dto.CreateDevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DetalleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "detalle_id es requerido"})
	}
	compra, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if compra == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
	}
	if _, ok := ScopeSucursal(c, compra.SucursalID); !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}
	devolucion, err := h.uc.DevolverDetalle(c.Context(), c.Params("id"), compras.DevolucionInput{
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

// errorTransaccion mapea los errores de dominio de los flujos transaccionales
// (compras, ventas, devoluciones) a códigos HTTP. Compartido entre handlers.
func errorTransaccion(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrTipoPropietarioInvalido),
		errors.Is(err, domain.ErrCantidadInvalida),
		errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInventarioLookup):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INVENTORY_LOOKUP", Message: err.Error()})
	case errors.Is(err, domain.ErrInventarioEscritura):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INVENTORY_WRITE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toCompraResponse(compra *entity.Compra) dto.CompraResponse {
	out := dto.CompraResponse{
		ID:          compra.ID,
		SucursalID:  compra.SucursalID,
		ProveedorID: compra.ProveedorID,
		UsuarioID:   compra.UsuarioID,
		Total:       compra.Total,
		Fecha:       compra.Fecha,
		Detalles:    make([]dto.DetalleCompraResponse, 0, len(compra.Detalles)),
	}
	for _, d := range compra.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleCompraResponse{
			ID:              d.ID,
			ProductoID:      d.ProductoID,
			Cantidad:        d.Cantidad,
			PrecioUnitario:  d.PrecioUnitario,
			TipoPropietario: string(d.TipoPropietario),
		})
	}
	return out
}

func toDevolucionResponse(d *entity.Devolucion) dto.DevolucionResponse {
	return dto.DevolucionResponse{
		ID:              d.ID,
		Tipo:            d.Tipo,
		DetalleID:       d.DetalleID,
		ProductoID:      d.ProductoID,
		SucursalID:      d.SucursalID,
		TipoPropietario: string(d.TipoPropietario),
		Cantidad:        d.Cantidad,
		Motivo:          d.Motivo,
		Fecha:           d.Fecha,
	}
}
