package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jdrada/retail-backoffice/internal/application/dto"
	appinv "github.com/jdrada/retail-backoffice/internal/application/inventario"
	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// InventarioHandler expone la consulta y la edición directa de inventario.
// El PUT es un reemplazo completo de cantidad/mínimos, no un incremento.
type InventarioHandler struct {
	reconciliador *appinv.Reconciliador
	consultas     *appinv.ConsultaUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(reconciliador *appinv.Reconciliador, consultas *appinv.ConsultaUseCase) *InventarioHandler {
	return &InventarioHandler{reconciliador: reconciliador, consultas: consultas}
}

// List godoc
// @Summary      Listar inventario por sucursal o por producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id    query  string  false  "Sucursal (obligatoria salvo que se filtre por producto)"
// @Param        producto_id    query  string  false  "Producto (todas las sucursales)"
// @Param        solo_criticos  query  bool    false  "Solo registros críticos"
// @Param        limit          query  int     false  "Límite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.InventarioListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario [get]
func (h *InventarioHandler) List(c *fiber.Ctx) error {
	if productoID := c.Query("producto_id"); productoID != "" {
		items, err := h.consultas.ListByProducto(c.Context(), productoID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(dto.InventarioListResponse{Items: items, Page: dto.PageResponse{Limit: len(items)}})
	}

	sucursalID, ok := ScopeSucursal(c, c.Query("sucursal_id"))
	if !ok || sucursalID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.consultas.ListBySucursal(c.Context(), sucursalID, c.QueryBool("solo_criticos"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar el registro de inventario de una clave
// @Description  Reconcilia el stock de (producto, sucursal, tipo de propietario). Si el registro existe se actualizan solo los campos mutables; si no, se crea. CONSIGNACION se rechaza en sucursales que no la manejan.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertInventarioRequest  true  "Registro a reconciliar"
// @Success      200   {object}  dto.InventarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/inventario [put]
func (h *InventarioHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertInventarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductoID == "" || in.SucursalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id y sucursal_id son requeridos"})
	}
	sucursalID, ok := ScopeSucursal(c, in.SucursalID)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sucursal fuera del alcance del token"})
	}

	registro, err := h.reconciliador.Upsert(c.Context(), appinv.UpsertInput{
		ProductoID:      in.ProductoID,
		SucursalID:      sucursalID,
		TipoPropietario: entity.TipoPropietario(in.TipoPropietario),
		Cantidad:        in.Cantidad,
		StockMinimo:     in.StockMinimo,
		StockMaximo:     in.StockMaximo,
		EsCritico:       in.EsCritico,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTipoPropietarioInvalido), errors.Is(err, domain.ErrCantidadInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
		case errors.Is(err, domain.ErrInventarioLookup):
			// La consulta previa falló: no se sabe si el registro existe, así
			// que no se intenta crear ni actualizar.
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INVENTORY_LOOKUP", Message: err.Error()})
		case errors.Is(err, domain.ErrInventarioEscritura):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INVENTORY_WRITE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(appinv.ToInventarioResponse(registro))
}
