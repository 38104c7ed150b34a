// Package inventario contiene los servicios de dominio puros del núcleo de
// inventario: resolución del tipo de propietario (PROPIO/CONSIGNACION) y
// validación de cantidades por unidad de medida. Todas las rutas de entrada
// de líneas (compras, ventas y ambas devoluciones) delegan aquí, de modo que
// el veredicto para un mismo (producto, cantidad) es idéntico sin importar
// qué flujo lo consulta.
package inventario

import (
	"fmt"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// ResolverTipoPropietario normaliza el tipo de propietario de una línea contra
// la capacidad de la sucursal.
//
// Reglas:
//   - Sucursal sin consignación: el resultado es siempre PROPIO; una petición
//     explícita de CONSIGNACION se rechaza, nunca se sobreescribe en silencio.
//   - Sucursal con consignación: se usa el valor solicitado, con PROPIO como
//     default cuando no se especifica.
//
// Función pura sobre metadata de sucursal ya obtenida; no toca red ni DB.
func ResolverTipoPropietario(manejaConsignacion bool, solicitado entity.TipoPropietario) (entity.TipoPropietario, error) {
	if solicitado != "" && !solicitado.Valido() {
		return "", fmt.Errorf("%w: %q", domain.ErrTipoPropietarioInvalido, solicitado)
	}
	if !manejaConsignacion {
		if solicitado == entity.PropietarioConsignacion {
			return "", fmt.Errorf("%w: la sucursal no maneja consignación", domain.ErrTipoPropietarioInvalido)
		}
		return entity.PropietarioPropio, nil
	}
	if solicitado == "" {
		return entity.PropietarioPropio, nil
	}
	return solicitado, nil
}
