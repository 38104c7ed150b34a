package inventario

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
)

// CategoriaUnidad clasifica la unidad de medida de un producto para efectos
// de validación de cantidades.
type CategoriaUnidad string

const (
	CategoriaPieza        CategoriaUnidad = "PIEZA"        // solo enteros, mínimo 1
	CategoriaMetro        CategoriaUnidad = "METRO"        // paso 0.1, mínimo 0.1
	CategoriaFraccionaria CategoriaUnidad = "FRACCIONARIA" // paso 0.01, mínimo 0.01
)

var (
	minPieza  = decimal.NewFromInt(1)
	minMetro  = decimal.NewFromFloat(0.1)
	minFracc  = decimal.NewFromFloat(0.01)
	pasoMetro = decimal.NewFromFloat(0.1)
	pasoFracc = decimal.NewFromFloat(0.01)
)

// ClasificarUnidad deriva la categoría desde el código de unidad y el flag de
// fracciones del producto. Un producto que no permite fracciones es PIEZA sin
// importar su código.
func ClasificarUnidad(p *entity.Producto) CategoriaUnidad {
	if !p.PermiteFracciones {
		return CategoriaPieza
	}
	if p.UnidadMedida == entity.UnidadMetro {
		return CategoriaMetro
	}
	return CategoriaFraccionaria
}

// ValidarCantidad valida una cantidad contra la unidad del producto.
// Reglas en orden: enteros para PIEZA, mínimo por categoría, alineación al
// paso de la categoría. El error envuelve ErrCantidadInvalida y describe la
// unidad y el límite violado.
func ValidarCantidad(p *entity.Producto, cantidad decimal.Decimal) error {
	cat := ClasificarUnidad(p)

	if cat == CategoriaPieza && !cantidad.IsInteger() {
		return fmt.Errorf("%w: la unidad %s solo admite cantidades enteras (recibido %s)",
			domain.ErrCantidadInvalida, p.UnidadMedida, cantidad)
	}

	min, paso := minimoYPaso(cat)
	if cantidad.LessThan(min) {
		return fmt.Errorf("%w: la cantidad mínima para %s es %s (recibido %s)",
			domain.ErrCantidadInvalida, p.UnidadMedida, min, cantidad)
	}
	if cat != CategoriaPieza && !cantidad.Mod(paso).IsZero() {
		return fmt.Errorf("%w: la unidad %s admite incrementos de %s (recibido %s)",
			domain.ErrCantidadInvalida, p.UnidadMedida, paso, cantidad)
	}
	return nil
}

// ValidarCantidadDevolucion aplica ValidarCantidad y además exige que la
// cantidad devuelta no exceda la cantidad original vendida/comprada.
func ValidarCantidadDevolucion(p *entity.Producto, cantidad, cantidadOriginal decimal.Decimal) error {
	if err := ValidarCantidad(p, cantidad); err != nil {
		return err
	}
	if cantidad.GreaterThan(cantidadOriginal) {
		return fmt.Errorf("%w: no se puede devolver %s, la cantidad original fue %s",
			domain.ErrCantidadInvalida, cantidad, cantidadOriginal)
	}
	return nil
}

func minimoYPaso(cat CategoriaUnidad) (min, paso decimal.Decimal) {
	switch cat {
	case CategoriaPieza:
		return minPieza, minPieza
	case CategoriaMetro:
		return minMetro, pasoMetro
	default:
		return minFracc, pasoFracc
	}
}
