package inventario_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/inventario"
)

func productoPieza() *entity.Producto {
	return &entity.Producto{UnidadMedida: entity.UnidadPieza, PermiteFracciones: false}
}

func productoMetro() *entity.Producto {
	return &entity.Producto{UnidadMedida: entity.UnidadMetro, PermiteFracciones: true}
}

func productoKilo() *entity.Producto {
	return &entity.Producto{UnidadMedida: entity.UnidadKilo, PermiteFracciones: true}
}

func qty(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Límites por categoría de unidad.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidarCantidad_CeroYNegativoRechazadosEnTodaCategoria(t *testing.T) {
	productos := map[string]*entity.Producto{
		"pieza": productoPieza(),
		"metro": productoMetro(),
		"kilo":  productoKilo(),
	}
	for nombre, p := range productos {
		for _, c := range []string{"0", "-1", "-0.5"} {
			err := inventario.ValidarCantidad(p, qty(c))
			assert.ErrorIs(t, err, domain.ErrCantidadInvalida,
				"cantidad %s debe rechazarse para %s", c, nombre)
		}
	}
}

func TestValidarCantidad_Pieza(t *testing.T) {
	p := productoPieza()

	assert.NoError(t, inventario.ValidarCantidad(p, qty("1")), "exactamente 1 es válido")
	assert.NoError(t, inventario.ValidarCantidad(p, qty("5")))

	err := inventario.ValidarCantidad(p, qty("3.5"))
	require.Error(t, err, "pieza no admite fracciones")
	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
	assert.Contains(t, err.Error(), entity.UnidadPieza, "el mensaje debe nombrar la unidad")
}

func TestValidarCantidad_Metro(t *testing.T) {
	p := productoMetro()

	assert.NoError(t, inventario.ValidarCantidad(p, qty("0.1")), "0.1 es el mínimo válido")
	assert.NoError(t, inventario.ValidarCantidad(p, qty("2.3")))

	assert.ErrorIs(t, inventario.ValidarCantidad(p, qty("0.05")), domain.ErrCantidadInvalida,
		"0.05 está bajo el mínimo de metro")
	assert.ErrorIs(t, inventario.ValidarCantidad(p, qty("0.15")), domain.ErrCantidadInvalida,
		"0.15 no está alineado al paso 0.1")
}

func TestValidarCantidad_Fraccionaria(t *testing.T) {
	p := productoKilo()

	assert.NoError(t, inventario.ValidarCantidad(p, qty("0.01")), "0.01 es el mínimo válido")
	assert.NoError(t, inventario.ValidarCantidad(p, qty("1.25")))

	assert.ErrorIs(t, inventario.ValidarCantidad(p, qty("0.001")), domain.ErrCantidadInvalida)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones: nunca más de lo vendido/comprado.
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: producto tipo pieza vendido en cantidad 5.
func TestValidarCantidadDevolucion_PiezaContraOriginal(t *testing.T) {
	p := productoPieza()
	original := qty("5")

	assert.NoError(t, inventario.ValidarCantidadDevolucion(p, qty("3"), original),
		"3 unidades enteras <= 5 es válido")
	assert.ErrorIs(t, inventario.ValidarCantidadDevolucion(p, qty("3.5"), original),
		domain.ErrCantidadInvalida, "fracción rechazada para pieza")
	assert.ErrorIs(t, inventario.ValidarCantidadDevolucion(p, qty("6"), original),
		domain.ErrCantidadInvalida, "6 excede la cantidad original de 5")
}

// Determinismo entre flujos: el mismo (producto, cantidad) produce el mismo
// veredicto sin importar cuántas veces ni desde dónde se consulte.
func TestValidarCantidad_Determinista(t *testing.T) {
	p := productoMetro()
	c := qty("0.15")

	err1 := inventario.ValidarCantidad(p, c)
	err2 := inventario.ValidarCantidad(p, c)

	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestClasificarUnidad(t *testing.T) {
	assert.Equal(t, inventario.CategoriaPieza, inventario.ClasificarUnidad(productoPieza()))
	assert.Equal(t, inventario.CategoriaMetro, inventario.ClasificarUnidad(productoMetro()))
	assert.Equal(t, inventario.CategoriaFraccionaria, inventario.ClasificarUnidad(productoKilo()))

	// Un METRO marcado sin fracciones degrada a PIEZA.
	sinFracciones := &entity.Producto{UnidadMedida: entity.UnidadMetro, PermiteFracciones: false}
	assert.Equal(t, inventario.CategoriaPieza, inventario.ClasificarUnidad(sinFracciones))
}
