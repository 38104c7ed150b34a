package inventario

import (
	"context"

	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de DB.
type TxRepos struct {
	Compras      repository.CompraRepository
	Ventas       repository.VentaRepository
	Devoluciones repository.DevolucionRepository
	Inventario   repository.InventarioRepository
}

// TxRunner ejecuta una función dentro de una transacción de DB, pasando
// repositorios atados a esa tx. Garantiza que el documento (compra, venta,
// devolución) y su efecto en inventario se confirmen o reviertan juntos: el
// upsert de inventario se emite estrictamente después de que el documento
// padre haya sido persistido, y un fallo en cualquiera aborta ambos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
