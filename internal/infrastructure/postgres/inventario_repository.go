package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jdrada/retail-backoffice/internal/domain"
	"github.com/jdrada/retail-backoffice/internal/domain/entity"
	"github.com/jdrada/retail-backoffice/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación del puerto InventarioRepository sobre PostgreSQL.
// El índice único sobre (producto_id, sucursal_id, tipo_propietario) arbitra las
// carreras del lookup-then-write del reconciliador.
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// Create inserta un registro de inventario nuevo.
func (r *InventarioRepo) Create(reg *entity.RegistroInventario) error {
	query := `
		INSERT INTO inventario (id, producto_id, sucursal_id, tipo_propietario, cantidad, stock_minimo, stock_maximo, es_critico, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		reg.ID, reg.ProductoID, reg.SucursalID, string(reg.TipoPropietario),
		reg.Cantidad, reg.StockMinimo, reg.StockMaximo, reg.EsCritico,
		reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventario: %w", err)
	}
	return nil
}

// Update actualiza cantidad, mínimos/máximos y el flag crítico. La clave
// natural (producto, sucursal, tipo_propietario) nunca se reescribe.
func (r *InventarioRepo) Update(reg *entity.RegistroInventario) error {
	query := `
		UPDATE inventario SET cantidad = $2, stock_minimo = $3, stock_maximo = $4, es_critico = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		reg.ID, reg.Cantidad, reg.StockMinimo, reg.StockMaximo, reg.EsCritico, reg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *InventarioRepo) GetByID(id string) (*entity.RegistroInventario, error) {
	query := `
		SELECT id, producto_id, sucursal_id, tipo_propietario, cantidad, stock_minimo, stock_maximo, es_critico, created_at, updated_at
		FROM inventario WHERE id = $1`
	reg, err := scanRegistro(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return reg, nil
}

// ListByProducto devuelve todos los registros del producto en todas las sucursales.
func (r *InventarioRepo) ListByProducto(productoID string) ([]*entity.RegistroInventario, error) {
	query := `
		SELECT id, producto_id, sucursal_id, tipo_propietario, cantidad, stock_minimo, stock_maximo, es_critico, created_at, updated_at
		FROM inventario WHERE producto_id = $1 ORDER BY sucursal_id, tipo_propietario`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list inventario por producto: %w", err)
	}
	defer rows.Close()
	return collectRegistros(rows)
}

// ListBySucursal devuelve los registros de una sucursal con paginación.
func (r *InventarioRepo) ListBySucursal(sucursalID string, soloCriticos bool, limit, offset int) ([]*entity.RegistroInventario, error) {
	query := `
		SELECT id, producto_id, sucursal_id, tipo_propietario, cantidad, stock_minimo, stock_maximo, es_critico, created_at, updated_at
		FROM inventario WHERE sucursal_id = $1 AND ($2 = false OR es_critico = true)
		ORDER BY updated_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, sucursalID, soloCriticos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventario por sucursal: %w", err)
	}
	defer rows.Close()
	return collectRegistros(rows)
}

func scanRegistro(row pgx.Row) (*entity.RegistroInventario, error) {
	var reg entity.RegistroInventario
	var tipo string
	err := row.Scan(
		&reg.ID, &reg.ProductoID, &reg.SucursalID, &tipo,
		&reg.Cantidad, &reg.StockMinimo, &reg.StockMaximo, &reg.EsCritico,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	reg.TipoPropietario = entity.TipoPropietario(tipo)
	return &reg, nil
}

func collectRegistros(rows pgx.Rows) ([]*entity.RegistroInventario, error) {
	var list []*entity.RegistroInventario
	for rows.Next() {
		reg, err := scanRegistro(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}
