package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, sku, supplier_sku, name, product_type, short_description, keywords,
	state, location, initial_quantity, stock_actual, unit_measure, unit_cost, supplier_id,
	brand_manufacturer, model_manufacturer, compatible_models,
	public_price, offer_price, offer_start, offer_end, online_visibility,
	weight_kg, length_mm, width_mm, height_mm, created_by, updated_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.SKU, &p.SupplierSKU, &p.Name, &p.ProductType, &p.ShortDesc, &p.Keywords,
		&p.State, &p.Location, &p.InitialQuantity, &p.CurrentStock, &p.UnitMeasure, &p.UnitCost, &p.SupplierID,
		&p.BrandManufacturer, &p.ModelManufacturer, &p.CompatibleModels,
		&p.PublicPrice, &p.OfferPrice, &p.OfferStart, &p.OfferEnd, &p.OnlineVisibility,
		&p.WeightKg, &p.LengthMM, &p.WidthMM, &p.HeightMM, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo. El stock cacheado inicia en 0: solo el
// ledger lo modifica.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.SKU, product.SupplierSKU, product.Name, product.ProductType,
		product.ShortDesc, product.Keywords, product.State, product.Location,
		product.InitialQuantity, product.CurrentStock, product.UnitMeasure, product.UnitCost, product.SupplierID,
		product.BrandManufacturer, product.ModelManufacturer, product.CompatibleModels,
		product.PublicPrice, product.OfferPrice, product.OfferStart, product.OfferEnd, product.OnlineVisibility,
		product.WeightKg, product.LengthMM, product.WidthMM, product.HeightMM,
		product.CreatedBy, product.UpdatedBy, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por su identificador interno.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode busca por código escaneado (coincidencia exacta).
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// GetBySKU busca por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Es el punto
// de serialización de movimientos concurrentes sobre el mismo producto. Si el
// lock no llega dentro del lock_timeout local devuelve ErrContention.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockTimeout(err) {
			return nil, domain.ErrContention
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// UpdateCachedStock escribe el saldo cacheado. Solo el ledger debe llamarlo,
// dentro de la misma transacción que el insert del movimiento.
func (r *ProductRepo) UpdateCachedStock(productID string, newBalance int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_actual = $2, updated_at = now() WHERE id = $1`,
		productID, newBalance,
	)
	if err != nil {
		return fmt.Errorf("update cached stock: %w", err)
	}
	return nil
}

// Update actualiza campos descriptivos, estado y precios. stock_actual queda
// fuera a propósito.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, short_description = $4, keywords = $5,
			state = $6, location = $7, unit_measure = $8, unit_cost = $9, supplier_id = $10,
			brand_manufacturer = $11, model_manufacturer = $12, compatible_models = $13,
			public_price = $14, offer_price = $15, offer_start = $16, offer_end = $17,
			online_visibility = $18, weight_kg = $19, length_mm = $20, width_mm = $21,
			height_mm = $22, updated_by = $23, updated_at = $24
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.ShortDesc, product.Keywords,
		product.State, product.Location, product.UnitMeasure, product.UnitCost, product.SupplierID,
		product.BrandManufacturer, product.ModelManufacturer, product.CompatibleModels,
		product.PublicPrice, product.OfferPrice, product.OfferStart, product.OfferEnd,
		product.OnlineVisibility, product.WeightKg, product.LengthMM, product.WidthMM,
		product.HeightMM, product.UpdatedBy, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Search busca por subcadena en nombre, SKU, SKU de proveedor, código y
// palabras clave; insensible a mayúsculas y acentos (extensión unaccent);
// ordena por nombre. El término llega ya normalizado desde el caso de uso.
func (r *ProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + ` FROM products
		WHERE $1 = ''
			OR unaccent(lower(name)) LIKE '%' || $1 || '%'
			OR lower(sku) LIKE '%' || $1 || '%'
			OR lower(supplier_sku) LIKE '%' || $1 || '%'
			OR lower(coalesce(code, '')) LIKE '%' || $1 || '%'
			OR unaccent(lower(keywords)) LIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), sql, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto; los movimientos caen por cascada (FK).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
