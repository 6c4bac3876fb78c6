package repository

import "github.com/xpyme/backoffice-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateCachedStock solo debe invocarse dentro de la transacción del ledger,
// nunca de forma independiente.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) y devuelve
	// el saldo vigente. Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateCachedStock(productID string, newBalance int) error
	Update(product *entity.Product) error
	Search(query string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
