package repository

import "github.com/xpyme/backoffice-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el ledger de
// movimientos. Append-only: no hay update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct recalcula el saldo desde el log completo (detección de drift).
	SumByProduct(productID string) (int, error)
}
