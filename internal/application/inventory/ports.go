package inventory

import (
	"context"

	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el insert del movimiento y la
// actualización del saldo cacheado se confirmen (o se reviertan) juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Notifier recibe avisos no-fatales del motor de stock. El core solo emite;
// el formato y el destino del mensaje son responsabilidad del adaptador.
type Notifier interface {
	ZeroStock(ctx context.Context, product *entity.Product)
}

// NopNotifier descarta los avisos. Útil en tests y flujos batch.
type NopNotifier struct{}

func (NopNotifier) ZeroStock(context.Context, *entity.Product) {}
