package notify

import (
	"context"

	"github.com/xpyme/backoffice-api/internal/application/inventory"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/pkg/logger"
)

var _ inventory.Notifier = (*LogNotifier)(nil)

// LogNotifier emite los avisos del motor de stock al log estructurado. En un
// despliegue con mensajería el mismo puerto se implementa contra el broker.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// ZeroStock registra el aviso de stock en cero para un producto.
func (n *LogNotifier) ZeroStock(_ context.Context, product *entity.Product) {
	n.log.Warn().
		Str("product_id", product.ID).
		Str("sku", product.SKU).
		Str("name", product.Name).
		Msg("el stock del producto llegó a CERO")
}
