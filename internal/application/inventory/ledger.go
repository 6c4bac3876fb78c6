package inventory

import (
	"context"

	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

// Ledger es el log append-only de cambios de stock y el único mutador legal
// del saldo cacheado de un producto. Ningún otro código debe escribir
// stock_actual.
type Ledger struct {
	txRunner TxRunner
}

// NewLedger construye el ledger sobre el runner transaccional.
func NewLedger(txRunner TxRunner) *Ledger {
	return &Ledger{txRunner: txRunner}
}

// AppendInput parámetros de un registro en el ledger. Quantity llega ya
// firmada: positiva para IN, negativa para OUT, cualquier signo para ADJ.
type AppendInput struct {
	ProductID string
	Type      string
	Quantity  int
	Reason    *string
	UserID    *string
	IP        *string
}

// AppendResult movimiento creado y saldo resultante.
type AppendResult struct {
	Movement   *entity.StockMovement
	NewBalance int
}

// Append registra un movimiento dentro de una transacción propia: bloquea la
// fila del producto, inserta el movimiento y actualiza el saldo cacheado de
// forma atómica. Devuelve ErrContention si el lock no se obtiene dentro del
// timeout configurado en la BD.
func (l *Ledger) Append(ctx context.Context, in AppendInput) (*AppendResult, error) {
	var result *AppendResult
	err := l.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		res, err := l.AppendInTx(movRepo, productRepo, in)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AppendInTx registra un movimiento usando los repositorios del caller (misma
// transacción). Lo usa Append y también el alta de producto, que necesita el
// movimiento inicial en la misma tx que el insert del producto.
func (l *Ledger) AppendInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	in AppendInput,
) (*AppendResult, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.SignConsistent(in.Type, in.Quantity) {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del producto: serializa movimientos concurrentes sobre
	// el mismo producto sin bloquear productos distintos.
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	mov := &entity.StockMovement{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    in.UserID,
		IP:        in.IP,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	newBalance := product.CurrentStock + in.Quantity
	if err := productRepo.UpdateCachedStock(in.ProductID, newBalance); err != nil {
		return nil, err
	}
	return &AppendResult{Movement: mov, NewBalance: newBalance}, nil
}
