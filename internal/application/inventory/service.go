package inventory

import (
	"context"

	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
	"github.com/xpyme/backoffice-api/pkg/metrics"
)

// Acciones de alto nivel sobre el stock.
const (
	ActionDeposit  = "deposit"
	ActionWithdraw = "withdraw"
	ActionAdjust   = "adjust"
)

// Motivos por defecto cuando el caller no indica uno.
const (
	reasonDeposit  = "Ingreso manual"
	reasonWithdraw = "Salida manual"
	reasonScan     = "Ingreso por escaneo"
)

// StockService traduce una intención (depósito, retiro, ajuste) en un registro
// del ledger, aplicando las reglas de negocio y emitiendo avisos.
type StockService struct {
	ledger      *Ledger
	productRepo repository.ProductRepository
	notifier    Notifier
}

// NewStockService construye el servicio.
func NewStockService(ledger *Ledger, productRepo repository.ProductRepository, notifier Notifier) *StockService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &StockService{ledger: ledger, productRepo: productRepo, notifier: notifier}
}

// MovementRequest intención de movimiento de un caller (form, API, escaneo).
// Quantity siempre positiva; el signo lo deriva la acción. Para adjust,
// Negative decide el signo (false = positivo).
type MovementRequest struct {
	ProductID string
	Action    string
	Quantity  int
	Negative  bool // solo adjust
	Reason    *string
	UserID    *string
	IP        *string
}

// MovementResult resultado de aplicar un movimiento.
type MovementResult struct {
	Movement    *entity.StockMovement
	NewBalance  int
	ZeroWarning bool // el saldo quedó exactamente en cero
}

// ApplyMovement valida la petición, registra el movimiento vía ledger y, si el
// saldo resultante es exactamente cero, emite el aviso ZeroStock (no fatal).
//
// Un retiro que deje el saldo negativo NO se rechaza: se preserva el
// comportamiento del sistema legado, que nunca valida piso de stock.
func (s *StockService) ApplyMovement(ctx context.Context, req MovementRequest) (*MovementResult, error) {
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var movType string
	var signed int
	var defaultReason string
	switch req.Action {
	case ActionDeposit:
		movType = entity.MovementTypeIN
		signed = req.Quantity
		defaultReason = reasonDeposit
	case ActionWithdraw:
		movType = entity.MovementTypeOUT
		signed = -req.Quantity
		defaultReason = reasonWithdraw
	case ActionAdjust:
		movType = entity.MovementTypeADJ
		signed = req.Quantity
		if req.Negative {
			signed = -req.Quantity
		}
		defaultReason = "Ajuste manual"
	default:
		return nil, domain.ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	reason := req.Reason
	if reason == nil || *reason == "" {
		reason = &defaultReason
	}

	res, err := s.ledger.Append(ctx, AppendInput{
		ProductID: req.ProductID,
		Type:      movType,
		Quantity:  signed,
		Reason:    reason,
		UserID:    req.UserID,
		IP:        req.IP,
	})
	if err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(movType).Inc()

	result := &MovementResult{Movement: res.Movement, NewBalance: res.NewBalance}
	if res.NewBalance == 0 {
		result.ZeroWarning = true
		metrics.ZeroStockWarnings.Inc()
		product.CurrentStock = 0
		s.notifier.ZeroStock(ctx, product)
	}
	return result, nil
}

// DepositOne registra la entrada de una unidad desde el flujo de escaneo.
func (s *StockService) DepositOne(ctx context.Context, productID string, userID, ip *string) (*MovementResult, error) {
	reason := reasonScan
	return s.ApplyMovement(ctx, MovementRequest{
		ProductID: productID,
		Action:    ActionDeposit,
		Quantity:  1,
		Reason:    &reason,
		UserID:    userID,
		IP:        ip,
	})
}
