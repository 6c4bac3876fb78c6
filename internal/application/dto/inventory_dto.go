package dto

import (
	"time"

	"github.com/xpyme/backoffice-api/internal/domain/entity"
)

// ApplyMovementRequest body para POST /api/products/{id}/movements.
// Quantity siempre positiva; action decide el signo. negative solo aplica a
// adjust (el signo del ajuste lo decide el caller, sin validación de negocio).
type ApplyMovementRequest struct {
	Action   string  `json:"action"` // deposit | withdraw | adjust
	Quantity int     `json:"quantity"`
	Negative bool    `json:"negative,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    *string   `json:"reason,omitempty"`
	UserID    *string   `json:"user_id,omitempty"`
	IP        *string   `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplyMovementResponse resultado del registro.
type ApplyMovementResponse struct {
	Movement    *MovementResponse `json:"movement"`
	NewBalance  int               `json:"new_balance"`
	ZeroWarning bool              `json:"zero_warning"`
}

// MovementListResponse historial paginado, más reciente primero.
type MovementListResponse struct {
	Total     int                 `json:"total"`
	Movements []*MovementResponse `json:"movements"`
}

// ToMovementResponse convierte la entidad a DTO.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		UserID:    m.UserID,
		IP:        m.IP,
		CreatedAt: m.CreatedAt,
	}
}
