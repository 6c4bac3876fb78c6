package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada: cantidad almacenada >= 0
	MovementTypeOUT = "OUT" // salida: cantidad almacenada <= 0
	MovementTypeADJ = "ADJ" // ajuste manual: signo a criterio del caller
)

// StockMovement es una entrada inmutable del ledger de stock. El log es
// append-only: no existe operación de update ni delete sobre movimientos.
// La cantidad se guarda ya firmada; el saldo del producto es la suma de todas
// las cantidades de sus movimientos.
type StockMovement struct {
	ID        int64 // secuencia asignada por la base
	ProductID string
	Type      string
	Quantity  int // firmada
	Reason    *string
	UserID    *string // actor, metadato opaco
	IP        *string // origen de la petición, metadato opaco
	CreatedAt time.Time
}

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJ:
		return true
	}
	return false
}

// SignConsistent verifica que el signo de la cantidad sea coherente con el
// tipo: IN no-negativa, OUT no-positiva, ADJ libre.
func SignConsistent(movementType string, quantity int) bool {
	switch movementType {
	case MovementTypeIN:
		return quantity >= 0
	case MovementTypeOUT:
		return quantity <= 0
	case MovementTypeADJ:
		return true
	}
	return false
}
