package entity

import "time"

// Supplier representa un proveedor (entidad auxiliar referenciada desde Product).
type Supplier struct {
	ID        string
	Name      string // único
	Email     *string
	Phone     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
