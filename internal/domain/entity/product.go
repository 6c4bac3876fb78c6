package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeNuevo    = "Nuevo"
	ProductTypeRepuesto = "Repuesto"
	ProductTypeServicio = "Servicio" // sin stock físico: la cantidad inicial se fuerza a 0
	ProductTypeKit      = "Kit"
)

// Estados del ciclo de vida de un producto. El subsistema de inventario nunca
// borra físicamente; se marca como Desechado.
const (
	ProductStateDisponible = "Disponible"
	ProductStateReservado  = "Reservado"
	ProductStateVendido    = "Vendido"
	ProductStateDanado     = "Dañado"
	ProductStateDesechado  = "Desechado"
)

// Unidades de medida.
const (
	UnitPza  = "pza"
	UnitSet  = "set"
	UnitKg   = "kg"
	UnitHora = "unidad_hora"
)

// Visibilidad del producto en el catálogo online.
const (
	VisibilityOculto   = "Oculto"
	VisibilityCatalogo = "Catálogo"
	VisibilityVenta    = "Venta"
)

// Product representa un producto del inventario. CurrentStock es el saldo
// cacheado: siempre igual a la suma de las cantidades firmadas de sus
// movimientos, y solo se modifica dentro de la transacción del ledger.
type Product struct {
	ID          string  // UUID interno, inmutable
	Code        *string // código escaneado (QR o barra), único cuando existe
	SKU         string  // único
	SupplierSKU string  // SKU del proveedor, único
	Name        string
	ProductType string
	ShortDesc   string
	Keywords    string
	State       string
	Location    string

	InitialQuantity int
	CurrentStock    int
	UnitMeasure     string

	UnitCost   *decimal.Decimal
	SupplierID *string

	BrandManufacturer string
	ModelManufacturer string
	CompatibleModels  string

	PublicPrice      *decimal.Decimal
	OfferPrice       *decimal.Decimal
	OfferStart       *time.Time
	OfferEnd         *time.Time
	OnlineVisibility string

	WeightKg *decimal.Decimal
	LengthMM *int
	WidthMM  *int
	HeightMM *int

	CreatedBy *string
	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsService indica si el producto es de tipo Servicio (sin stock físico).
func (p *Product) IsService() bool {
	return p.ProductType == ProductTypeServicio
}

// ValidProductType valida el tipo contra el catálogo.
func ValidProductType(t string) bool {
	switch t {
	case ProductTypeNuevo, ProductTypeRepuesto, ProductTypeServicio, ProductTypeKit:
		return true
	}
	return false
}

// ValidUnitMeasure valida la unidad de medida.
func ValidUnitMeasure(u string) bool {
	switch u {
	case UnitPza, UnitSet, UnitKg, UnitHora:
		return true
	}
	return false
}

// ValidProductState valida el estado.
func ValidProductState(s string) bool {
	switch s {
	case ProductStateDisponible, ProductStateReservado, ProductStateVendido,
		ProductStateDanado, ProductStateDesechado:
		return true
	}
	return false
}
