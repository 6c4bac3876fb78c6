package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xpyme/backoffice-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. InitialQuantity es
// obligatoria para tipos distintos a Servicio; para Servicio se fuerza a 0.
type CreateProductRequest struct {
	Code        *string `json:"code,omitempty"`
	SKU         string  `json:"sku" validate:"required,min=1,max=64"`
	SupplierSKU string  `json:"supplier_sku" validate:"required,min=1,max=64"`
	Name        string  `json:"name" validate:"required,min=1,max=150"`
	ProductType string  `json:"product_type" validate:"required"`
	ShortDesc   string  `json:"short_description"`
	Keywords    string  `json:"keywords"`
	Location    string  `json:"location"`

	InitialQuantity *int   `json:"initial_quantity"`
	UnitMeasure     string `json:"unit_measure" validate:"required"`

	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	SupplierID *string          `json:"supplier_id,omitempty"`

	BrandManufacturer string `json:"brand_manufacturer"`
	ModelManufacturer string `json:"model_manufacturer"`
	CompatibleModels  string `json:"compatible_models"`

	PublicPrice      *decimal.Decimal `json:"public_price,omitempty"`
	OfferPrice       *decimal.Decimal `json:"offer_price,omitempty"`
	OfferStart       *time.Time       `json:"offer_start,omitempty"`
	OfferEnd         *time.Time       `json:"offer_end,omitempty"`
	OnlineVisibility string           `json:"online_visibility"`

	WeightKg *decimal.Decimal `json:"weight_kg,omitempty"`
	LengthMM *int             `json:"length_mm,omitempty"`
	WidthMM  *int             `json:"width_mm,omitempty"`
	HeightMM *int             `json:"height_mm,omitempty"`
}

// UpdateProductRequest entrada para actualizar campos descriptivos y de
// precio. El stock nunca se actualiza por aquí: solo vía movimientos.
type UpdateProductRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	ShortDesc   *string `json:"short_description,omitempty"`
	Keywords    *string `json:"keywords,omitempty"`
	State       *string `json:"state,omitempty"`
	Location    *string `json:"location,omitempty"`
	UnitMeasure *string `json:"unit_measure,omitempty"`

	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	SupplierID *string          `json:"supplier_id,omitempty"`

	BrandManufacturer *string `json:"brand_manufacturer,omitempty"`
	ModelManufacturer *string `json:"model_manufacturer,omitempty"`
	CompatibleModels  *string `json:"compatible_models,omitempty"`

	PublicPrice      *decimal.Decimal `json:"public_price,omitempty"`
	OfferPrice       *decimal.Decimal `json:"offer_price,omitempty"`
	OfferStart       *time.Time       `json:"offer_start,omitempty"`
	OfferEnd         *time.Time       `json:"offer_end,omitempty"`
	OnlineVisibility *string          `json:"online_visibility,omitempty"`

	WeightKg *decimal.Decimal `json:"weight_kg,omitempty"`
	LengthMM *int             `json:"length_mm,omitempty"`
	WidthMM  *int             `json:"width_mm,omitempty"`
	HeightMM *int             `json:"height_mm,omitempty"`
}

// ProductResponse salida de producto. UnitCost se omite según el rol del
// solicitante (ver ProductProjection).
type ProductResponse struct {
	ID          string  `json:"id"`
	Code        *string `json:"code,omitempty"`
	SKU         string  `json:"sku"`
	SupplierSKU string  `json:"supplier_sku"`
	Name        string  `json:"name"`
	ProductType string  `json:"product_type"`
	ShortDesc   string  `json:"short_description"`
	Keywords    string  `json:"keywords,omitempty"`
	State       string  `json:"state"`
	Location    string  `json:"location"`

	CurrentStock int    `json:"current_stock"`
	UnitMeasure  string `json:"unit_measure"`

	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	SupplierID *string          `json:"supplier_id,omitempty"`

	BrandManufacturer string `json:"brand_manufacturer,omitempty"`
	ModelManufacturer string `json:"model_manufacturer,omitempty"`
	CompatibleModels  string `json:"compatible_models,omitempty"`

	PublicPrice      *decimal.Decimal `json:"public_price,omitempty"`
	OfferPrice       *decimal.Decimal `json:"offer_price,omitempty"`
	OfferStart       *time.Time       `json:"offer_start,omitempty"`
	OfferEnd         *time.Time       `json:"offer_end,omitempty"`
	OnlineVisibility string           `json:"online_visibility"`

	WeightKg *decimal.Decimal `json:"weight_kg,omitempty"`
	LengthMM *int             `json:"length_mm,omitempty"`
	WidthMM  *int             `json:"width_mm,omitempty"`
	HeightMM *int             `json:"height_mm,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductListResponse salida de listados/búsqueda.
type ProductListResponse struct {
	Total    int                `json:"total"`
	Products []*ProductResponse `json:"products"`
}

// ProductProjection proyecta la entidad a la respuesta aplicando visibilidad
// por rol: el costo unitario solo lo ven admin e inventarios. La entidad
// siempre carga todos los campos; el filtrado es un asunto de presentación.
func ProductProjection(p *entity.Product, role string) *ProductResponse {
	out := &ProductResponse{
		ID:                p.ID,
		Code:              p.Code,
		SKU:               p.SKU,
		SupplierSKU:       p.SupplierSKU,
		Name:              p.Name,
		ProductType:       p.ProductType,
		ShortDesc:         p.ShortDesc,
		Keywords:          p.Keywords,
		State:             p.State,
		Location:          p.Location,
		CurrentStock:      p.CurrentStock,
		UnitMeasure:       p.UnitMeasure,
		SupplierID:        p.SupplierID,
		BrandManufacturer: p.BrandManufacturer,
		ModelManufacturer: p.ModelManufacturer,
		CompatibleModels:  p.CompatibleModels,
		PublicPrice:       p.PublicPrice,
		OfferPrice:        p.OfferPrice,
		OfferStart:        p.OfferStart,
		OfferEnd:          p.OfferEnd,
		OnlineVisibility:  p.OnlineVisibility,
		WeightKg:          p.WeightKg,
		LengthMM:          p.LengthMM,
		WidthMM:           p.WidthMM,
		HeightMM:          p.HeightMM,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if role == entity.RoleAdmin || role == entity.RoleInventarios {
		out.UnitCost = p.UnitCost
	}
	return out
}
