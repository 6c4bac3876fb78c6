package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/xpyme/backoffice-api/internal/application/dto"
	"github.com/xpyme/backoffice-api/internal/application/inventory"
	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

const initialReason = "Alta de producto (inicial)"

// ProductUseCase casos de uso del catálogo de productos. El alta con cantidad
// inicial registra el movimiento IN en la misma transacción que el insert del
// producto, de modo que el invariante saldo == suma(movimientos) se cumple
// desde el primer commit.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	imageRepo   repository.ProductImageRepository
	txRunner    inventory.TxRunner
	ledger      *inventory.Ledger

	maxImageBytes int64
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	imageRepo repository.ProductImageRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	maxImageBytes int64,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:   productRepo,
		movRepo:       movRepo,
		imageRepo:     imageRepo,
		txRunner:      txRunner,
		ledger:        ledger,
		maxImageBytes: maxImageBytes,
	}
}

// Create valida y persiste un producto nuevo. Para tipos distintos a Servicio
// la cantidad inicial es obligatoria y no-negativa; para Servicio se fuerza a
// 0 y no se genera movimiento inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actorID, ip *string) (*entity.Product, error) {
	if in.SKU == "" || in.SupplierSKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidProductType(in.ProductType) || !entity.ValidUnitMeasure(in.UnitMeasure) {
		return nil, domain.ErrInvalidInput
	}

	qty := 0
	if in.ProductType == entity.ProductTypeServicio {
		// Los servicios no manejan stock físico.
		qty = 0
	} else {
		if in.InitialQuantity == nil {
			return nil, domain.ErrInvalidInput
		}
		if *in.InitialQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		qty = *in.InitialQuantity
	}

	visibility := in.OnlineVisibility
	if visibility == "" {
		visibility = entity.VisibilityOculto
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Code:              in.Code,
		SKU:               in.SKU,
		SupplierSKU:       in.SupplierSKU,
		Name:              in.Name,
		ProductType:       in.ProductType,
		ShortDesc:         in.ShortDesc,
		Keywords:          in.Keywords,
		State:             entity.ProductStateDisponible,
		Location:          in.Location,
		InitialQuantity:   qty,
		CurrentStock:      0,
		UnitMeasure:       in.UnitMeasure,
		UnitCost:          in.UnitCost,
		SupplierID:        in.SupplierID,
		BrandManufacturer: in.BrandManufacturer,
		ModelManufacturer: in.ModelManufacturer,
		CompatibleModels:  in.CompatibleModels,
		PublicPrice:       in.PublicPrice,
		OfferPrice:        in.OfferPrice,
		OfferStart:        in.OfferStart,
		OfferEnd:          in.OfferEnd,
		OnlineVisibility:  visibility,
		WeightKg:          in.WeightKg,
		LengthMM:          in.LengthMM,
		WidthMM:           in.WidthMM,
		HeightMM:          in.HeightMM,
		CreatedBy:         actorID,
		UpdatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if qty > 0 {
			reason := initialReason
			res, err := uc.ledger.AppendInTx(movRepo, productRepo, inventory.AppendInput{
				ProductID: product.ID,
				Type:      entity.MovementTypeIN,
				Quantity:  qty,
				Reason:    &reason,
				UserID:    actorID,
				IP:        ip,
			})
			if err != nil {
				return err
			}
			product.CurrentStock = res.NewBalance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por su identificador interno.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(id)
}

// GetByCode busca por código escaneado (coincidencia exacta). Devuelve nil
// cuando el código no existe: el caller decide si redirige al alta.
func (uc *ProductUseCase) GetByCode(code string) (*entity.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.productRepo.GetByCode(code)
}

// Search busca por subcadena (insensible a mayúsculas y acentos) en nombre,
// SKU, SKU de proveedor, código y palabras clave; ordena por nombre.
func (uc *ProductUseCase) Search(query string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.Search(FoldQuery(query), limit, offset)
}

// Update modifica campos descriptivos, de estado y de precio. El stock
// cacheado jamás se toca por esta vía.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest, actorID *string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.State != nil && !entity.ValidProductState(*in.State) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitMeasure != nil && !entity.ValidUnitMeasure(*in.UnitMeasure) {
		return nil, domain.ErrInvalidInput
	}

	if in.Code != nil {
		product.Code = in.Code
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.ShortDesc != nil {
		product.ShortDesc = *in.ShortDesc
	}
	if in.Keywords != nil {
		product.Keywords = *in.Keywords
	}
	if in.State != nil {
		product.State = *in.State
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.UnitCost != nil {
		product.UnitCost = in.UnitCost
	}
	if in.SupplierID != nil {
		product.SupplierID = in.SupplierID
	}
	if in.BrandManufacturer != nil {
		product.BrandManufacturer = *in.BrandManufacturer
	}
	if in.ModelManufacturer != nil {
		product.ModelManufacturer = *in.ModelManufacturer
	}
	if in.CompatibleModels != nil {
		product.CompatibleModels = *in.CompatibleModels
	}
	if in.PublicPrice != nil {
		product.PublicPrice = in.PublicPrice
	}
	if in.OfferPrice != nil {
		product.OfferPrice = in.OfferPrice
	}
	if in.OfferStart != nil {
		product.OfferStart = in.OfferStart
	}
	if in.OfferEnd != nil {
		product.OfferEnd = in.OfferEnd
	}
	if in.OnlineVisibility != nil {
		product.OnlineVisibility = *in.OnlineVisibility
	}
	if in.WeightKg != nil {
		product.WeightKg = in.WeightKg
	}
	if in.LengthMM != nil {
		product.LengthMM = in.LengthMM
	}
	if in.WidthMM != nil {
		product.WidthMM = in.WidthMM
	}
	if in.HeightMM != nil {
		product.HeightMM = in.HeightMM
	}

	product.UpdatedBy = actorID
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListMovements devuelve el historial de un producto, más reciente primero.
func (uc *ProductUseCase) ListMovements(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// VerifyBalance recalcula el saldo desde el log completo y lo compara con el
// cacheado. Una discrepancia indica un bug de pérdida de actualización.
func (uc *ProductUseCase) VerifyBalance(productID string) (cached, recomputed int, err error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, 0, err
	}
	if product == nil {
		return 0, 0, domain.ErrNotFound
	}
	sum, err := uc.movRepo.SumByProduct(productID)
	if err != nil {
		return 0, 0, err
	}
	return product.CurrentStock, sum, nil
}

// RegisterImage guarda la referencia de una imagen subida al storage externo,
// validando el tamaño declarado contra el límite configurado.
func (uc *ProductUseCase) RegisterImage(productID string, in dto.RegisterImageRequest) (*entity.ProductImage, error) {
	if in.URL == "" || in.Sequence <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if uc.maxImageBytes > 0 && in.SizeBytes > uc.maxImageBytes {
		return nil, domain.ErrImageTooLarge
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	img := &entity.ProductImage{
		ID:        uuid.New().String(),
		ProductID: productID,
		Sequence:  in.Sequence,
		URL:       in.URL,
		SizeBytes: in.SizeBytes,
		CreatedAt: time.Now(),
	}
	if err := uc.imageRepo.Create(img); err != nil {
		return nil, err
	}
	return img, nil
}

// ListImages lista las referencias de imágenes de un producto.
func (uc *ProductUseCase) ListImages(productID string) ([]*entity.ProductImage, error) {
	return uc.imageRepo.ListByProduct(productID)
}

// Delete borra físicamente un producto y, por cascada, sus movimientos.
// Reservado a admin; el flujo normal es marcar el estado como Desechado.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// FoldQuery normaliza el término de búsqueda: minúsculas y sin diacríticos,
// para que "cámara" y "camara" encuentren lo mismo.
func FoldQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, q)
	if err != nil {
		return q
	}
	return folded
}
