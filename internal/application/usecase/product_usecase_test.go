package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpyme/backoffice-api/internal/application/dto"
	"github.com/xpyme/backoffice-api/internal/application/inventory"
	"github.com/xpyme/backoffice-api/internal/application/usecase"
	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	images    []*entity.ProductImage
	nextMovID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*entity.Product)}
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code != nil && *p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) UpdateCachedStock(productID string, newBalance int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newBalance
	return nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(id string) error { delete(r.s.products, id); return nil }

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.nextMovID++
	m.ID = r.s.nextMovID
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			out = append(out, r.s.movements[i])
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SumByProduct(productID string) (int, error) {
	sum := 0
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

type fakeImageRepo struct{ s *fakeStore }

func (r *fakeImageRepo) Create(img *entity.ProductImage) error {
	r.s.images = append(r.s.images, img)
	return nil
}

func (r *fakeImageRepo) ListByProduct(productID string) ([]*entity.ProductImage, error) {
	var out []*entity.ProductImage
	for _, img := range r.s.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeImageRepo) Delete(id string) error { return nil }

type fakeTx struct{ s *fakeStore }

func (tr *fakeTx) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()
	return fn(&fakeMovementRepo{s: tr.s}, &fakeProductRepo{s: tr.s})
}

func newUseCase(store *fakeStore) *usecase.ProductUseCase {
	tx := &fakeTx{s: store}
	return usecase.NewProductUseCase(
		&fakeProductRepo{s: store},
		&fakeMovementRepo{s: store},
		&fakeImageRepo{s: store},
		tx,
		inventory.NewLedger(tx),
		2*1024*1024,
	)
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Tests de Create
// ──────────────────────────────────────────────────────────────────────────────

// Alta con cantidad inicial 10: saldo 10 y exactamente UN movimiento IN +10.
func TestProductCreate_CantidadInicialGeneraUnMovimiento(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)
	actor := "u1"

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:             "SKU-001",
		SupplierSKU:     "PROV-001",
		Name:            "Filtro de aceite",
		ProductType:     entity.ProductTypeNuevo,
		InitialQuantity: intPtr(10),
		UnitMeasure:     entity.UnitPza,
	}, &actor, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, p.CurrentStock, "el saldo debe ser la cantidad inicial")
	require.Len(t, store.movements, 1, "debe haber exactamente un movimiento")
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 10, mov.Quantity)
	assert.Equal(t, p.ID, mov.ProductID)
	require.NotNil(t, mov.UserID)
	assert.Equal(t, "u1", *mov.UserID)

	// El saldo cacheado coincide con la suma del log desde el primer commit.
	sum, err := (&fakeMovementRepo{s: store}).SumByProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.CurrentStock, sum)
}

// Alta con cantidad inicial 0: sin movimientos.
func TestProductCreate_CantidadCeroSinMovimiento(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:             "SKU-002",
		SupplierSKU:     "PROV-002",
		Name:            "Bujía",
		ProductType:     entity.ProductTypeRepuesto,
		InitialQuantity: intPtr(0),
		UnitMeasure:     entity.UnitPza,
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, p.CurrentStock)
	assert.Empty(t, store.movements)
}

// Los servicios no manejan stock: la cantidad se fuerza a 0 aunque no venga.
func TestProductCreate_ServicioFuerzaCantidadCero(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:         "SRV-001",
		SupplierSKU: "PROV-003",
		Name:        "Instalación a domicilio",
		ProductType: entity.ProductTypeServicio,
		UnitMeasure: entity.UnitHora,
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, p.CurrentStock)
	assert.Equal(t, 0, p.InitialQuantity)
	assert.Empty(t, store.movements, "un servicio nunca genera movimiento inicial")
}

// Cantidad inicial ausente o negativa para producto físico → ErrInvalidInput.
func TestProductCreate_CantidadInicialInvalida(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)
	base := dto.CreateProductRequest{
		SKU:         "SKU-003",
		SupplierSKU: "PROV-004",
		Name:        "Amortiguador",
		ProductType: entity.ProductTypeNuevo,
		UnitMeasure: entity.UnitPza,
	}

	_, err := uc.Create(context.Background(), base, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cantidad inicial debe fallar")

	withNegative := base
	withNegative.InitialQuantity = intPtr(-5)
	_, err = uc.Create(context.Background(), withNegative, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa debe fallar")

	assert.Empty(t, store.products, "nada debe persistirse en un alta inválida")
}

// Campos obligatorios y catálogos cerrados.
func TestProductCreate_ValidaCamposYCatalogos(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin SKU", dto.CreateProductRequest{SupplierSKU: "P", Name: "X", ProductType: "Nuevo", InitialQuantity: intPtr(1), UnitMeasure: "pza"}},
		{"sin nombre", dto.CreateProductRequest{SKU: "S", SupplierSKU: "P", ProductType: "Nuevo", InitialQuantity: intPtr(1), UnitMeasure: "pza"}},
		{"tipo inválido", dto.CreateProductRequest{SKU: "S", SupplierSKU: "P", Name: "X", ProductType: "Usado", InitialQuantity: intPtr(1), UnitMeasure: "pza"}},
		{"unidad inválida", dto.CreateProductRequest{SKU: "S", SupplierSKU: "P", Name: "X", ProductType: "Nuevo", InitialQuantity: intPtr(1), UnitMeasure: "litros"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in, nil, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de consulta y verificación
// ──────────────────────────────────────────────────────────────────────────────

func TestProductGetByCode(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code:            strPtr("7501031311309"),
		SKU:             "SKU-010",
		SupplierSKU:     "PROV-010",
		Name:            "Aceite 5W30",
		ProductType:     entity.ProductTypeNuevo,
		InitialQuantity: intPtr(3),
		UnitMeasure:     entity.UnitPza,
	}, nil, nil)
	require.NoError(t, err)

	found, err := uc.GetByCode(" 7501031311309 ")
	require.NoError(t, err)
	require.NotNil(t, found, "el código con espacios debe normalizarse")
	assert.Equal(t, p.ID, found.ID)

	missing, err := uc.GetByCode("0000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing, "código sin producto devuelve nil, no error")

	_, err = uc.GetByCode("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductVerifyBalance(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:             "SKU-020",
		SupplierSKU:     "PROV-020",
		Name:            "Balata",
		ProductType:     entity.ProductTypeNuevo,
		InitialQuantity: intPtr(7),
		UnitMeasure:     entity.UnitPza,
	}, nil, nil)
	require.NoError(t, err)

	cached, recomputed, err := uc.VerifyBalance(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, cached)
	assert.Equal(t, cached, recomputed, "sin drift tras el alta")

	// Simula un drift: alguien tocó el cache por fuera del ledger.
	store.products[p.ID].CurrentStock = 99
	cached, recomputed, err = uc.VerifyBalance(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, cached)
	assert.Equal(t, 7, recomputed, "el recalculado delata la inconsistencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de imágenes
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRegisterImage_ValidaTamano(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:             "SKU-030",
		SupplierSKU:     "PROV-030",
		Name:            "Radiador",
		ProductType:     entity.ProductTypeNuevo,
		InitialQuantity: intPtr(1),
		UnitMeasure:     entity.UnitPza,
	}, nil, nil)
	require.NoError(t, err)

	img, err := uc.RegisterImage(p.ID, dto.RegisterImageRequest{
		Sequence: 1, URL: "https://cdn.example.com/radiador-1.jpg", SizeBytes: 512 * 1024,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, img.ProductID)

	_, err = uc.RegisterImage(p.ID, dto.RegisterImageRequest{
		Sequence: 2, URL: "https://cdn.example.com/radiador-2.jpg", SizeBytes: 5 * 1024 * 1024,
	})
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)

	imgs, err := uc.ListImages(p.ID)
	require.NoError(t, err)
	assert.Len(t, imgs, 1, "la imagen rechazada no debe registrarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de FoldQuery
// ──────────────────────────────────────────────────────────────────────────────

func TestFoldQuery_NormalizaAcentosYMayusculas(t *testing.T) {
	cases := map[string]string{
		"Cámara":      "camara",
		"  BUJÍA  ":   "bujia",
		"Ñandú":       "nandu",
		"filtro":      "filtro",
		"":            "",
		"ACEITE 5W30": "aceite 5w30",
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.FoldQuery(in), "FoldQuery(%q)", in)
	}
}
