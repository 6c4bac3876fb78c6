package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpyme/backoffice-api/internal/application/inventory"
	"github.com/xpyme/backoffice-api/internal/domain"
	"github.com/xpyme/backoffice-api/internal/domain/entity"
	"github.com/xpyme/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido: productos + log de movimientos. El mutex lo toma
// el fakeTxRunner, igual que Postgres serializa con el lock de fila.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	nextID    int64
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code != nil && *p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) UpdateCachedStock(productID string, newBalance int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newBalance
	return nil
}

func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *memProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Delete(id string) error { delete(r.s.products, id); return nil }

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.s.nextID++
	m.ID = r.s.nextID
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			out = append(out, r.s.movements[i])
		}
	}
	return out, nil
}

func (r *memMovementRepo) SumByProduct(productID string) (int, error) {
	sum := 0
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

// fakeTxRunner serializa cada Run con el mutex del store: emula la atomicidad
// y el bloqueo de fila de la transacción real.
type fakeTxRunner struct{ s *memStore }

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()
	return fn(&memMovementRepo{s: tr.s}, &memProductRepo{s: tr.s})
}

func testProduct(id string, stock int) *entity.Product {
	return &entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         "Producto " + id,
		ProductType:  entity.ProductTypeNuevo,
		State:        entity.ProductStateDisponible,
		UnitMeasure:  entity.UnitPza,
		CurrentStock: stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ledger
// ──────────────────────────────────────────────────────────────────────────────

// El saldo cacheado debe coincidir siempre con la suma del log.
func TestLedger_SaldoCacheadoIgualASumaDelLog(t *testing.T) {
	store := newMemStore(testProduct("p1", 0))
	ledger := inventory.NewLedger(&fakeTxRunner{s: store})
	ctx := context.Background()

	quantities := []int{10, -3, 5, -7, 2}
	types := []string{"IN", "OUT", "IN", "OUT", "IN"}
	for i, q := range quantities {
		_, err := ledger.Append(ctx, inventory.AppendInput{
			ProductID: "p1", Type: types[i], Quantity: q,
		})
		require.NoError(t, err)
	}

	sum, err := (&memMovementRepo{s: store}).SumByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, 7, sum, "la suma del log debe ser 7")
	assert.Equal(t, sum, store.products["p1"].CurrentStock,
		"el saldo cacheado debe coincidir con la suma del log")
}

// Movimientos concurrentes sobre el mismo producto: ni pérdidas ni duplicados.
func TestLedger_ConcurrenciaSinPerdidas(t *testing.T) {
	store := newMemStore(testProduct("p1", 0))
	ledger := inventory.NewLedger(&fakeTxRunner{s: store})
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := ledger.Append(ctx, inventory.AppendInput{
				ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, store.products["p1"].CurrentStock,
		"50 depósitos concurrentes de 1 deben dejar saldo 50")
	assert.Len(t, store.movements, n, "debe haber exactamente 50 filas en el log")
}

// Tipo desconocido o signo inconsistente → ErrInvalidInput y cero filas.
func TestLedger_ValidaTipoYSigno(t *testing.T) {
	store := newMemStore(testProduct("p1", 5))
	ledger := inventory.NewLedger(&fakeTxRunner{s: store})
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.AppendInput
	}{
		{"tipo desconocido", inventory.AppendInput{ProductID: "p1", Type: "XX", Quantity: 1}},
		{"IN con cantidad negativa", inventory.AppendInput{ProductID: "p1", Type: "IN", Quantity: -1}},
		{"OUT con cantidad positiva", inventory.AppendInput{ProductID: "p1", Type: "OUT", Quantity: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.Append(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	assert.Empty(t, store.movements, "ningún movimiento inválido debe quedar en el log")
	assert.Equal(t, 5, store.products["p1"].CurrentStock, "el saldo no debe cambiar")
}

// Producto inexistente → ErrNotFound.
func TestLedger_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	ledger := inventory.NewLedger(&fakeTxRunner{s: store})

	_, err := ledger.Append(context.Background(), inventory.AppendInput{
		ProductID: "no-existe", Type: entity.MovementTypeIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

// ADJ acepta ambos signos: el caller es responsable del signo.
func TestLedger_AjusteAceptaAmbosSignos(t *testing.T) {
	store := newMemStore(testProduct("p1", 10))
	ledger := inventory.NewLedger(&fakeTxRunner{s: store})
	ctx := context.Background()

	res, err := ledger.Append(ctx, inventory.AppendInput{ProductID: "p1", Type: "ADJ", Quantity: -4})
	require.NoError(t, err)
	assert.Equal(t, 6, res.NewBalance)

	res, err = ledger.Append(ctx, inventory.AppendInput{ProductID: "p1", Type: "ADJ", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 10, res.NewBalance)
}
