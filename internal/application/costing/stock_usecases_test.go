package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/manufactura-pro/internal/application/costing"
	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	domcosting "github.com/tu-usuario/manufactura-pro/internal/domain/costing"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

const (
	companyID  = "00000000-0000-0000-0000-00000000000a"
	otherCoID  = "00000000-0000-0000-0000-00000000000b"
	userID     = "00000000-0000-0000-0000-000000000001"
	materialID = "00000000-0000-0000-0000-000000000m01"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// testEnv arma fakes + casos de uso con un material ya en catálogo.
type testEnv struct {
	db         *memStore
	runner     *memTxRunner
	initialize *costing.InitializeStockUseCase
	purchase   *costing.RegisterPurchaseUseCase
	adjustment *costing.RegisterAdjustmentUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newMemStore()
	db.materials[materialID] = &entity.Material{
		ID: materialID, CompanyID: companyID, Code: "MAT-001", Name: "Harina de trigo", UnitMeasure: "kg",
	}
	runner := &memTxRunner{db: db}
	materials := &memMaterialRepo{db: db}
	wac := costing.NewWACService()
	return &testEnv{
		db:         db,
		runner:     runner,
		initialize: costing.NewInitializeStockUseCase(runner, materials, wac),
		purchase:   costing.NewRegisterPurchaseUseCase(runner, materials, wac),
		adjustment: costing.NewRegisterAdjustmentUseCase(runner, materials, wac),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// InitializeStock
// ──────────────────────────────────────────────────────────────────────────────

func TestInitializeStock_CreaItemYAsientoInit(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.initialize.Execute(context.Background(), companyID, userID, dto.InitializeStockRequest{
		MaterialID: materialID,
		Quantity:   d("100"),
		UnitCost:   d("10"),
	})
	require.NoError(t, err)

	assert.True(t, out.Quantity.Equal(d("100")), "cantidad inicial")
	assert.True(t, out.TotalValue.Equal(d("1000")), "valor = cantidad * costo")
	assert.True(t, out.UnitCost.Equal(d("10")), "WAC inicial = costo declarado")

	require.Len(t, env.db.ledger, 1, "un asiento por la inicialización")
	assert.Equal(t, entity.LedgerKindInit, env.db.ledger[0].Kind)
	assert.True(t, env.db.ledger[0].Quantity.Equal(d("100")), "asiento con cantidad positiva")
}

func TestInitializeStock_SegundaVezRechazada(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.initialize.Execute(context.Background(), companyID, userID, dto.InitializeStockRequest{
		MaterialID: materialID, Quantity: d("100"), UnitCost: d("10"),
	})
	require.NoError(t, err)

	_, err = env.initialize.Execute(context.Background(), companyID, userID, dto.InitializeStockRequest{
		MaterialID: materialID, Quantity: d("5"), UnitCost: d("8"),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized,
		"el stock inicial es un evento único; las adiciones posteriores entran por compra")
	assert.Len(t, env.db.ledger, 1, "el intento rechazado no escribe asiento")
}

func TestInitializeStock_ValidaEntrada(t *testing.T) {
	env := newTestEnv(t)
	future := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name string
		in   dto.InitializeStockRequest
	}{
		{"cantidad cero", dto.InitializeStockRequest{MaterialID: materialID, Quantity: d("0"), UnitCost: d("10")}},
		{"cantidad negativa", dto.InitializeStockRequest{MaterialID: materialID, Quantity: d("-5"), UnitCost: d("10")}},
		{"costo cero", dto.InitializeStockRequest{MaterialID: materialID, Quantity: d("5"), UnitCost: d("0")}},
		{"fecha futura", dto.InitializeStockRequest{MaterialID: materialID, Quantity: d("5"), UnitCost: d("10"), Date: &future}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.initialize.Execute(context.Background(), companyID, userID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestInitializeStock_MaterialDeOtraEmpresa(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.initialize.Execute(context.Background(), otherCoID, userID, dto.InitializeStockRequest{
		MaterialID: materialID, Quantity: d("5"), UnitCost: d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInitializeStock_MaterialInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.initialize.Execute(context.Background(), companyID, userID, dto.InitializeStockRequest{
		MaterialID: "no-existe", Quantity: d("5"), UnitCost: d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterPurchase — recalculo de WAC en entradas
// ──────────────────────────────────────────────────────────────────────────────

// Escenario clásico: 100 und a $10 + compra de 50 a $16 → WAC $12.
func TestRegisterPurchase_RecalculaWAC(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.initialize.Execute(context.Background(), companyID, userID, dto.InitializeStockRequest{
		MaterialID: materialID, Quantity: d("100"), UnitCost: d("10"),
	})
	require.NoError(t, err)

	out, err := env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("50"), UnitPrice: d("16"), Supplier: "Molinos SA",
	})
	require.NoError(t, err)

	assert.True(t, out.TotalPrice.Equal(d("800")), "valor de la compra = 50 * 16")
	assert.True(t, out.Stock.Quantity.Equal(d("150")))
	assert.True(t, out.Stock.TotalValue.Equal(d("1800")), "1000 + 800")
	assert.True(t, out.Stock.UnitCost.Equal(d("12")), "WAC = 1800 / 150")

	require.Len(t, env.db.purchases, 1, "la compra queda registrada")
	require.Len(t, env.db.ledger, 2)
	assert.Equal(t, entity.LedgerKindPurchase, env.db.ledger[1].Kind)
	assert.Equal(t, out.PurchaseID, env.db.ledger[1].PurchaseID,
		"el asiento referencia la compra que lo originó")
}

func TestRegisterPurchase_SinInicializarTambienEntra(t *testing.T) {
	// Una compra sobre un material sin stock previo simplemente crea el ítem:
	// la inicialización es opcional, no un prerequisito de compra.
	env := newTestEnv(t)

	out, err := env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("20"), UnitPrice: d("5"),
	})
	require.NoError(t, err)
	assert.True(t, out.Stock.Quantity.Equal(d("20")))
	assert.True(t, out.Stock.UnitCost.Equal(d("5")))
}

func TestRegisterPurchase_ValidaNumeros(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("0"), UnitPrice: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("5"), UnitPrice: d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.db.ledger, "nada se escribe en validaciones fallidas")
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterAdjustment — entradas y salidas con signo
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAdjustment_PositivoRecalculaWAC(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("100"), d("10"))

	cost := d("16")
	out, err := env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("50"), UnitCost: &cost, Reason: "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, out.UnitCost.Equal(d("12")), "entrada de ajuste recalcula WAC como una compra")

	last := env.db.ledger[len(env.db.ledger)-1]
	assert.Equal(t, entity.LedgerKindAdjustment, last.Kind)
}

func TestRegisterAdjustment_NegativoSaleAlWACVigente(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("100"), d("10"))

	out, err := env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("-30"),
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(d("70")))
	assert.True(t, out.TotalValue.Equal(d("700")), "sale al WAC vigente: 30 * 10")
	assert.True(t, out.UnitCost.Equal(d("10")), "el WAC no se recalcula en salidas")

	last := env.db.ledger[len(env.db.ledger)-1]
	assert.True(t, last.Quantity.Equal(d("-30")), "asiento con cantidad negativa")
	assert.True(t, last.TotalCost.Equal(d("-300")))
}

func TestRegisterAdjustment_PositivoSinCostoRechazado(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("100"), d("10"))

	_, err := env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("50"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una entrada necesita costo unitario declarado")
}

func TestRegisterAdjustment_NegativoMayorAlStock(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("10"), d("10"))

	_, err := env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("-11"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback: el estado queda intacto.
	stock := env.db.stocks[stockKey(companyID, entity.StockRefMaterial, materialID)]
	assert.True(t, stock.Quantity.Equal(d("10")))
}

// ──────────────────────────────────────────────────────────────────────────────
// WACService — semántica del promedio ponderado sobre los fakes
// ──────────────────────────────────────────────────────────────────────────────

// Al agotar el stock el valor sale completo y el WAC se retiene para que
// el siguiente movimiento tenga costo de referencia definido.
func TestWAC_StockAgotadoRetieneCosto(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("30"), d("12.5"))

	out, err := env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("-30"),
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.IsZero())
	assert.True(t, out.TotalValue.IsZero(), "sin unidades no queda valor")
	assert.True(t, out.UnitCost.Equal(d("12.5")), "el último WAC conocido se retiene en cero")
}

// Tras agotar y recomprar, el WAC vuelve a ser exactamente el de la recompra.
func TestWAC_RecompraTrasAgotar(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("30"), d("12.5"))

	_, err := env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("-30"),
	})
	require.NoError(t, err)

	out, err := env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("10"), UnitPrice: d("20"),
	})
	require.NoError(t, err)
	assert.True(t, out.Stock.UnitCost.Equal(d("20")),
		"con valor cero, la entrada define el WAC por sí sola")
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación libro ↔ stock
// ──────────────────────────────────────────────────────────────────────────────

// assertLedgerReconciles verifica que la suma con signo de los asientos del
// libro coincida con el estado actual del ítem, y que el ítem cumpla
// TotalValue ≈ Quantity * UnitCost dentro de Epsilon.
func assertLedgerReconciles(t *testing.T, env *testEnv) {
	t.Helper()
	stock := env.db.stocks[stockKey(companyID, entity.StockRefMaterial, materialID)]
	require.NotNil(t, stock, "el ítem debe existir para conciliar")

	qty, value := decimal.Zero, decimal.Zero
	for _, e := range env.db.ledger {
		if e.StockItemID != stock.ID {
			continue
		}
		qty = qty.Add(e.Quantity)
		value = value.Add(e.TotalCost)
	}
	assert.True(t, qty.Equal(stock.Quantity),
		"suma de cantidades del libro = cantidad del ítem (%s vs %s)", qty, stock.Quantity)
	assert.True(t, value.Sub(stock.TotalValue).Abs().LessThanOrEqual(domcosting.Epsilon),
		"suma de valores del libro = valor del ítem (%s vs %s)", value, stock.TotalValue)
	assert.True(t, domcosting.Reconciles(stock.TotalValue, stock.Quantity, stock.UnitCost),
		"el ítem concilia valor vs cantidad*WAC")
}

// El libro es la fuente de reconstrucción del estado: tras cualquier mezcla
// de movimientos, la suma con signo de sus asientos reproduce el ítem.
func TestLedger_ConciliaConElStock(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("100"), d("10"))

	_, err := env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("50"), UnitPrice: d("16"),
	})
	require.NoError(t, err)

	_, err = env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("-30"),
	})
	require.NoError(t, err)

	assertLedgerReconciles(t, env)

	// El WAC resultante coincide con la fórmula de promedio ponderado pura.
	stock := env.db.stocks[stockKey(companyID, entity.StockRefMaterial, materialID)]
	expected := domcosting.AverageCost(d("100"), d("10"), d("50"), d("16"))
	assert.True(t, stock.UnitCost.Equal(expected), "WAC = fórmula ponderada (la salida no lo altera)")
}

func TestLedger_ConciliaTrasAgotarYRecomprar(t *testing.T) {
	env := newTestEnv(t)
	seedStock(t, env, d("30"), d("12.5"))

	_, err := env.adjustment.Execute(context.Background(), companyID, userID, dto.RegisterAdjustmentRequest{
		MaterialID: materialID, Quantity: d("-30"),
	})
	require.NoError(t, err)

	_, err = env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("10"), UnitPrice: d("20"),
	})
	require.NoError(t, err)

	assertLedgerReconciles(t, env)
}

// Dos primeras compras sobre un material nunca almacenado deben sumarse:
// la capa de datos materializa la fila y la bloquea, de modo que la segunda
// transacción lee el resultado de la primera en vez de pisarlo.
func TestRegisterPurchase_PrimerasComprasSeSuman(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("20"), UnitPrice: d("10"),
	})
	require.NoError(t, err)

	out, err := env.purchase.Execute(context.Background(), companyID, userID, dto.RegisterPurchaseRequest{
		MaterialID: materialID, Quantity: d("30"), UnitPrice: d("10"),
	})
	require.NoError(t, err)

	assert.True(t, out.Stock.Quantity.Equal(d("50")), "20 + 30, ninguna compra se pierde")
	assert.True(t, out.Stock.TotalValue.Equal(d("500")))
	assertLedgerReconciles(t, env)
}

// seedStock inicializa el material con la cantidad y costo dados.
func seedStock(t *testing.T, env *testEnv, qty, cost decimal.Decimal) {
	t.Helper()
	_, err := env.initialize.Execute(context.Background(), companyID, userID, dto.InitializeStockRequest{
		MaterialID: materialID, Quantity: qty, UnitCost: cost,
	})
	require.NoError(t, err)
}
