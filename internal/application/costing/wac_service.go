package costing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	domcosting "github.com/tu-usuario/manufactura-pro/internal/domain/costing"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// WACService recalcula el costo promedio ponderado de un ítem de stock.
// Toda mutación de cantidad/valor/costo pasa por ApplyEntry o ApplyConsumption,
// siempre sobre repositorios atados a una transacción (TxRepos) y con la fila
// del ítem bloqueada (GetByRefForUpdate). Cada aplicación escribe exactamente
// un asiento en el libro de inventario.
type WACService struct{}

// NewWACService construye el servicio.
func NewWACService() *WACService {
	return &WACService{}
}

// EntryInput entrada (cantidad positiva) a aplicar sobre un ítem de stock.
type EntryInput struct {
	CompanyID  string
	RefType    string // entity.StockRefMaterial | entity.StockRefProduct
	RefID      string
	Kind       string // INIT | PURCHASE | PRODUCTION_IN | ADJUSTMENT
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	PurchaseID string
	LotID      string
	Date       time.Time
	CreatedBy  string
}

// ConsumptionInput salida (cantidad positiva) a aplicar sobre un ítem de stock.
// El costo unitario es siempre el WAC vigente; no se recalcula en salidas.
type ConsumptionInput struct {
	CompanyID string
	RefType   string
	RefID     string
	Kind      string // CONSUMPTION | ADJUSTMENT
	Quantity  decimal.Decimal
	LotID     string
	Date      time.Time
	CreatedBy string
}

// ApplyEntry aplica una entrada: suma cantidad, suma valor (cantidad*costo)
// y recalcula el costo promedio ponderado. Debe ejecutarse dentro de la
// transacción que aporta los repos.
func (s *WACService) ApplyEntry(repos TxRepos, in EntryInput) (*entity.StockItem, *entity.LedgerEntry, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del ítem para evitar lost updates entre entradas concurrentes
	stock, err := repos.Stock.GetByRefForUpdate(in.CompanyID, in.RefType, in.RefID)
	if err != nil {
		return nil, nil, err
	}

	entryValue := in.Quantity.Mul(in.UnitCost)
	stock.Quantity = stock.Quantity.Add(in.Quantity)
	stock.TotalValue = stock.TotalValue.Add(entryValue)
	stock.UnitCost = domcosting.UnitCostOf(stock.TotalValue, stock.Quantity)
	stock.UpdatedAt = in.Date

	if err := repos.Stock.Upsert(stock); err != nil {
		return nil, nil, err
	}

	ledger := &entity.LedgerEntry{
		StockItemID: stock.ID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		TotalCost:   entryValue,
		PurchaseID:  in.PurchaseID,
		LotID:       in.LotID,
		Date:        in.Date,
		CreatedAt:   in.Date,
		CreatedBy:   in.CreatedBy,
	}
	if err := repos.Ledger.Create(ledger); err != nil {
		return nil, nil, err
	}
	return stock, ledger, nil
}

// ApplyConsumption aplica una salida al WAC vigente: resta cantidad y resta
// valor (cantidad*WAC). El WAC no se recalcula; si la cantidad llega a cero
// se retiene el último costo conocido. Falla con ErrInsufficientStock si la
// cantidad pedida supera la disponible, sin escribir nada.
func (s *WACService) ApplyConsumption(repos TxRepos, in ConsumptionInput) (*entity.StockItem, *entity.LedgerEntry, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	stock, err := repos.Stock.GetByRefForUpdate(in.CompanyID, in.RefType, in.RefID)
	if err != nil {
		return nil, nil, err
	}
	if stock.Quantity.LessThan(in.Quantity) {
		return nil, nil, domain.ErrInsufficientStock
	}

	unitCost := stock.UnitCost
	outValue := in.Quantity.Mul(unitCost)
	newQuantity := stock.Quantity.Sub(in.Quantity)
	newValue := stock.TotalValue.Sub(outValue)

	switch {
	case newQuantity.IsZero():
		// Stock agotado: el valor sale completo con la última unidad y el
		// WAC se retiene para que un residuo de redondeo tenga costo definido.
		newValue = decimal.Zero
	case newValue.IsNegative():
		if newValue.Abs().GreaterThan(domcosting.Epsilon) {
			return nil, nil, domain.ErrNegativeStock
		}
		newValue = decimal.Zero
	}

	stock.Quantity = newQuantity
	stock.TotalValue = newValue
	stock.UpdatedAt = in.Date

	if err := repos.Stock.Upsert(stock); err != nil {
		return nil, nil, err
	}

	ledger := &entity.LedgerEntry{
		StockItemID: stock.ID,
		Kind:        in.Kind,
		Quantity:    in.Quantity.Neg(),
		UnitCost:    unitCost,
		TotalCost:   outValue.Neg(),
		LotID:       in.LotID,
		Date:        in.Date,
		CreatedAt:   in.Date,
		CreatedBy:   in.CreatedBy,
	}
	if err := repos.Ledger.Create(ledger); err != nil {
		return nil, nil, err
	}
	return stock, ledger, nil
}
