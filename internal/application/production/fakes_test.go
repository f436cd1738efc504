package production_test

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/manufactura-pro/internal/application/costing"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de los fakes: simula la base de datos.
type memStore struct {
	stocks       map[string]*entity.StockItem // clave companyID|refType|refID
	ledger       []*entity.LedgerEntry
	materials    map[string]*entity.Material
	products     map[string]*entity.Product
	lots         map[string]*entity.ProductionLot
	consumptions []*entity.LotConsumption
	bom          map[string][]*entity.BOMLine // clave productID
	seq          int
}

func newMemStore() *memStore {
	return &memStore{
		stocks:    make(map[string]*entity.StockItem),
		materials: make(map[string]*entity.Material),
		products:  make(map[string]*entity.Product),
		lots:      make(map[string]*entity.ProductionLot),
		bom:       make(map[string][]*entity.BOMLine),
	}
}

func stockKey(companyID, refType, refID string) string {
	return companyID + "|" + refType + "|" + refID
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("id-%04d", s.seq)
}

// snapshot copia profunda del estado, para simular rollback de transacción.
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.seq = s.seq
	for k, v := range s.stocks {
		item := *v
		cp.stocks[k] = &item
	}
	for _, e := range s.ledger {
		entry := *e
		cp.ledger = append(cp.ledger, &entry)
	}
	for k, v := range s.materials {
		m := *v
		cp.materials[k] = &m
	}
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.lots {
		l := *v
		cp.lots[k] = &l
	}
	for _, c := range s.consumptions {
		cons := *c
		cp.consumptions = append(cp.consumptions, &cons)
	}
	for k, lines := range s.bom {
		copied := make([]*entity.BOMLine, 0, len(lines))
		for _, l := range lines {
			line := *l
			copied = append(copied, &line)
		}
		cp.bom[k] = copied
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.stocks = from.stocks
	s.ledger = from.ledger
	s.materials = from.materials
	s.products = from.products
	s.lots = from.lots
	s.consumptions = from.consumptions
	s.bom = from.bom
	s.seq = from.seq
}

// ── StockItemRepository ───────────────────────────────────────────────────────

type memStockRepo struct{ db *memStore }

func (r *memStockRepo) GetByRef(companyID, refType, refID string) (*entity.StockItem, error) {
	if item, ok := r.db.stocks[stockKey(companyID, refType, refID)]; ok {
		cp := *item
		return &cp, nil
	}
	// Igual que el adaptador real: ítem en cero si no existe.
	return &entity.StockItem{CompanyID: companyID, RefType: refType, RefID: refID}, nil
}

func (r *memStockRepo) GetByRefForUpdate(companyID, refType, refID string) (*entity.StockItem, error) {
	return r.GetByRef(companyID, refType, refID)
}

func (r *memStockRepo) Upsert(item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = r.db.nextID()
	}
	cp := *item
	r.db.stocks[stockKey(item.CompanyID, item.RefType, item.RefID)] = &cp
	return nil
}

// ── LedgerRepository ──────────────────────────────────────────────────────────

type memLedgerRepo struct{ db *memStore }

func (r *memLedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = r.db.nextID()
	}
	cp := *entry
	r.db.ledger = append(r.db.ledger, &cp)
	return nil
}

func (r *memLedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	for _, e := range r.db.ledger {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) ListByStockItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.db.ledger {
		if e.StockItemID == stockItemID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListByLot(lotID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.db.ledger {
		if e.LotID == lotID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── MaterialRepository / ProductRepository ────────────────────────────────────

type memMaterialRepo struct{ db *memStore }

func (r *memMaterialRepo) Create(m *entity.Material) error {
	cp := *m
	r.db.materials[m.ID] = &cp
	return nil
}

func (r *memMaterialRepo) GetByID(id string) (*entity.Material, error) {
	if m, ok := r.db.materials[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *memMaterialRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.db.materials {
		if m.CompanyID == companyID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memProductRepo struct{ db *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.db.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.db.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── BOMRepository ─────────────────────────────────────────────────────────────

type memBOMRepo struct{ db *memStore }

func (r *memBOMRepo) ListByProduct(productID string) ([]*entity.BOMLine, error) {
	lines := r.db.bom[productID]
	out := make([]*entity.BOMLine, 0, len(lines))
	for _, l := range lines {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBOMRepo) Replace(productID string, lines []*entity.BOMLine) error {
	copied := make([]*entity.BOMLine, 0, len(lines))
	for _, l := range lines {
		cp := *l
		if cp.ID == "" {
			cp.ID = r.db.nextID()
		}
		copied = append(copied, &cp)
	}
	r.db.bom[productID] = copied
	return nil
}

// ── ProductionLotRepository ───────────────────────────────────────────────────

type memLotRepo struct{ db *memStore }

func (r *memLotRepo) Create(lot *entity.ProductionLot) error {
	cp := *lot
	r.db.lots[lot.ID] = &cp
	return nil
}

func (r *memLotRepo) GetByID(id string) (*entity.ProductionLot, error) {
	if l, ok := r.db.lots[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *memLotRepo) GetByIDForUpdate(id string) (*entity.ProductionLot, error) {
	return r.GetByID(id)
}

func (r *memLotRepo) GetByCode(companyID, productID, lotCode string) (*entity.ProductionLot, error) {
	for _, l := range r.db.lots {
		if l.CompanyID == companyID && l.ProductID == productID && l.LotCode == lotCode {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLotRepo) Update(lot *entity.ProductionLot) error {
	cp := *lot
	r.db.lots[lot.ID] = &cp
	return nil
}

func (r *memLotRepo) ListByCompany(companyID string, status string, limit, offset int) ([]*entity.ProductionLot, error) {
	var out []*entity.ProductionLot
	for _, l := range r.db.lots {
		if l.CompanyID != companyID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

// ── LotConsumptionRepository ──────────────────────────────────────────────────

type memConsumptionRepo struct{ db *memStore }

func (r *memConsumptionRepo) Create(c *entity.LotConsumption) error {
	if c.ID == "" {
		c.ID = r.db.nextID()
	}
	cp := *c
	r.db.consumptions = append(r.db.consumptions, &cp)
	return nil
}

func (r *memConsumptionRepo) ListByLot(lotID string) ([]*entity.LotConsumption, error) {
	var out []*entity.LotConsumption
	for _, c := range r.db.consumptions {
		if c.LotID == lotID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// memTxRunner simula la transacción: toma un snapshot del estado antes de fn
// y lo restaura si fn falla, imitando el rollback real.
type memTxRunner struct{ db *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(repos costing.TxRepos) error) error {
	before := t.db.snapshot()
	err := fn(costing.TxRepos{
		Stock:        &memStockRepo{db: t.db},
		Ledger:       &memLedgerRepo{db: t.db},
		Lots:         &memLotRepo{db: t.db},
		Consumptions: &memConsumptionRepo{db: t.db},
		BOM:          &memBOMRepo{db: t.db},
		Products:     &memProductRepo{db: t.db},
		Materials:    &memMaterialRepo{db: t.db},
	})
	if err != nil {
		t.db.restore(before)
	}
	return err
}
