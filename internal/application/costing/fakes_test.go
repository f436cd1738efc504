package costing_test

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
	stocks    map[string]*entity.StockItem // clave companyID|refType|refID
	ledger    []*entity.LedgerEntry
	materials map[string]*entity.Material
	purchases map[string]*entity.Purchase
	seq       int
}

func newMemStore() *memStore {
	return &memStore{
		stocks:    make(map[string]*entity.StockItem),
		materials: make(map[string]*entity.Material),
		purchases: make(map[string]*entity.Purchase),
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
	for k, v := range s.purchases {
		p := *v
		cp.purchases[k] = &p
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.stocks = from.stocks
	s.ledger = from.ledger
	s.materials = from.materials
	s.purchases = from.purchases
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
		if e.StockItemID != stockItemID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
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

// ── MaterialRepository ────────────────────────────────────────────────────────

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

// ── PurchaseRepository ────────────────────────────────────────────────────────

type memPurchaseRepo struct{ db *memStore }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	r.db.purchases[p.ID] = &cp
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	if p, ok := r.db.purchases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memPurchaseRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.db.purchases {
		if p.MaterialID == materialID {
			cp := *p
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
		Stock:     &memStockRepo{db: t.db},
		Ledger:    &memLedgerRepo{db: t.db},
		Purchases: &memPurchaseRepo{db: t.db},
		Materials: &memMaterialRepo{db: t.db},
	})
	if err != nil {
		t.db.restore(before)
	}
	return err
}
