package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/manufactura-pro/internal/infrastructure/postgres"
)

// scriptedQuerier entrega un conjunto de filas por cada consulta, en orden,
// y registra el SQL ejecutado para verificar la secuencia.
type scriptedQuerier struct {
	rowSets [][][]any
	calls   []string
}

func (q *scriptedQuerier) next() [][]any {
	if len(q.rowSets) == 0 {
		return nil
	}
	rs := q.rowSets[0]
	q.rowSets = q.rowSets[1:]
	return rs
}

func (q *scriptedQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, sql)
	return pgconn.CommandTag{}, nil
}

func (q *scriptedQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, sql)
	return &fakeRows{data: q.next(), idx: -1}, nil
}

func (q *scriptedQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.calls = append(q.calls, sql)
	return &fakeRows{data: q.next(), idx: 0}
}

func zeroStockRow(id string) []any {
	return []any{id, "co-1", "MATERIAL", "m-1",
		decimal.Zero, decimal.Zero, decimal.Zero, time.Now().UTC()}
}

// Sin fila no hay bloqueo: la primera entrada debe materializar la fila en
// cero (ON CONFLICT DO NOTHING) y volver a bloquearla con FOR UPDATE, para
// que dos primeras compras concurrentes se serialicen en vez de pisarse.
func TestGetByRefForUpdate_MaterializaFilaParaBloquear(t *testing.T) {
	// Primer SELECT FOR UPDATE no encuentra fila; el re-SELECT tras el
	// INSERT la devuelve en cero.
	q := &scriptedQuerier{rowSets: [][][]any{
		nil,
		{zeroStockRow("s-nuevo")},
	}}
	repo := postgres.NewStockItemRepository(q)

	item, err := repo.GetByRefForUpdate("co-1", "MATERIAL", "m-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "s-nuevo", item.ID, "la fila materializada queda bloqueada y con ID")
	assert.True(t, item.Quantity.IsZero())

	require.Len(t, q.calls, 3)
	assert.Contains(t, q.calls[0], "FOR UPDATE")
	assert.Contains(t, q.calls[1], "ON CONFLICT")
	assert.Contains(t, q.calls[1], "DO NOTHING")
	assert.Contains(t, q.calls[2], "FOR UPDATE")
}

// Con fila existente no se inserta nada: un solo SELECT FOR UPDATE basta.
func TestGetByRefForUpdate_FilaExistenteNoInserta(t *testing.T) {
	q := &scriptedQuerier{rowSets: [][][]any{
		{[]any{"s-1", "co-1", "MATERIAL", "m-1",
			decimal.NewFromInt(100), decimal.NewFromInt(1000), decimal.NewFromInt(10), time.Now().UTC()}},
	}}
	repo := postgres.NewStockItemRepository(q)

	item, err := repo.GetByRefForUpdate("co-1", "MATERIAL", "m-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", item.ID)
	assert.True(t, decimal.NewFromInt(100).Equal(item.Quantity))
	require.Len(t, q.calls, 1)
}
