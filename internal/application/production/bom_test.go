package production_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/application/production"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// ResolveRequirements — resolución pura de la BOM
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveRequirements_MultiplicaPorCantidad(t *testing.T) {
	lines := []*entity.BOMLine{
		{MaterialID: materialID, QuantityPerUnit: d("2.5"), UnitMeasure: "kg"},
		{MaterialID: materialID2, QuantityPerUnit: d("0.015"), UnitMeasure: "kg"},
	}

	reqs := production.ResolveRequirements(lines, d("10"))
	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].Quantity.Equal(d("25")))
	assert.True(t, reqs[1].Quantity.Equal(d("0.15")), "cantidades fraccionarias exactas con decimal")
}

func TestResolveRequirements_BOMVacia(t *testing.T) {
	reqs := production.ResolveRequirements(nil, d("10"))
	assert.Empty(t, reqs)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpsertBOM
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertBOM_ReemplazaConjuntoCompleto(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bom.Execute(context.Background(), companyID, productID, dto.UpsertBOMRequest{
		Lines: []dto.BOMLineRequest{
			{MaterialID: materialID, QuantityPerUnit: d("2.5"), UnitMeasure: "kg"},
			{MaterialID: materialID2, QuantityPerUnit: d("0.5"), UnitMeasure: "kg"},
		},
	})
	require.NoError(t, err)

	// El reemplazo descarta líneas anteriores: queda solo la nueva.
	out, err := env.bom.Execute(context.Background(), companyID, productID, dto.UpsertBOMRequest{
		Lines: []dto.BOMLineRequest{
			{MaterialID: materialID, QuantityPerUnit: d("3"), UnitMeasure: "kg"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, out.Lines, 1)

	got, err := env.bom.GetBOM(context.Background(), companyID, productID, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].QuantityPerUnit.Equal(d("3")))
	assert.Empty(t, got.Requirements, "sin cantidad no hay requerimientos")
}

func TestUpsertBOM_ValidaLineas(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bom.Execute(context.Background(), companyID, productID, dto.UpsertBOMRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "BOM vacía no reemplaza nada")

	_, err = env.bom.Execute(context.Background(), companyID, productID, dto.UpsertBOMRequest{
		Lines: []dto.BOMLineRequest{{MaterialID: materialID, QuantityPerUnit: d("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad por unidad debe ser positiva")

	_, err = env.bom.Execute(context.Background(), companyID, productID, dto.UpsertBOMRequest{
		Lines: []dto.BOMLineRequest{
			{MaterialID: materialID, QuantityPerUnit: d("1")},
			{MaterialID: materialID, QuantityPerUnit: d("2")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "material repetido en la BOM")
}

func TestGetBOM_ConRequerimientos(t *testing.T) {
	env := newTestEnv(t)
	env.seedBOM(t)

	out, err := env.bom.GetBOM(context.Background(), companyID, productID, d("4"))
	require.NoError(t, err)
	require.Len(t, out.Requirements, 1)
	assert.True(t, out.Requirements[0].Quantity.Equal(d("10")), "2.5 * 4")
}

func TestUpsertBOM_ProductoDeOtraEmpresa(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bom.Execute(context.Background(), otherCoID, productID, dto.UpsertBOMRequest{
		Lines: []dto.BOMLineRequest{{MaterialID: materialID, QuantityPerUnit: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
