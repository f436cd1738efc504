package costing

import "github.com/shopspring/decimal"

// Epsilon tolerancia de redondeo para conciliar TotalValue vs Quantity*UnitCost.
var Epsilon = decimal.New(1, -6) // 0.000001

// AverageCost implementa la fórmula de costo promedio ponderado para una entrada:
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func AverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// UnitCostOf calcula el costo unitario valor/cantidad. Con cantidad cero
// devuelve cero: el caso especial lo maneja el servicio WAC reteniendo el
// último costo conocido.
func UnitCostOf(totalValue, quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalValue.Div(quantity)
}

// Reconciles verifica la invariante TotalValue ≈ Quantity*UnitCost dentro
// de la tolerancia Epsilon.
func Reconciles(totalValue, quantity, unitCost decimal.Decimal) bool {
	diff := totalValue.Sub(quantity.Mul(unitCost)).Abs()
	return diff.LessThanOrEqual(Epsilon)
}
