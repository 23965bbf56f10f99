package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest ajuste manual de stock (in, out, adjustment, return).
type AdjustStockRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"` // magnitud; adjustment = valor absoluto final
	Reason    string          `json:"reason"`
}

// TransferStockRequest movimiento de ubicación (no altera el total).
type TransferStockRequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Reason       string          `json:"reason,omitempty"`
}

// MovementResponse movimiento registrado más el contador resultante.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason,omitempty"`
	SaleID         string          `json:"sale_id,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// ReconcileResponse verificación del invariante de conciliación: el
// QuantityAfter del último movimiento debe igualar el contador del producto.
type ReconcileResponse struct {
	ProductID      string          `json:"product_id"`
	StockQuantity  decimal.Decimal `json:"stock_quantity"`
	LedgerQuantity decimal.Decimal `json:"ledger_quantity"`
	Consistent     bool            `json:"consistent"`
}
