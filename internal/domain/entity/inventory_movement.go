package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (value object conceptual).
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeTransfer   = "transfer"   // cambio de ubicación, no altera el total
	MovementTypeAdjustment = "adjustment" // fija el contador a un valor absoluto
	MovementTypeReturn     = "return"     // devolución (reingresa stock)
)

// InventoryMovement es un registro inmutable del libro de inventario.
// Invariante: QuantityAfter = QuantityBefore + delta firmado según Type,
// y el QuantityAfter del movimiento más reciente de un producto debe
// coincidir con su contador actual (invariante de conciliación).
type InventoryMovement struct {
	ID             string
	CompanyID      string
	ProductID      string
	Type           string
	Quantity       decimal.Decimal // magnitud solicitada (siempre >= 0)
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Reason         string
	SaleID         string // referencia a la venta que lo originó (vacío si manual)
	FromLocation   string // solo transfer
	ToLocation     string // solo transfer
	CreatedAt      time.Time
	CreatedBy      string // UserID
}
