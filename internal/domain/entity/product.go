package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-empresa).
// StockQuantity es el contador materializado; solo se muta vía movimientos
// de inventario (invariante: nunca negativo). Una vez referenciado por una
// venta se desactiva con DeletedAt (soft delete), nunca se borra.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo
	StockQuantity decimal.Decimal
	MinStock      decimal.Decimal // punto de reorden
	MaxStock      decimal.Decimal
	UnitMeasure   string
	Location      string // ubicación física actual (bodega/estante)
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
