package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer lleva la cuenta corriente del cliente: total comprado y deuda
// acumulada. Cada venta completada que lo referencia suma TotalPurchases;
// DueAmount solo crece cuando el método de pago es diferido.
type Customer struct {
	ID             string
	CompanyID      string
	Name           string
	Mobile         string
	Address        string
	TaxID          string
	TotalPurchases decimal.Decimal
	DueAmount      decimal.Decimal
	LastPurchaseAt *time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
