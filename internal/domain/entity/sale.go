package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de venta: order soporta estructura de envío/impuesto/descuento;
// memo es el recibo simplificado de mostrador (solo montos planos).
const (
	SaleKindOrder = "order"
	SaleKindMemo  = "memo"
)

// Estados del ciclo de vida de una venta.
const (
	SaleStatusPending    = "pending"
	SaleStatusConfirmed  = "confirmed"
	SaleStatusProcessing = "processing"
	SaleStatusShipped    = "shipped"
	SaleStatusDelivered  = "delivered"
	SaleStatusCancelled  = "cancelled"
	SaleStatusReturned   = "returned"
)

// Estados de pago de una venta.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPartial  = "partial"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// PaymentMethodDue es pago diferido: el total queda como deuda del cliente.
const PaymentMethodDue = "due"

// SaleItem es una línea de venta con snapshot del nombre del producto.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	ProductName  string // snapshot al momento de la venta
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	LineDiscount decimal.Decimal
	LineTotal    decimal.Decimal // UnitPrice*Quantity - LineDiscount
}

// Sale representa una orden o memo. Invariantes:
// Total = Subtotal - DiscountAmount + TaxAmount + Shipping;
// PaidAmount + DueAmount = Total.
type Sale struct {
	ID             string
	CompanyID      string
	Number         string // consecutivo legible, único por empresa
	Kind           string // order | memo
	CustomerID     string // opcional (memo de mostrador puede no tener cliente)
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Shipping       decimal.Decimal
	Total          decimal.Decimal
	PaymentMethod  string // cash, card, transfer, due, ...
	PaymentStatus  string
	PaidAmount     decimal.Decimal
	DueAmount      decimal.Decimal
	PaymentRef     string // referencia de la pasarela cuando aplica
	Status         string
	Notes          string
	Items          []*SaleItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
}
