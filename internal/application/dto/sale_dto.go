package dto

import (
	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta.
type SaleItemRequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`    // 0 = usar precio de catálogo
	LineDiscount decimal.Decimal `json:"line_discount"` // descuento plano por línea
}

// CreateSaleRequest crea una orden o memo. Para memo solo se aceptan montos
// planos de descuento/impuesto (sin envío).
type CreateSaleRequest struct {
	Kind           string            `json:"kind"` // order | memo
	CustomerID     string            `json:"customer_id,omitempty"`
	Items          []SaleItemRequest `json:"items"`
	PaymentMethod  string            `json:"payment_method"` // cash, card, transfer, due
	Currency       string            `json:"currency,omitempty"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	Shipping       decimal.Decimal   `json:"shipping"`
	Notes          string            `json:"notes,omitempty"`
}

// UpdateSaleStatusRequest transición de estado del ciclo de vida.
type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
}

// ReturnSaleRequest devolución compensatoria de una venta.
type ReturnSaleRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SaleItemResponse línea en la respuesta.
type SaleItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineDiscount decimal.Decimal `json:"line_discount"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// SaleResponse recibo de la venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	Number         string             `json:"number"`
	Kind           string             `json:"kind"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Shipping       decimal.Decimal    `json:"shipping"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentStatus  string             `json:"payment_status"`
	PaidAmount     decimal.Decimal    `json:"paid_amount"`
	DueAmount      decimal.Decimal    `json:"due_amount"`
	Status         string             `json:"status"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      string             `json:"created_at"`
}
