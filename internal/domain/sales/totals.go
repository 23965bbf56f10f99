package sales

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// LineTotal total de una línea: precioUnitario*cantidad - descuentoLínea.
func LineTotal(unitPrice, quantity, lineDiscount decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity).Sub(lineDiscount)
}

// GrandTotal total de la venta según el invariante:
// total = subtotal - descuento + impuesto + envío.
func GrandTotal(subtotal, discount, tax, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(tax).Add(shipping)
}

// SplitPayment reparte el total entre pagado y adeudado según el método.
// Pago diferido (due): pagado=0, deuda=total, estado pending.
// Cualquier otro método: pagado=total, deuda=0, estado paid.
// Invariante: pagado + deuda = total.
func SplitPayment(method string, total decimal.Decimal) (paid, due decimal.Decimal, status string) {
	if method == entity.PaymentMethodDue {
		return decimal.Zero, total, entity.PaymentStatusPending
	}
	return total, decimal.Zero, entity.PaymentStatusPaid
}
