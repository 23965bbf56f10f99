package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/pkg/config"
)

var _ ports.PaymentProcessor = (*RazorpayProcessor)(nil)

// RazorpayProcessor implementa la pasarela de pago con Razorpay. La venta
// invoca Charge ANTES de cualquier escritura; si la pasarela rechaza, la
// venta se aborta completa.
type RazorpayProcessor struct {
	client *razorpay.Client
}

// NewRazorpayProcessor construye el procesador. Con credenciales vacías
// retorna nil: el composition root cae al procesador noop de desarrollo.
func NewRazorpayProcessor(cfg config.RazorpayConfig) *RazorpayProcessor {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil
	}
	return &RazorpayProcessor{client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret)}
}

// Charge crea una orden en Razorpay por el monto total y retorna su ID como
// referencia. Razorpay trabaja en unidades menores (paise): monto * 100.
func (p *RazorpayProcessor) Charge(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Join(domain.ErrTimeout, err)
	}
	amountMinor := amount.Mul(decimal.NewFromInt(100)).IntPart()
	orderData := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  fmt.Sprintf("rcpt_%d", time.Now().UnixNano()),
		"notes":    metadata,
	}
	order, err := p.client.Order.Create(orderData, nil)
	if err != nil {
		return "", fmt.Errorf("crear orden razorpay: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("respuesta razorpay sin id de orden")
	}
	return orderID, nil
}

// NoopProcessor pasarela de desarrollo: acepta todo cobro y genera una
// referencia local. Nunca usar en producción.
type NoopProcessor struct{}

// Charge referencia sintética, siempre exitosa.
func (NoopProcessor) Charge(_ context.Context, _ decimal.Decimal, _ string, _ map[string]interface{}) (string, error) {
	return fmt.Sprintf("dev_%d", time.Now().UnixNano()), nil
}
