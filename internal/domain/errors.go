package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrSaleNotFound      = errors.New("venta no encontrada")
	ErrSalaryNotFound    = errors.New("registro de nómina no encontrado")
	ErrWorkerNotFound    = errors.New("trabajador no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPaymentFailed     = errors.New("pago rechazado por la pasarela")
	ErrTimeout           = errors.New("operación expirada")
	ErrWorkerLimit       = errors.New("límite de trabajadores del plan alcanzado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// PartialFailureError indica que una operación multi-entidad quedó a medias:
// el cobro externo ya se aplicó pero la transacción de persistencia falló.
// El job de conciliación usa ChargeRef para compensar (refund) o reanudar.
type PartialFailureError struct {
	Op        string   // operación que falló (ej. "createSale")
	ChargeRef string   // referencia del cobro ya aplicado en la pasarela
	Completed []string // sub-pasos que alcanzaron a completarse
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: fallo parcial (cobro %s ya aplicado): %v", e.Op, e.ChargeRef, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// AsPartialFailure extrae un PartialFailureError de la cadena de errores.
func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return pf, true
	}
	return nil, false
}
