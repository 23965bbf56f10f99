package sales

import "github.com/jhoicas/taller-erp/internal/domain/entity"

// transitions define el grafo (DAG) de transiciones legales de estado de una
// venta. cancelled, returned y delivered son terminales; delivered admite
// únicamente el paso a returned vía la operación explícita de devolución.
// Cambiar de estado NO toca inventario: revertir stock en una cancelación es
// una operación compensatoria aparte.
var transitions = map[string][]string{
	entity.SaleStatusPending:    {entity.SaleStatusConfirmed, entity.SaleStatusCancelled},
	entity.SaleStatusConfirmed:  {entity.SaleStatusProcessing, entity.SaleStatusDelivered, entity.SaleStatusCancelled},
	entity.SaleStatusProcessing: {entity.SaleStatusShipped, entity.SaleStatusCancelled},
	entity.SaleStatusShipped:    {entity.SaleStatusDelivered, entity.SaleStatusReturned},
	entity.SaleStatusDelivered:  {entity.SaleStatusReturned},
	entity.SaleStatusCancelled:  {},
	entity.SaleStatusReturned:   {},
}

// CanTransition indica si el paso from -> to es legal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones de flujo normal.
func IsTerminal(status string) bool {
	switch status {
	case entity.SaleStatusCancelled, entity.SaleStatusReturned:
		return true
	}
	return false
}

// ValidStatus indica si el string es un estado conocido.
func ValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}
