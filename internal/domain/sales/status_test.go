package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/sales"
)

func TestCanTransition_FlujoNormal(t *testing.T) {
	assert.True(t, sales.CanTransition(entity.SaleStatusPending, entity.SaleStatusConfirmed))
	assert.True(t, sales.CanTransition(entity.SaleStatusConfirmed, entity.SaleStatusProcessing))
	assert.True(t, sales.CanTransition(entity.SaleStatusProcessing, entity.SaleStatusShipped))
	assert.True(t, sales.CanTransition(entity.SaleStatusShipped, entity.SaleStatusDelivered))
	// Memo de mostrador: confirmado pasa directo a entregado
	assert.True(t, sales.CanTransition(entity.SaleStatusConfirmed, entity.SaleStatusDelivered))
}

func TestCanTransition_EstadosTerminales(t *testing.T) {
	for _, terminal := range []string{entity.SaleStatusCancelled, entity.SaleStatusReturned} {
		assert.False(t, sales.CanTransition(terminal, entity.SaleStatusPending), "%s no debe salir", terminal)
		assert.False(t, sales.CanTransition(terminal, entity.SaleStatusConfirmed))
		assert.True(t, sales.IsTerminal(terminal))
	}
	// delivered solo admite la devolución explícita
	assert.True(t, sales.CanTransition(entity.SaleStatusDelivered, entity.SaleStatusReturned))
	assert.False(t, sales.CanTransition(entity.SaleStatusDelivered, entity.SaleStatusShipped))
}

func TestCanTransition_SinRetrocesos(t *testing.T) {
	assert.False(t, sales.CanTransition(entity.SaleStatusShipped, entity.SaleStatusPending))
	assert.False(t, sales.CanTransition(entity.SaleStatusDelivered, entity.SaleStatusProcessing))
	assert.False(t, sales.CanTransition(entity.SaleStatusPending, entity.SaleStatusDelivered))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, sales.ValidStatus(entity.SaleStatusPending))
	assert.False(t, sales.ValidStatus("archived"))
}
