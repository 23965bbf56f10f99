package entity

import "time"

// Planes de suscripción (limitan trabajadores activos).
const (
	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// Company es el tenant: toda entidad del sistema pertenece exclusivamente
// a una empresa y nunca se comparte entre empresas.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Plan      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
