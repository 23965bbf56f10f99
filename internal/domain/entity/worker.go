package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles y estados de un trabajador.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleSalesperson = "salesperson"
	RoleWorker      = "worker"

	WorkerStatusActive   = "active"
	WorkerStatusInactive = "inactive"
)

// Worker es un empleado de la empresa con su configuración de pago.
// BaseSalary es mensual; OvertimeRate es por hora (cero = usar la tarifa
// derivada por defecto del motor de nómina).
type Worker struct {
	ID           string
	CompanyID    string
	Name         string
	Role         string
	Status       string
	Mobile       string
	Email        string
	PasswordHash string
	BaseSalary   decimal.Decimal
	OvertimeRate decimal.Decimal
	JoinedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
