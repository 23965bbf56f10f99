package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro financiero.
const (
	LedgerTypeIncome       = "income"
	LedgerTypeExpense      = "expense"
	LedgerTypeSalary       = "salary"
	LedgerTypeSubscription = "subscription"
	LedgerTypeRefund       = "refund"
)

// Tipos de referencia de un asiento.
const (
	LedgerRefSale   = "sale"
	LedgerRefSalary = "salary"
	LedgerRefManual = "manual"
)

// LedgerEntry es un asiento inmutable del libro financiero (append-only).
// Las correcciones son asientos compensatorios nuevos, nunca ediciones.
type LedgerEntry struct {
	ID            string
	CompanyID     string
	Type          string
	Amount        decimal.Decimal
	Description   string
	ReferenceType string
	ReferenceID   string
	PaymentMethod string
	CreatedAt     time.Time
	CreatedBy     string
}
