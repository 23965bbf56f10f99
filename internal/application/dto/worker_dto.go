package dto

import "github.com/shopspring/decimal"

// CreateWorkerRequest alta de trabajador (sujeta al límite del plan).
type CreateWorkerRequest struct {
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Mobile       string          `json:"mobile,omitempty"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"` // 0 = tarifa derivada
}

// UpdateWorkerPayRequest cambia la configuración de pago de un trabajador.
type UpdateWorkerPayRequest struct {
	BaseSalary   decimal.Decimal `json:"base_salary"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
}

// WorkerResponse trabajador sin credenciales.
type WorkerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Status       string          `json:"status"`
	Mobile       string          `json:"mobile,omitempty"`
	Email        string          `json:"email"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// RegisterCompanyRequest registra empresa + trabajador administrador.
type RegisterCompanyRequest struct {
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id,omitempty"`
	AdminName   string `json:"admin_name"`
	AdminEmail  string `json:"admin_email"`
	Password    string `json:"password"`
}
