package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// CustomerResponse cliente con su cuenta corriente.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Mobile         string          `json:"mobile,omitempty"`
	Address        string          `json:"address,omitempty"`
	TaxID          string          `json:"tax_id,omitempty"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	DueAmount      decimal.Decimal `json:"due_amount"`
	LastPurchaseAt string          `json:"last_purchase_at,omitempty"`
}
