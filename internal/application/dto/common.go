package dto

// PageRequest paginación para listados. Páginas 1-indexadas que se traducen
// a LIMIT/OFFSET en los repositorios.
type PageRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset desplazamiento equivalente para la página actual.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse cuerpo de error HTTP: código estable legible por máquina
// más mensaje humano.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Detalle de fallo parcial (solo PARTIAL_FAILURE): pasos completados y
	// referencia del cobro para conciliación.
	Completed []string `json:"completed,omitempty"`
	ChargeRef string   `json:"charge_ref,omitempty"`
}
