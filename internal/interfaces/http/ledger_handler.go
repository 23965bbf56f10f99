package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/finance"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
)

// LedgerHandler expone el libro financiero en solo lectura (protegido).
type LedgerHandler struct {
	uc *finance.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *finance.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// List lista los asientos financieros de la empresa con filtros por tipo,
// referencia y rango de fechas.
// GET /api/ledger
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.LedgerFilter{
		Type:          c.Query("type"),
		ReferenceType: c.Query("reference_type"),
		ReferenceID:   c.Query("reference_id"),
		Limit:         page.Limit,
		Offset:        page.Offset(),
	}
	var ok bool
	if filter.From, ok = parseDateQuery(c.Query("from")); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	if filter.To, ok = parseDateQuery(c.Query("to")); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	list, err := h.uc.ListEntries(c.Context(), GetCompanyID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(list))
	for _, e := range list {
		out = append(out, fiber.Map{
			"id":             e.ID,
			"type":           e.Type,
			"amount":         e.Amount,
			"description":    e.Description,
			"reference_type": e.ReferenceType,
			"reference_id":   e.ReferenceID,
			"payment_method": e.PaymentMethod,
			"created_at":     e.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}
