package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/sales"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
	"github.com/jhoicas/taller-erp/pkg/metrics"
)

// SaleHandler maneja ventas: creación, ciclo de vida y devoluciones (protegido).
type SaleHandler struct {
	createUC *sales.CreateSaleUseCase
	uc       *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, uc: uc}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			LineDiscount: it.LineDiscount,
			LineTotal:    it.LineTotal,
		})
	}
	return dto.SaleResponse{
		ID:             s.ID,
		Number:         s.Number,
		Kind:           s.Kind,
		CustomerID:     s.CustomerID,
		Subtotal:       s.Subtotal,
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		Shipping:       s.Shipping,
		Total:          s.Total,
		PaymentMethod:  s.PaymentMethod,
		PaymentStatus:  s.PaymentStatus,
		PaidAmount:     s.PaidAmount,
		DueAmount:      s.DueAmount,
		Status:         s.Status,
		Items:          items,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
	}
}

// Create crea una orden o memo. El header Idempotency-Key deduplica
// reintentos del mismo caller.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.createUC.CreateSale(c.Context(), GetCompanyID(c), GetUserID(c), c.Get("Idempotency-Key"), in)
	if err != nil {
		return respondError(c, err)
	}
	metrics.SalesCreatedTotal.WithLabelValues(sale.Kind).Inc()
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// GetByID obtiene una venta con sus líneas.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// List lista ventas con filtros por cliente, tipo, estado y rango de fechas.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.SaleFilter{
		CustomerID: c.Query("customer_id"),
		Kind:       c.Query("kind"),
		Status:     c.Query("status"),
		Limit:      page.Limit,
		Offset:     page.Offset(),
	}
	var ok bool
	if filter.From, ok = parseDateQuery(c.Query("from")); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	if filter.To, ok = parseDateQuery(c.Query("to")); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	list, err := h.uc.ListSales(c.Context(), GetCompanyID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(out)
}

// UpdateStatus avanza el ciclo de vida de la venta.
// PATCH /api/sales/:id/status
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.UpdateSaleStatus(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// Return devuelve la venta completa: repone inventario y, si hubo pago,
// asienta el reembolso.
// POST /api/sales/:id/return
func (h *SaleHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.ReturnSale(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// parseDateQuery interpreta un query param de fecha YYYY-MM-DD opcional.
func parseDateQuery(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
