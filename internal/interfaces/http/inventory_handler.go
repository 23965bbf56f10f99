package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/inventory"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// InventoryHandler maneja ajustes de stock y el libro de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.AdjustStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.AdjustStockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		SaleID:         m.SaleID,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

// Adjust aplica un ajuste manual de stock (in, out, adjustment, return).
// POST /api/inventory/adjust
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, _, err := h.uc.AdjustStock(c.Context(), inventory.AdjustInput{
		CompanyID: GetCompanyID(c),
		UserID:    GetUserID(c),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// Transfer mueve stock entre ubicaciones sin alterar el total.
// POST /api/inventory/transfer
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, _, err := h.uc.AdjustStock(c.Context(), inventory.AdjustInput{
		CompanyID:    GetCompanyID(c),
		UserID:       GetUserID(c),
		ProductID:    in.ProductID,
		Type:         entity.MovementTypeTransfer,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// GetStock lee el contador actual de un producto.
// GET /api/inventory/stock/:productID
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.uc.GetStock(c.Context(), GetCompanyID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": c.Params("productID"), "stock_quantity": stock})
}

// Movements lista el libro de inventario; acepta product_id, from y to.
// GET /api/inventory/movements
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	from, ok := parseDateQuery(c.Query("from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, ok := parseDateQuery(c.Query("to"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	list, err := h.uc.ListMovements(c.Context(), GetCompanyID(c), c.Query("product_id"), from, to, page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// Reconcile verifica que el contador del producto coincida con el último
// movimiento del libro.
// GET /api/inventory/reconcile/:productID
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	stock, ledger, consistent, err := h.uc.Reconcile(c.Context(), GetCompanyID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:      c.Params("productID"),
		StockQuantity:  stock,
		LedgerQuantity: ledger,
		Consistent:     consistent,
	})
}
