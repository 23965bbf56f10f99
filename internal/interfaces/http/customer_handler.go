package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/internal/application/customers"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// CustomerHandler maneja clientes y su cuenta corriente (protegido).
type CustomerHandler struct {
	uc *customers.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func toCustomerResponse(cu *entity.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:             cu.ID,
		Name:           cu.Name,
		Mobile:         cu.Mobile,
		Address:        cu.Address,
		TaxID:          cu.TaxID,
		TotalPurchases: cu.TotalPurchases,
		DueAmount:      cu.DueAmount,
	}
	if cu.LastPurchaseAt != nil {
		resp.LastPurchaseAt = cu.LastPurchaseAt.Format(time.RFC3339)
	}
	return resp
}

// Create crea un cliente.
// POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.CreateCustomer(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
}

// GetByID obtiene un cliente con su cuenta corriente.
// GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetCustomer(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCustomerResponse(customer))
}

// List lista los clientes de la empresa.
// GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListCustomers(c.Context(), GetCompanyID(c), page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, cu := range list {
		out = append(out, toCustomerResponse(cu))
	}
	return c.JSON(out)
}

// Update edita los datos de contacto; la cuenta corriente solo la mueven
// las ventas.
// PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.UpdateCustomer(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCustomerResponse(customer))
}
