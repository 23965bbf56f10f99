package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/workforce"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// WorkerHandler maneja la plantilla de trabajadores (protegido, solo admin).
type WorkerHandler struct {
	uc *workforce.WorkerUseCase
}

// NewWorkerHandler construye el handler.
func NewWorkerHandler(uc *workforce.WorkerUseCase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

func toWorkerResponse(w *entity.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{
		ID:           w.ID,
		Name:         w.Name,
		Role:         w.Role,
		Status:       w.Status,
		Mobile:       w.Mobile,
		Email:        w.Email,
		BaseSalary:   w.BaseSalary,
		OvertimeRate: w.OvertimeRate,
	}
}

// Create da de alta un trabajador, sujeto al cupo del plan.
// POST /api/workers
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	worker, err := h.uc.CreateWorker(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWorkerResponse(worker))
}

// GetByID obtiene un trabajador.
// GET /api/workers/:id
func (h *WorkerHandler) GetByID(c *fiber.Ctx) error {
	worker, err := h.uc.GetWorker(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toWorkerResponse(worker))
}

// List lista los trabajadores de la empresa.
// GET /api/workers
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListWorkers(c.Context(), GetCompanyID(c), page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.WorkerResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWorkerResponse(w))
	}
	return c.JSON(out)
}

// Deactivate da de baja un trabajador (libera cupo del plan). Idempotente.
// DELETE /api/workers/:id
func (h *WorkerHandler) Deactivate(c *fiber.Ctx) error {
	worker, err := h.uc.DeactivateWorker(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toWorkerResponse(worker))
}

// UpdatePay cambia salario base y tarifa de hora extra.
// PATCH /api/workers/:id/pay
func (h *WorkerHandler) UpdatePay(c *fiber.Ctx) error {
	var in dto.UpdateWorkerPayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	worker, err := h.uc.UpdateWorkerPay(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toWorkerResponse(worker))
}
