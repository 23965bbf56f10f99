package repository

import (
	"context"

	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

// WorkerRepository define el puerto de persistencia para Worker.
type WorkerRepository interface {
	Create(ctx context.Context, worker *entity.Worker) error
	GetByID(ctx context.Context, id string) (*entity.Worker, error)
	GetByEmail(ctx context.Context, companyID, email string) (*entity.Worker, error)
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Worker, error)
	Update(ctx context.Context, worker *entity.Worker) error
}
