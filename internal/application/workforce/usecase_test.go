package workforce_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/workforce"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

const (
	companyID = "company-1"
	adminID   = "worker-admin"
)

type memWorkerRepo struct {
	workers map[string]*entity.Worker
}

func newMemWorkerRepo() *memWorkerRepo {
	return &memWorkerRepo{workers: map[string]*entity.Worker{}}
}

func (r *memWorkerRepo) Create(_ context.Context, w *entity.Worker) error {
	r.workers[w.ID] = w
	return nil
}
func (r *memWorkerRepo) GetByID(_ context.Context, id string) (*entity.Worker, error) {
	return r.workers[id], nil
}
func (r *memWorkerRepo) GetByEmail(_ context.Context, companyID, email string) (*entity.Worker, error) {
	for _, w := range r.workers {
		if w.CompanyID == companyID && w.Email == email {
			return w, nil
		}
	}
	return nil, nil
}
func (r *memWorkerRepo) CountActiveByCompany(_ context.Context, companyID string) (int, error) {
	n := 0
	for _, w := range r.workers {
		if w.CompanyID == companyID && w.Status == entity.WorkerStatusActive {
			n++
		}
	}
	return n, nil
}
func (r *memWorkerRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Worker, error) {
	var out []*entity.Worker
	for _, w := range r.workers {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}
func (r *memWorkerRepo) Update(_ context.Context, w *entity.Worker) error {
	r.workers[w.ID] = w
	return nil
}

type memCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}
func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *memCompanyRepo) List(context.Context, int, int) ([]*entity.Company, error) {
	return nil, nil
}

type allowGuard struct{}

func (allowGuard) Authorize(context.Context, string, string, string) (bool, error) {
	return true, nil
}

func newFixture(plan string) (*workforce.WorkerUseCase, *memWorkerRepo) {
	workerRepo := newMemWorkerRepo()
	companyRepo := &memCompanyRepo{companies: map[string]*entity.Company{
		companyID: {ID: companyID, Name: "Taller Uno", Plan: plan},
	}}
	gate := workforce.NewPlanGate(companyRepo)
	return workforce.NewWorkerUseCase(allowGuard{}, gate, workerRepo), workerRepo
}

func workerReq(email string) dto.CreateWorkerRequest {
	return dto.CreateWorkerRequest{
		Name:       "Trabajador " + email,
		Role:       entity.RoleWorker,
		Email:      email,
		Password:   "secreto123",
		BaseSalary: decimal.NewFromInt(2000),
	}
}

// TestCreateWorker_HashBcrypt el password nunca se guarda plano.
func TestCreateWorker_HashBcrypt(t *testing.T) {
	uc, repo := newFixture(entity.PlanFree)

	w, err := uc.CreateWorker(context.Background(), companyID, adminID, workerReq("uno@taller.co"))
	require.NoError(t, err)

	stored := repo.workers[w.ID]
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
	assert.Equal(t, entity.WorkerStatusActive, stored.Status)
}

// TestCreateWorker_LimitePlanFree el plan free admite 3 activos; el cuarto
// se rechaza con ErrWorkerLimit.
func TestCreateWorker_LimitePlanFree(t *testing.T) {
	uc, _ := newFixture(entity.PlanFree)

	for i, email := range []string{"a@t.co", "b@t.co", "c@t.co"} {
		_, err := uc.CreateWorker(context.Background(), companyID, adminID, workerReq(email))
		require.NoError(t, err, "alta %d dentro del cupo", i+1)
	}
	_, err := uc.CreateWorker(context.Background(), companyID, adminID, workerReq("d@t.co"))
	assert.ErrorIs(t, err, domain.ErrWorkerLimit)
}

// TestCreateWorker_BajaLiberaCupo desactivar un trabajador libera su lugar
// en el cupo del plan.
func TestCreateWorker_BajaLiberaCupo(t *testing.T) {
	uc, _ := newFixture(entity.PlanFree)

	var last *entity.Worker
	for _, email := range []string{"a@t.co", "b@t.co", "c@t.co"} {
		w, err := uc.CreateWorker(context.Background(), companyID, adminID, workerReq(email))
		require.NoError(t, err)
		last = w
	}
	_, err := uc.DeactivateWorker(context.Background(), companyID, adminID, last.ID)
	require.NoError(t, err)

	_, err = uc.CreateWorker(context.Background(), companyID, adminID, workerReq("d@t.co"))
	assert.NoError(t, err, "la baja libera el cupo")
}

// TestCreateWorker_PremiumSinLimite el plan premium no tiene cupo.
func TestCreateWorker_PremiumSinLimite(t *testing.T) {
	uc, _ := newFixture(entity.PlanPremium)

	for i := 0; i < 20; i++ {
		_, err := uc.CreateWorker(context.Background(), companyID, adminID,
			workerReq(string(rune('a'+i))+"@t.co"))
		require.NoError(t, err)
	}
}

// TestCreateWorker_EmailDuplicado el email es único por empresa.
func TestCreateWorker_EmailDuplicado(t *testing.T) {
	uc, _ := newFixture(entity.PlanStandard)

	_, err := uc.CreateWorker(context.Background(), companyID, adminID, workerReq("uno@t.co"))
	require.NoError(t, err)
	_, err = uc.CreateWorker(context.Background(), companyID, adminID, workerReq("uno@t.co"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// TestCreateWorker_RolInvalido rol fuera del vocabulario.
func TestCreateWorker_RolInvalido(t *testing.T) {
	uc, _ := newFixture(entity.PlanStandard)
	req := workerReq("uno@t.co")
	req.Role = "superuser"
	_, err := uc.CreateWorker(context.Background(), companyID, adminID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestDeactivateWorker_Idempotente desactivar dos veces no es error.
func TestDeactivateWorker_Idempotente(t *testing.T) {
	uc, _ := newFixture(entity.PlanFree)
	w, err := uc.CreateWorker(context.Background(), companyID, adminID, workerReq("uno@t.co"))
	require.NoError(t, err)

	_, err = uc.DeactivateWorker(context.Background(), companyID, adminID, w.ID)
	require.NoError(t, err)
	again, err := uc.DeactivateWorker(context.Background(), companyID, adminID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkerStatusInactive, again.Status)
}
