package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
	"github.com/jhoicas/taller-erp/internal/domain/repository"
	"github.com/jhoicas/taller-erp/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de empresa y login.
type AuthUseCase struct {
	workerRepo  repository.WorkerRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(workerRepo repository.WorkerRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{workerRepo: workerRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// RegisterCompany crea la empresa (plan free) junto con su trabajador
// administrador. El admin fundador no cuenta contra el cupo del plan en el
// alta porque el cupo free admite al menos uno.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*entity.Company, *entity.Worker, error) {
	if in.CompanyName == "" || in.AdminName == "" || in.AdminEmail == "" || in.Password == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		TaxID:     in.TaxID,
		Plan:      entity.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, nil, err
	}
	admin := &entity.Worker{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Name:         in.AdminName,
		Role:         entity.RoleAdmin,
		Status:       entity.WorkerStatusActive,
		Email:        in.AdminEmail,
		PasswordHash: string(hash),
		JoinedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.workerRepo.Create(ctx, admin); err != nil {
		return nil, nil, err
	}
	return company, admin, nil
}

// Login verifica email/password, genera JWT y retorna token + rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	worker, err := uc.workerRepo.GetByEmail(ctx, in.CompanyID, in.Email)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrWorkerNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if worker.Status != entity.WorkerStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, worker.ID, worker.CompanyID, worker.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Role: worker.Role}, nil
}
