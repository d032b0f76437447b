package plans

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// CompanyUseCase administración de empresas. Las empresas nunca se borran
// físicamente: darlas de baja es un soft delete.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create da de alta una empresa con sus usuarios asociados.
func (uc *CompanyUseCase) Create(actor entity.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !isPlanAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		PhotoURL:  in.PhotoURL,
		IsActive:  true,
		UserIDs:   in.UserIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return dto.ToCompanyResponse(company), nil
}

// GetByID devuelve una empresa visible para el actor.
func (uc *CompanyUseCase) GetByID(actor entity.Actor, id string) (*dto.CompanyResponse, error) {
	if !actor.IsStaff() || !actor.CanAccess(id) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToCompanyResponse(company), nil
}

// Update edición parcial: solo los campos presentes cambian.
func (uc *CompanyUseCase) Update(actor entity.Actor, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if !isPlanAdmin(actor) || !actor.CanAccess(id) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Name = *in.Name
	}
	if in.PhotoURL != nil {
		company.PhotoURL = *in.PhotoURL
	}
	if in.IsActive != nil {
		company.IsActive = *in.IsActive
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	if in.UserIDs != nil {
		if err := uc.companyRepo.SetUsers(company.ID, in.UserIDs); err != nil {
			return nil, err
		}
		company.UserIDs = in.UserIDs
	}
	return dto.ToCompanyResponse(company), nil
}

// List devuelve la página de empresas visibles para el actor.
func (uc *CompanyUseCase) List(actor entity.Actor, in dto.FilterCompaniesRequest) ([]*dto.CompanyResponse, dto.PageMeta, error) {
	if !actor.IsStaff() {
		return nil, dto.PageMeta{}, domain.ErrForbidden
	}
	in.DefaultPage()
	companies, total, err := uc.companyRepo.List(repository.CompanyFilter{
		CompanyIDs: actor.AllowedCompanies(),
		Name:       in.Name,
		IsActive:   in.IsActive,
		Search:     in.Search,
		Page:       in.Page,
		Limit:      in.Limit,
	})
	if err != nil {
		return nil, dto.PageMeta{}, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, dto.ToCompanyResponse(c))
	}
	return out, dto.NewPageMeta(in.Page, in.Limit, total), nil
}

// Delete baja lógica de la empresa.
func (uc *CompanyUseCase) Delete(actor entity.Actor, id string) error {
	if actor.Role != entity.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.companyRepo.SoftDelete(id)
}
