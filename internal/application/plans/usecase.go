package plans

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/billing"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// UseCase casos de uso de planes y facturación de empresas. Los planes
// son un log de versiones con exactamente uno activo por empresa; las
// facturas quedan atadas a la versión con la que se calcularon.
type UseCase struct {
	txRunner    TxRunner
	planRepo    repository.PlanRepository
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
}

// NewUseCase construye el caso de uso de planes.
func NewUseCase(
	txRunner TxRunner,
	planRepo repository.PlanRepository,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		planRepo:    planRepo,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
	}
}

func isPlanAdmin(actor entity.Actor) bool {
	return actor.Role == entity.RoleSuperAdmin || actor.Role == entity.RoleAdmin
}

// SetPlan crea una versión nueva del plan de la empresa y desactiva la
// vigente, en una sola transacción: nadie observa dos planes activos ni
// una empresa que pierda el suyo a mitad de camino.
func (uc *UseCase) SetPlan(ctx context.Context, actor entity.Actor, companyID string, in dto.SetPlanRequest) (*dto.PlanResponse, error) {
	if !isPlanAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	if !actor.CanAccess(companyID) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	plan, err := entity.NewCompanyPlan(companyID, in.PlanType, entity.PlanParams{
		FlatRate:       in.FlatRate,
		PerVehicleRate: in.PerVehicleRate,
		BasePrice:      in.BasePrice,
		FeeType:        in.FeeType,
		FeeValue:       in.FeeValue,
	})
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.New().String()
	plan.CreatedAt = time.Now()

	err = uc.txRunner.RunPlanChange(ctx, func(planRepo repository.PlanRepository) error {
		if err := planRepo.DeactivateActive(companyID); err != nil {
			return err
		}
		return planRepo.Create(plan)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPlanResponse(plan), nil
}

// ActivePlan devuelve el plan vigente de la empresa.
func (uc *UseCase) ActivePlan(actor entity.Actor, companyID string) (*dto.PlanResponse, error) {
	if !actor.IsStaff() || !actor.CanAccess(companyID) {
		return nil, domain.ErrForbidden
	}
	plan, err := uc.planRepo.GetActiveByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNoActivePlan
	}
	return dto.ToPlanResponse(plan), nil
}

// ListPlans historial de versiones de plan de la empresa.
func (uc *UseCase) ListPlans(actor entity.Actor, companyID string) ([]*dto.PlanResponse, error) {
	if !actor.IsStaff() || !actor.CanAccess(companyID) {
		return nil, domain.ErrForbidden
	}
	plans, err := uc.planRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.ToPlanResponse(p))
	}
	return out, nil
}

// GenerateInvoice calcula y persiste la factura del período contra el plan
// activo de la empresa. El conteo de vehículos, la lectura del plan y la
// factura comparten transacción: el snapshot de uso que queda en la factura
// es exactamente el que se facturó.
func (uc *UseCase) GenerateInvoice(ctx context.Context, actor entity.Actor, companyID string, in dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !isPlanAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	if !actor.CanAccess(companyID) {
		return nil, domain.ErrForbidden
	}
	if !in.PeriodEnd.After(in.PeriodStart) {
		return nil, domain.ErrInvalidTimestamp
	}
	if in.Validation != entity.ValidationManual && in.Validation != entity.ValidationAutomatic {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	var invoice *entity.CompanyInvoice
	err = uc.txRunner.RunInvoice(ctx, func(
		planRepo repository.PlanRepository,
		invoiceRepo repository.InvoiceRepository,
		recordRepo repository.ParkingRecordRepository,
	) error {
		plan, err := planRepo.GetActiveByCompany(companyID)
		if err != nil {
			return err
		}
		if plan == nil {
			return domain.ErrNoActivePlan
		}

		count, err := recordRepo.CountByCompanyAndPeriod(companyID, in.PeriodStart, in.PeriodEnd)
		if err != nil {
			return err
		}
		breakdown, err := billing.Compute(plan, count)
		if err != nil {
			return err
		}

		periodStart, periodEnd := in.PeriodStart, in.PeriodEnd
		invoice = &entity.CompanyInvoice{
			ID:              uuid.New().String(),
			CompanyPlanID:   plan.ID,
			AmountUSD:       breakdown.Amount,
			Status:          entity.DeriveStatus(in.Validation),
			Validation:      in.Validation,
			PlanType:        plan.PlanType,
			VehicleCount:    &count,
			BaseAmount:      breakdown.BaseAmount,
			VehicleAmount:   breakdown.VehicleAmount,
			FeeAmount:       breakdown.FeeAmount,
			PeriodStart:     &periodStart,
			PeriodEnd:       &periodEnd,
			PaymentMethodID: in.PaymentMethodID,
			Reference:       in.Reference,
			Note:            in.Note,
			Date:            time.Now(),
		}
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToInvoiceResponse(invoice), nil
}

// UpdateInvoiceStatus avanza el estado de una factura validando que
// pertenezca al plan indicado. CANCELLED es terminal, igual que en pagos.
func (uc *UseCase) UpdateInvoiceStatus(actor entity.Actor, planID, invoiceID string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if !isPlanAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	invoice, err := uc.invoiceRepo.GetByPlanAndID(planID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if plan, err := uc.planRepo.GetByID(planID); err != nil {
		return nil, err
	} else if plan == nil || !actor.CanAccess(plan.CompanyID) {
		return nil, domain.ErrForbidden
	}

	asPayment := entity.Payment{Status: invoice.Status}
	if !asPayment.CanTransitionTo(in.Status) {
		if invoice.Status == entity.PaymentStatusCancelled {
			return nil, domain.ErrConflict
		}
		return nil, domain.ErrInvalidInput
	}
	if err := uc.invoiceRepo.UpdateStatus(invoice.ID, in.Status); err != nil {
		return nil, err
	}
	invoice.Status = in.Status
	return dto.ToInvoiceResponse(invoice), nil
}

// ListInvoices facturas emitidas contra una versión de plan.
func (uc *UseCase) ListInvoices(actor entity.Actor, planID string) ([]*dto.InvoiceResponse, error) {
	if !isPlanAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	plan, err := uc.planRepo.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccess(plan.CompanyID) {
		return nil, domain.ErrForbidden
	}
	invoices, err := uc.invoiceRepo.ListByPlan(planID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.ToInvoiceResponse(inv))
	}
	return out, nil
}
