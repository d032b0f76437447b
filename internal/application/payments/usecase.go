package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// UseCase casos de uso de pagos: registro, avance de estado, agregados y
// catálogo de métodos. Los pagos nunca se borran; anular es CANCELLED.
type UseCase struct {
	paymentRepo repository.PaymentRepository
	methodRepo  repository.PaymentMethodRepository
	recordRepo  repository.ParkingRecordRepository
}

// NewUseCase construye el caso de uso de pagos.
func NewUseCase(
	paymentRepo repository.PaymentRepository,
	methodRepo repository.PaymentMethodRepository,
	recordRepo repository.ParkingRecordRepository,
) *UseCase {
	return &UseCase{paymentRepo: paymentRepo, methodRepo: methodRepo, recordRepo: recordRepo}
}

// Record registra un pago contra un registro abierto. El estado inicial se
// deriva del modo de validación (MANUAL se confía, AUTOMATIC queda
// pendiente). Los métodos no-efectivo exigen referencia externa.
func (uc *UseCase) Record(actor entity.Actor, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if in.ParkingRecordID == "" || in.PaymentMethodID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Validation != entity.ValidationManual && in.Validation != entity.ValidationAutomatic {
		return nil, domain.ErrInvalidInput
	}
	if !in.AmountUSD.GreaterThan(decimal.Zero) || in.Tip.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	record, err := uc.recordRepo.GetByID(in.ParkingRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccess(record.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if !record.IsOpen() {
		return nil, domain.ErrAlreadyCheckedOut
	}

	method, err := uc.methodRepo.GetByID(in.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil || !method.IsActive {
		return nil, domain.ErrNotFound
	}
	if !method.IsCash() && in.Reference == "" {
		return nil, domain.ErrInvalidInput
	}

	payment := &entity.Payment{
		ID:              uuid.New().String(),
		ParkingRecordID: record.ID,
		PaymentMethodID: method.ID,
		AmountUSD:       in.AmountUSD,
		Tip:             in.Tip,
		Status:          entity.DeriveStatus(in.Validation),
		Validation:      in.Validation,
		Reference:       in.Reference,
		Note:            in.Note,
		ProcessedByID:   actor.UserID,
		Date:            time.Now(),
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return dto.ToPaymentResponse(payment), nil
}

// AdvanceStatus cambia el estado de un pago. CANCELLED es terminal:
// intentar mover un pago anulado devuelve ErrConflict.
func (uc *UseCase) AdvanceStatus(actor entity.Actor, paymentID string, in dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if !payment.CanTransitionTo(in.Status) {
		if payment.Status == entity.PaymentStatusCancelled {
			return nil, domain.ErrConflict
		}
		return nil, domain.ErrInvalidInput
	}
	if err := uc.paymentRepo.UpdateStatus(payment.ID, in.Status); err != nil {
		return nil, err
	}
	payment.Status = in.Status
	return dto.ToPaymentResponse(payment), nil
}

// GetByID devuelve un pago.
func (uc *UseCase) GetByID(actor entity.Actor, id string) (*dto.PaymentResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToPaymentResponse(payment), nil
}

// Aggregate devuelve la página de pagos y los totales por estado, ambos
// calculados bajo el mismo filtro (la página y los totales concilian).
func (uc *UseCase) Aggregate(actor entity.Actor, in dto.FilterPaymentsRequest) (*dto.PaymentAggregateResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	in.DefaultPage()

	filter := repository.PaymentFilter{
		CompanyIDs:      actor.AllowedCompanies(),
		ParkingRecordID: in.ParkingRecordID,
		PaymentMethodID: in.PaymentMethodID,
		Status:          in.Status,
		Page:            in.Page,
		Limit:           in.Limit,
	}
	var err error
	if filter.DateFrom, err = parseDay(in.DateFrom, false); err != nil {
		return nil, err
	}
	if filter.DateTo, err = parseDay(in.DateTo, true); err != nil {
		return nil, err
	}

	agg, err := uc.paymentRepo.Aggregate(filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.PaymentAggregateResponse{Data: make([]*dto.PaymentResponse, 0, len(agg.Payments))}
	for _, p := range agg.Payments {
		resp.Data = append(resp.Data, dto.ToPaymentResponse(p))
	}
	resp.Meta.Page = in.Page
	resp.Meta.Limit = in.Limit
	resp.Meta.Total = agg.Total
	resp.Meta.Pending = dto.StatusTotalResponse{Count: agg.Pending.Count, Sum: agg.Pending.Sum}
	resp.Meta.Received = dto.StatusTotalResponse{Count: agg.Received.Count, Sum: agg.Received.Sum}
	resp.Meta.Cancelled = dto.StatusTotalResponse{Count: agg.Cancelled.Count, Sum: agg.Cancelled.Sum}
	return resp, nil
}

// CreateMethod agrega un método al catálogo (solo administración).
func (uc *UseCase) CreateMethod(actor entity.Actor, in dto.CreatePaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	if actor.Role != entity.RoleSuperAdmin && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.PaymentMethodCash, entity.PaymentMethodTransfer, entity.PaymentMethodCard, entity.PaymentMethodMobile:
	default:
		return nil, domain.ErrInvalidInput
	}

	method := &entity.PaymentMethod{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Form:      in.Form,
		Type:      in.Type,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.methodRepo.Create(method); err != nil {
		return nil, err
	}
	return dto.ToPaymentMethodResponse(method), nil
}

// ListMethods catálogo de métodos activos.
func (uc *UseCase) ListMethods(actor entity.Actor) ([]*dto.PaymentMethodResponse, error) {
	methods, err := uc.methodRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, dto.ToPaymentMethodResponse(m))
	}
	return out, nil
}

func parseDay(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}
