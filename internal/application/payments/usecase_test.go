package payments_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/application/payments"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePaymentRepo struct {
	payments   []*entity.Payment
	lastFilter repository.PaymentFilter
}

func (f *fakePaymentRepo) Create(p *entity.Payment) error {
	f.payments = append(f.payments, p)
	return nil
}
func (f *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePaymentRepo) UpdateStatus(id, status string) error {
	for _, p := range f.payments {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}
func (f *fakePaymentRepo) ListByRecord(recordID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.payments {
		if p.ParkingRecordID == recordID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePaymentRepo) CountPayableByRecord(recordID string) (int64, error) {
	var n int64
	for _, p := range f.payments {
		if p.ParkingRecordID == recordID && p.Status != entity.PaymentStatusCancelled {
			n++
		}
	}
	return n, nil
}
func (f *fakePaymentRepo) Aggregate(filter repository.PaymentFilter) (*repository.PaymentAggregate, error) {
	f.lastFilter = filter
	agg := &repository.PaymentAggregate{}
	for _, p := range f.payments {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		agg.Payments = append(agg.Payments, p)
		agg.Total++
		switch p.Status {
		case entity.PaymentStatusPending:
			agg.Pending.Count++
			agg.Pending.Sum = agg.Pending.Sum.Add(p.AmountUSD)
		case entity.PaymentStatusReceived:
			agg.Received.Count++
			agg.Received.Sum = agg.Received.Sum.Add(p.AmountUSD)
		case entity.PaymentStatusCancelled:
			agg.Cancelled.Count++
			agg.Cancelled.Sum = agg.Cancelled.Sum.Add(p.AmountUSD)
		}
	}
	return agg, nil
}

type fakeMethodRepo struct {
	methods []*entity.PaymentMethod
}

func (f *fakeMethodRepo) Create(m *entity.PaymentMethod) error {
	f.methods = append(f.methods, m)
	return nil
}
func (f *fakeMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	for _, m := range f.methods {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (f *fakeMethodRepo) ListActive() ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	for _, m := range f.methods {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeRecordRepo struct {
	records []*entity.ParkingRecord
}

func (f *fakeRecordRepo) Create(r *entity.ParkingRecord) error {
	f.records = append(f.records, r)
	return nil
}
func (f *fakeRecordRepo) GetByID(id string) (*entity.ParkingRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeRecordRepo) GetOpenByPlate(string) (*entity.ParkingRecord, error) { return nil, nil }
func (f *fakeRecordRepo) Checkout(*entity.ParkingRecord) error                 { return nil }
func (f *fakeRecordRepo) List(repository.RecordFilter) ([]*entity.ParkingRecord, *repository.RecordStatusCounts, error) {
	return nil, &repository.RecordStatusCounts{}, nil
}
func (f *fakeRecordRepo) ListOpenByOwner(string) ([]*entity.ParkingRecord, error) { return nil, nil }
func (f *fakeRecordRepo) ListOpenByCheckInValet(string) ([]*entity.ParkingRecord, error) {
	return nil, nil
}
func (f *fakeRecordRepo) CountByCompanyAndPeriod(string, time.Time, time.Time) (int64, error) {
	return 0, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "00000000-0000-0000-0000-0000000000c1"

func staffActor() entity.Actor {
	return entity.Actor{
		UserID:     "00000000-0000-0000-0000-0000000000a1",
		Role:       entity.RoleAttendant,
		CompanyIDs: []string{testCompanyID},
	}
}

type fixture struct {
	uc      *payments.UseCase
	pays    *fakePaymentRepo
	methods *fakeMethodRepo
	records *fakeRecordRepo
}

func newFixture() *fixture {
	f := &fixture{
		pays:    &fakePaymentRepo{},
		methods: &fakeMethodRepo{},
		records: &fakeRecordRepo{},
	}
	f.records.records = append(f.records.records, &entity.ParkingRecord{
		ID: "r1", Plate: "ABC123", CompanyID: testCompanyID, CheckInAt: time.Now().Add(-time.Hour),
	})
	f.methods.methods = append(f.methods.methods,
		&entity.PaymentMethod{ID: "m-cash", Name: "Efectivo", Type: entity.PaymentMethodCash, IsActive: true},
		&entity.PaymentMethod{ID: "m-transfer", Name: "Transferencia", Type: entity.PaymentMethodTransfer, IsActive: true},
	)
	f.uc = payments.NewUseCase(f.pays, f.methods, f.records)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Record
// ──────────────────────────────────────────────────────────────────────────────

// Pago MANUAL en efectivo: queda RECEIVED de inmediato.
func TestRecord_ManualEfectivoQuedaRecibido(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Record(staffActor(), dto.CreatePaymentRequest{
		ParkingRecordID: "r1",
		PaymentMethodID: "m-cash",
		AmountUSD:       decimal.NewFromInt(10),
		Validation:      entity.ValidationManual,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusReceived, resp.Status,
		"MANUAL se confía al registrarlo")
	assert.Equal(t, staffActor().UserID, resp.ProcessedByID)
}

// Pago AUTOMATIC: queda PENDING hasta confirmación externa.
func TestRecord_AutomaticQuedaPendiente(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Record(staffActor(), dto.CreatePaymentRequest{
		ParkingRecordID: "r1",
		PaymentMethodID: "m-transfer",
		AmountUSD:       decimal.NewFromInt(10),
		Validation:      entity.ValidationAutomatic,
		Reference:       "TRX-991",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPending, resp.Status)
}

// Método no-efectivo sin referencia externa: rechazado.
func TestRecord_TransferenciaSinReferencia(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Record(staffActor(), dto.CreatePaymentRequest{
		ParkingRecordID: "r1",
		PaymentMethodID: "m-transfer",
		AmountUSD:       decimal.NewFromInt(10),
		Validation:      entity.ValidationAutomatic,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"los métodos no-efectivo exigen referencia")
}

// No se puede pagar un registro ya entregado.
func TestRecord_RegistroYaEntregado(t *testing.T) {
	f := newFixture()
	out := time.Now()
	f.records.records[0].CheckOutAt = &out

	_, err := f.uc.Record(staffActor(), dto.CreatePaymentRequest{
		ParkingRecordID: "r1",
		PaymentMethodID: "m-cash",
		AmountUSD:       decimal.NewFromInt(10),
		Validation:      entity.ValidationManual,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedOut)
}

// Monto cero o negativo: rechazado.
func TestRecord_MontoInvalido(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Record(staffActor(), dto.CreatePaymentRequest{
		ParkingRecordID: "r1",
		PaymentMethodID: "m-cash",
		AmountUSD:       decimal.Zero,
		Validation:      entity.ValidationManual,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AdvanceStatus
// ──────────────────────────────────────────────────────────────────────────────

// PENDING → RECEIVED es la confirmación normal.
func TestAdvanceStatus_ConfirmarPendiente(t *testing.T) {
	f := newFixture()
	f.pays.payments = append(f.pays.payments, &entity.Payment{
		ID: "p1", ParkingRecordID: "r1", Status: entity.PaymentStatusPending,
	})

	resp, err := f.uc.AdvanceStatus(staffActor(), "p1", dto.UpdatePaymentStatusRequest{
		Status: entity.PaymentStatusReceived,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusReceived, resp.Status)
}

// CANCELLED es terminal: un pago anulado no se puede mover.
func TestAdvanceStatus_CanceladoEsTerminal(t *testing.T) {
	f := newFixture()
	f.pays.payments = append(f.pays.payments, &entity.Payment{
		ID: "p1", ParkingRecordID: "r1", Status: entity.PaymentStatusCancelled,
	})

	_, err := f.uc.AdvanceStatus(staffActor(), "p1", dto.UpdatePaymentStatusRequest{
		Status: entity.PaymentStatusReceived,
	})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un pago CANCELLED no admite más transiciones")
}

// Estado desconocido: rechazado.
func TestAdvanceStatus_EstadoInvalido(t *testing.T) {
	f := newFixture()
	f.pays.payments = append(f.pays.payments, &entity.Payment{
		ID: "p1", ParkingRecordID: "r1", Status: entity.PaymentStatusPending,
	})

	_, err := f.uc.AdvanceStatus(staffActor(), "p1", dto.UpdatePaymentStatusRequest{
		Status: "REFUNDED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Aggregate y catálogo
// ──────────────────────────────────────────────────────────────────────────────

// Los totales por estado concilian con los pagos del filtro.
func TestAggregate_TotalesPorEstado(t *testing.T) {
	f := newFixture()
	f.pays.payments = append(f.pays.payments,
		&entity.Payment{ID: "p1", ParkingRecordID: "r1", Status: entity.PaymentStatusReceived, AmountUSD: decimal.NewFromInt(10)},
		&entity.Payment{ID: "p2", ParkingRecordID: "r1", Status: entity.PaymentStatusReceived, AmountUSD: decimal.NewFromInt(5)},
		&entity.Payment{ID: "p3", ParkingRecordID: "r1", Status: entity.PaymentStatusCancelled, AmountUSD: decimal.NewFromInt(7)},
	)

	resp, err := f.uc.Aggregate(staffActor(), dto.FilterPaymentsRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Meta.Received.Count)
	assert.True(t, resp.Meta.Received.Sum.Equal(decimal.NewFromInt(15)),
		"la suma RECEIVED debe ser 15, fue %s", resp.Meta.Received.Sum)
	assert.Equal(t, int64(1), resp.Meta.Cancelled.Count)
}

// El listado de pagos siempre va acotado a las empresas del actor: un
// attendant sin empresas asignadas consulta con un conjunto vacío (nada
// visible), nunca con el filtro abierto que usa SUPER_ADMIN.
func TestAggregate_AcotadoALasEmpresasDelActor(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Aggregate(staffActor(), dto.FilterPaymentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{testCompanyID}, f.pays.lastFilter.CompanyIDs)

	sinEmpresas := entity.Actor{UserID: "u9", Role: entity.RoleAttendant}
	_, err = f.uc.Aggregate(sinEmpresas, dto.FilterPaymentsRequest{})
	require.NoError(t, err)
	require.NotNil(t, f.pays.lastFilter.CompanyIDs, "nil abriría el filtro a todas las empresas")
	assert.Empty(t, f.pays.lastFilter.CompanyIDs)

	root := entity.Actor{UserID: "u10", Role: entity.RoleSuperAdmin}
	_, err = f.uc.Aggregate(root, dto.FilterPaymentsRequest{})
	require.NoError(t, err)
	assert.Nil(t, f.pays.lastFilter.CompanyIDs)
}

// Solo administración crea métodos de pago.
func TestCreateMethod_SoloAdministracion(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateMethod(staffActor(), dto.CreatePaymentMethodRequest{
		Name: "Datáfono", Type: entity.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un attendant no administra el catálogo")

	admin := entity.Actor{UserID: "adm", Role: entity.RoleAdmin}
	resp, err := f.uc.CreateMethod(admin, dto.CreatePaymentMethodRequest{
		Name: "Datáfono", Type: entity.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}
