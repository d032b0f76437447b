package custody

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/valet-pro/internal/application/dto"
	"github.com/tu-usuario/valet-pro/internal/application/ports"
	"github.com/tu-usuario/valet-pro/internal/domain"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
	"github.com/tu-usuario/valet-pro/internal/domain/repository"
)

// UseCase casos de uso de custodia: check-in, checkout y consultas de
// registros de parqueo. Check-in y checkout son transaccionales.
type UseCase struct {
	txRunner   TxRunner
	recordRepo repository.ParkingRecordRepository
	userRepo   repository.UserRepository
	valetRepo  repository.ValetRepository
	notifier   ports.Notifier
}

// NewUseCase construye el caso de uso de custodia.
func NewUseCase(
	txRunner TxRunner,
	recordRepo repository.ParkingRecordRepository,
	userRepo repository.UserRepository,
	valetRepo repository.ValetRepository,
	notifier ports.Notifier,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		recordRepo: recordRepo,
		userRepo:   userRepo,
		valetRepo:  valetRepo,
		notifier:   notifier,
	}
}

// CheckIn registra la entrada de un vehículo a custodia. Resuelve al dueño
// por UserID, cédula o email (creando una identidad nueva si no existe
// ninguno), resuelve o crea el vehículo en el catálogo del dueño y crea el
// registro con snapshot de los campos descriptivos. Todo en una transacción.
// Devuelve ErrAlreadyInCustody si la placa ya tiene un registro abierto.
func (uc *UseCase) CheckIn(ctx context.Context, actor entity.Actor, in dto.RegisterVehicleRequest) (*dto.RegisterVehicleResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if plate == "" || in.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !actor.CanAccess(in.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if in.ValetID != "" {
		valet, err := uc.valetRepo.GetByID(in.ValetID)
		if err != nil {
			return nil, err
		}
		if valet == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	var (
		record       *entity.ParkingRecord
		isNewUser    bool
		ownerEmail   string
		ownerName    string
		tempPassword string
	)

	err := uc.txRunner.RunCheckIn(ctx, func(
		recordRepo repository.ParkingRecordRepository,
		vehicleRepo repository.VehicleRepository,
		userRepo repository.UserRepository,
	) error {
		owner, created, pwd, err := uc.resolveOwner(userRepo, in, now)
		if err != nil {
			return err
		}
		isNewUser = created
		tempPassword = pwd
		if owner != nil {
			ownerEmail = owner.Email
			ownerName = owner.Name
		}

		brand, model, color := in.Brand, in.Model, in.Color
		ownerID := ""
		if owner != nil {
			ownerID = owner.ID
			vehicle, err := resolveVehicle(vehicleRepo, owner.ID, plate, in, now)
			if err != nil {
				return err
			}
			// El snapshot toma lo indicado en el check-in y completa con el catálogo.
			if brand == "" {
				brand = vehicle.Brand
			}
			if model == "" {
				model = vehicle.Model
			}
			if color == "" {
				color = vehicle.Color
			}
		}

		record = &entity.ParkingRecord{
			ID:             uuid.New().String(),
			Plate:          plate,
			Brand:          brand,
			Model:          model,
			Color:          color,
			OwnerID:        ownerID,
			CompanyID:      in.CompanyID,
			RegisteredByID: actor.UserID,
			CheckInValetID: in.ValetID,
			CheckInAt:      now,
			Notes:          in.Notes,
		}
		return recordRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}

	if isNewUser && ownerEmail != "" && uc.notifier != nil {
		// Bienvenida fuera de la transacción: un fallo del correo no
		// revierte el check-in.
		go func(email, name, pwd string) {
			nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := uc.notifier.SendWelcome(nctx, email, name, pwd); err != nil {
				log.Error().Err(err).Str("email", email).Msg("no se pudo enviar la bienvenida")
			}
		}(ownerEmail, ownerName, tempPassword)
	}

	return &dto.RegisterVehicleResponse{
		ParkingRecord: dto.ToParkingRecordResponse(record),
		IsNewUser:     isNewUser,
		OwnerEmail:    ownerEmail,
	}, nil
}

// resolveOwner busca al dueño por UserID, cédula o email, en ese orden.
// Si se dieron pistas de identidad pero ninguna coincide, crea un CLIENT
// nuevo con password temporal. Sin pistas, el registro queda sin dueño.
func (uc *UseCase) resolveOwner(userRepo repository.UserRepository, in dto.RegisterVehicleRequest, now time.Time) (*entity.User, bool, string, error) {
	if in.UserID != "" {
		owner, err := userRepo.GetByID(in.UserID)
		if err != nil {
			return nil, false, "", err
		}
		if owner == nil {
			return nil, false, "", domain.ErrUserNotFound
		}
		return owner, false, "", nil
	}
	if in.IDNumber != "" {
		owner, err := userRepo.GetByIDNumber(in.IDNumber)
		if err != nil {
			return nil, false, "", err
		}
		if owner != nil {
			return owner, false, "", nil
		}
	}
	if in.Email != "" {
		owner, err := userRepo.GetByEmail(in.Email)
		if err != nil {
			return nil, false, "", err
		}
		if owner != nil {
			return owner, false, "", nil
		}
	}
	if in.Email == "" && in.IDNumber == "" {
		return nil, false, "", nil // registro sin dueño identificado
	}

	tempPassword := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, "", err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	owner := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		IDNumber:     in.IDNumber,
		Name:         name,
		PasswordHash: string(hash),
		Role:         entity.RoleClient,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(owner); err != nil {
		return nil, false, "", err
	}
	return owner, true, tempPassword, nil
}

// resolveVehicle localiza el vehículo en el catálogo del dueño por ID o
// por placa, creándolo si no existe.
func resolveVehicle(vehicleRepo repository.VehicleRepository, ownerID, plate string, in dto.RegisterVehicleRequest, now time.Time) (*entity.Vehicle, error) {
	if in.VehicleID != "" {
		vehicle, err := vehicleRepo.GetByID(in.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil || vehicle.OwnerID != ownerID {
			return nil, domain.ErrNotFound
		}
		return vehicle, nil
	}
	vehicle, err := vehicleRepo.FindByOwnerAndPlate(ownerID, plate)
	if err != nil {
		return nil, err
	}
	if vehicle != nil {
		return vehicle, nil
	}
	vehicle = &entity.Vehicle{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Plate:     plate,
		Brand:     in.Brand,
		Model:     in.Model,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Checkout entrega el vehículo: exige al menos un pago no anulado, fija el
// instante de salida y deja el registro terminal. Todo en una transacción.
func (uc *UseCase) Checkout(ctx context.Context, actor entity.Actor, recordID string, in dto.CheckoutVehicleRequest) (*dto.ParkingRecordResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if recordID == "" {
		return nil, domain.ErrInvalidInput
	}

	var record *entity.ParkingRecord
	err := uc.txRunner.RunCheckout(ctx, func(
		recordRepo repository.ParkingRecordRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		var err error
		record, err = recordRepo.GetByID(recordID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		if !actor.CanAccess(record.CompanyID) {
			return domain.ErrForbidden
		}
		if !record.IsOpen() {
			return domain.ErrAlreadyCheckedOut
		}

		payable, err := paymentRepo.CountPayableByRecord(record.ID)
		if err != nil {
			return err
		}
		if payable == 0 {
			return domain.ErrPaymentRequired
		}

		checkOutAt := time.Now()
		if in.CheckOutAt != nil {
			checkOutAt = *in.CheckOutAt
		}
		if checkOutAt.Before(record.CheckInAt) {
			return domain.ErrInvalidTimestamp
		}

		record.CheckOutAt = &checkOutAt
		record.CheckOutValetID = in.CheckOutValet
		if in.Notes != "" {
			record.Notes = in.Notes
		}
		return recordRepo.Checkout(record)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToParkingRecordResponse(record), nil
}

// GetByID devuelve un registro con sus pagos.
func (uc *UseCase) GetByID(actor entity.Actor, id string) (*dto.ParkingRecordResponse, error) {
	record, err := uc.recordRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if actor.IsStaff() {
		if !actor.CanAccess(record.CompanyID) {
			return nil, domain.ErrForbidden
		}
	} else if record.OwnerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return dto.ToParkingRecordResponse(record), nil
}

// List devuelve una página de registros con los conteos por estado bajo
// el mismo filtro. El conjunto de empresas visible lo acota el actor.
func (uc *UseCase) List(actor entity.Actor, in dto.FilterVehiclesRequest) (*dto.VehicleListResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if in.CompanyID != "" && !actor.CanAccess(in.CompanyID) {
		return nil, domain.ErrForbidden
	}
	in.DefaultPage()

	filter := repository.RecordFilter{
		CompanyIDs: actor.AllowedCompanies(),
		CompanyID:  in.CompanyID,
		Status:     in.Status,
		Plate:      in.Plate,
		Brand:      in.Brand,
		Model:      in.Model,
		Color:      in.Color,
		Search:     in.Search,
		Page:       in.Page,
		Limit:      in.Limit,
	}
	var err error
	if filter.DateFrom, err = parseDay(in.DateFrom, false); err != nil {
		return nil, err
	}
	if filter.DateTo, err = parseDay(in.DateTo, true); err != nil {
		return nil, err
	}

	records, counts, err := uc.recordRepo.List(filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.VehicleListResponse{Data: make([]*dto.ParkingRecordResponse, 0, len(records))}
	for _, r := range records {
		resp.Data = append(resp.Data, dto.ToParkingRecordResponse(r))
	}
	totalPages := counts.Total / int64(in.Limit)
	if counts.Total%int64(in.Limit) != 0 {
		totalPages++
	}
	resp.Meta = dto.VehicleListMeta{
		Page:            in.Page,
		Limit:           in.Limit,
		TotalPages:      totalPages,
		Active:          counts.Active,
		PendingDelivery: counts.PendingDelivery,
		Completed:       counts.Completed,
		All:             counts.Total,
	}
	return resp, nil
}

// ActiveByOwner devuelve los registros abiertos del propio actor (vista
// del cliente: "¿dónde están mis vehículos?").
func (uc *UseCase) ActiveByOwner(actor entity.Actor) ([]*dto.ParkingRecordResponse, error) {
	records, err := uc.recordRepo.ListOpenByOwner(actor.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ParkingRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ToParkingRecordResponse(r))
	}
	return out, nil
}

// OpenByValet registros activos recibidos por el valet con esa cédula.
func (uc *UseCase) OpenByValet(actor entity.Actor, idNumber string) ([]*dto.ParkingRecordResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if idNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	records, err := uc.recordRepo.ListOpenByCheckInValet(idNumber)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ParkingRecordResponse, 0, len(records))
	for _, r := range records {
		if actor.CanAccess(r.CompanyID) {
			out = append(out, dto.ToParkingRecordResponse(r))
		}
	}
	return out, nil
}

// ListValets catálogo de valets.
func (uc *UseCase) ListValets(actor entity.Actor) ([]*dto.ValetResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	valets, err := uc.valetRepo.List(actor.AllowedCompanies())
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ValetResponse, 0, len(valets))
	for _, v := range valets {
		out = append(out, &dto.ValetResponse{ID: v.ID, Name: v.Name, IDNumber: v.IDNumber})
	}
	return out, nil
}

// parseDay interpreta una fecha YYYY-MM-DD; endOfDay la lleva al último
// instante del día para que el filtro sea inclusivo.
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
