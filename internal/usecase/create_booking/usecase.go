package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	slotStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/slot"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
	"github.com/m04kA/TCM-VisitService/internal/service/capacity"
)

// UseCase создание бронирования посещения храма
type UseCase struct {
	bookings  BookingRepository
	slots     SlotRepository
	temples   TempleRepository
	allocator CapacityAllocator
	idgen     IdentifierGenerator
	timeProv  TimeProvider
	logger    Logger
}

// NewUseCase создает новый usecase для создания бронирования
func NewUseCase(
	bookings BookingRepository,
	slots SlotRepository,
	temples TempleRepository,
	allocator CapacityAllocator,
	idgen IdentifierGenerator,
	timeProv TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:  bookings,
		slots:     slots,
		temples:   temples,
		allocator: allocator,
		idgen:     idgen,
		timeProv:  timeProv,
		logger:    logger,
	}
}

// Execute создает бронирование на слот посещения.
//
// Порядок операций фиксирован: сначала атомарно резервируется ёмкость
// слота, затем создается запись бронирования. Если запись создать не
// удалось, резерв освобождается - ёмкость не может "утечь" при сбое
// на полпути. Два конкурентных запроса, совместно превышающих остаток
// мест, не могут пройти оба: проверку и инкремент выполняет аллокатор
// одной неделимой операцией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	temple, err := uc.temples.GetByID(ctx, req.TempleID)
	if err != nil {
		if errors.Is(err, templeStorage.ErrTempleNotFound) {
			return nil, fmt.Errorf("%w: temple=%d", ErrTempleNotFound, req.TempleID)
		}
		return nil, fmt.Errorf("%w: Execute - get temple %d: %v", ErrInternal, req.TempleID, err)
	}

	if !temple.IsActive {
		return nil, fmt.Errorf("%w: temple=%d", ErrTempleInactive, req.TempleID)
	}

	slot, err := uc.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotStorage.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: slot=%d", ErrSlotNotFound, req.SlotID)
		}
		return nil, fmt.Errorf("%w: Execute - get slot %d: %v", ErrInternal, req.SlotID, err)
	}

	// Слот должен принадлежать запрошенному храму
	if slot.TempleID != req.TempleID {
		return nil, fmt.Errorf("%w: slot=%d does not belong to temple=%d", ErrSlotNotFound, req.SlotID, req.TempleID)
	}

	slotStart, err := slot.StartDateTime()
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - slot %d start time: %v", ErrInternal, req.SlotID, err)
	}

	if !slotStart.After(uc.timeProv.Now()) {
		return nil, fmt.Errorf("%w: slot=%d starts at %s", ErrSlotInPast, req.SlotID, slotStart.Format(domain.TimeFormat))
	}

	token, err := uc.allocator.Reserve(ctx, req.SlotID, req.VisitorsCount)
	if err != nil {
		return nil, uc.mapAllocatorError(err, req.SlotID)
	}

	bookingID := uc.idgen.Next()

	payload, err := json.Marshal(qrPayload{
		BookingID:     bookingID,
		TempleID:      req.TempleID,
		SlotID:        req.SlotID,
		UserID:        req.UserID,
		VisitorsCount: req.VisitorsCount,
	})
	if err != nil {
		uc.releaseReservation(ctx, token)
		return nil, fmt.Errorf("%w: Execute - marshal qr payload: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		BookingID:      bookingID,
		UserID:         req.UserID,
		TempleID:       req.TempleID,
		SlotID:         req.SlotID,
		VisitorsCount:  req.VisitorsCount,
		Visitors:       req.Visitors,
		Status:         domain.StatusConfirmed,
		SlotStart:      slotStart,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		SpecialRequest: req.SpecialRequest,
		QRPayload:      string(payload),
	}

	created, err := uc.bookings.Create(ctx, booking)
	if err != nil {
		// Запись не создана - возвращаем ёмкость слоту
		uc.releaseReservation(ctx, token)
		return nil, fmt.Errorf("%w: Execute - create booking: %v", ErrInternal, err)
	}

	// Бронирование сохранено - токен больше не нужен
	uc.allocator.Commit(token)

	uc.logger.Info("CreateBooking: booking=%s user=%d slot=%d visitors=%d",
		created.BookingID, created.UserID, created.SlotID, created.VisitorsCount)

	return &Response{
		ID:            created.ID,
		BookingID:     created.BookingID,
		UserID:        created.UserID,
		TempleID:      created.TempleID,
		SlotID:        created.SlotID,
		VisitorsCount: created.VisitorsCount,
		Visitors:      created.Visitors,
		Status:        string(created.Status),
		SlotStart:     created.SlotStart,
		QRPayload:     created.QRPayload,
		CreatedAt:     created.CreatedAt,
	}, nil
}

// releaseReservation возвращает зарезервированную ёмкость при откате.
// Ошибка освобождения логируется, но не маскирует исходную ошибку.
func (uc *UseCase) releaseReservation(ctx context.Context, token *capacity.ReservationToken) {
	if err := uc.allocator.Release(ctx, token); err != nil {
		uc.logger.Error("CreateBooking: rollback release failed for slot=%d token=%s: %v",
			token.SlotID, token.ID, err)
	}
}

// mapAllocatorError транслирует ошибки аллокатора в ошибки usecase
func (uc *UseCase) mapAllocatorError(err error, slotID int64) error {
	switch {
	case errors.Is(err, capacity.ErrSlotNotFound):
		return fmt.Errorf("%w: slot=%d", ErrSlotNotFound, slotID)
	case errors.Is(err, capacity.ErrSlotUnavailable):
		return fmt.Errorf("%w: slot=%d", ErrSlotUnavailable, slotID)
	case errors.Is(err, capacity.ErrCapacityExceeded):
		return fmt.Errorf("%w: slot=%d", ErrCapacityExceeded, slotID)
	case errors.Is(err, capacity.ErrInvalidUnits):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, capacity.ErrConflictRetryExhausted):
		return fmt.Errorf("%w: slot=%d", ErrConflictRetryExhausted, slotID)
	default:
		return fmt.Errorf("%w: Execute - reserve capacity: %v", ErrInternal, err)
	}
}
