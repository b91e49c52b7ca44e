package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
)

// UseCase получение слотов храма на дату с остатком свободных мест
type UseCase struct {
	slots        SlotRepository
	temples      TempleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slots SlotRepository,
	temples TempleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		temples:      temples,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает слоты храма на дату.
// Остаток мест считается из счётчика current_bookings - отдельного учёта
// по бронированиям не ведётся, источник истины один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: temple=%d, date=%s", req.TempleID, req.Date.Format(domain.DateFormat))

	now := uc.timeProvider.Now()

	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	temple, err := uc.temples.GetByID(ctx, req.TempleID)
	if err != nil {
		if errors.Is(err, templeStorage.ErrTempleNotFound) {
			uc.logger.Warn("GetAvailableSlots: temple id=%d not found", req.TempleID)
			return nil, ErrTempleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get temple id=%d: %v", req.TempleID, err)
		return nil, fmt.Errorf("%w: failed to get temple: %v", ErrInternal, err)
	}

	// Закрытый храм отдаёт пустой список, а не ошибку
	if !temple.IsActive {
		uc.logger.Info("GetAvailableSlots: temple id=%d is inactive", req.TempleID)
		return &Response{TempleID: req.TempleID, Date: req.Date, Slots: []Slot{}}, nil
	}

	slots, err := uc.slots.GetByTempleAndDate(ctx, req.TempleID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		// Уже начавшиеся слоты не предлагаются
		start, err := s.StartDateTime()
		if err != nil {
			uc.logger.Error("GetAvailableSlots: slot id=%d has invalid start time: %v", s.ID, err)
			continue
		}
		if !start.After(now) {
			continue
		}

		result = append(result, Slot{
			ID:                s.ID,
			StartTime:         s.StartTime.String(),
			EndTime:           s.EndTime.String(),
			MaxCapacity:       s.MaxCapacity,
			CurrentBookings:   s.CurrentBookings,
			RemainingCapacity: s.RemainingCapacity(),
			IsAvailable:       s.IsAvailable && !s.IsFull(),
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for temple=%d, date=%s",
		len(result), req.TempleID, req.Date.Format(domain.DateFormat))

	return &Response{
		TempleID: req.TempleID,
		Date:     req.Date,
		Slots:    result,
	}, nil
}
