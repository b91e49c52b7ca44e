package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
	"github.com/m04kA/TCM-VisitService/pkg/types"
)

// UseCase генерация сетки слотов храма на дату
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

// Execute генерирует слоты рабочего дня храма на указанную дату.
// Сетка строится от времени открытия до закрытия с шагом в длительность
// слота; ёмкость каждого слота берётся из конфигурации храма на момент
// генерации. Повторный запуск идемпотентен - уже существующие слоты
// пропускаются и их счётчики не трогаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: temple=%d, date=%s, user=%d",
		req.TempleID, req.Date.Format(domain.DateFormat), req.UserID)

	now := uc.timeProvider.Now()

	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	temple, err := uc.temples.GetByID(ctx, req.TempleID)
	if err != nil {
		if errors.Is(err, templeStorage.ErrTempleNotFound) {
			uc.logger.Warn("GenerateSlots: temple id=%d not found", req.TempleID)
			return nil, ErrTempleNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get temple id=%d: %v", req.TempleID, err)
		return nil, fmt.Errorf("%w: failed to get temple: %v", ErrInternal, err)
	}

	if !temple.IsActive {
		uc.logger.Warn("GenerateSlots: temple id=%d is inactive", req.TempleID)
		return nil, ErrTempleInactive
	}

	slots, err := buildDaySlots(temple, req.Date)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to build slots for temple id=%d: %v", req.TempleID, err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	created, err := uc.slots.CreateBatch(ctx, slots)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to persist slots for temple id=%d: %v", req.TempleID, err)
		return nil, fmt.Errorf("%w: failed to persist slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateSlots: created %d of %d slots for temple=%d, date=%s",
		created, len(slots), req.TempleID, req.Date.Format(domain.DateFormat))

	return &Response{
		TempleID: req.TempleID,
		Date:     req.Date,
		Created:  created,
		Total:    len(slots),
	}, nil
}

// buildDaySlots строит сетку слотов рабочего дня храма
func buildDaySlots(temple *domain.Temple, date time.Time) ([]*domain.Slot, error) {
	openTime := temple.OpenTime
	closeTime := temple.CloseTime
	if openTime.IsZero() || closeTime.IsZero() {
		openTime = types.TimeString(fmt.Sprintf("%02d:00", domain.SimulationStartHour))
		closeTime = types.TimeString(fmt.Sprintf("%02d:00", domain.SimulationEndHour))
	}

	duration := temple.SlotDuration()
	capacity := temple.Capacity.MaxVisitorsPerSlot

	slots := make([]*domain.Slot, 0)
	for start := openTime; start.IsBefore(closeTime); {
		end, err := start.AddMinutes(duration)
		if err != nil {
			return nil, err
		}
		// Последний неполный слот за время закрытия не создаётся.
		// AddMinutes заворачивается через полночь - обрыв и на этом.
		if end.IsAfter(closeTime) || !start.IsBefore(end) {
			break
		}

		slots = append(slots, &domain.Slot{
			TempleID:        temple.ID,
			Date:            date,
			StartTime:       start,
			EndTime:         end,
			MaxCapacity:     capacity,
			CurrentBookings: 0,
			IsAvailable:     true,
		})

		start = end
	}

	return slots, nil
}
