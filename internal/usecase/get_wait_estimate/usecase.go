package get_wait_estimate

import (
	"context"
	"errors"
	"fmt"

	slotStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/slot"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
)

// UseCase оценка времени ожидания в очереди на слот посещения
type UseCase struct {
	slots   SlotRepository
	temples TempleRepository
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots SlotRepository, temples TempleRepository, logger Logger) *UseCase {
	return &UseCase{
		slots:   slots,
		temples: temples,
		logger:  logger,
	}
}

// Execute оценивает время ожидания для слота посещения.
// Число людей в очереди по умолчанию берётся из счётчика занятости слота;
// вызывающий может передать живое значение явно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWaitEstimate: temple=%d, slot=%d", req.TempleID, req.SlotID)

	if req.TempleID <= 0 {
		return nil, fmt.Errorf("%w: templeID must be positive", ErrInvalidInput)
	}
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.CurrentVisitors != nil && *req.CurrentVisitors < 0 {
		return nil, fmt.Errorf("%w: currentVisitors must not be negative", ErrInvalidInput)
	}
	if req.Lanes != nil && *req.Lanes <= 0 {
		return nil, fmt.Errorf("%w: lanes must be positive", ErrInvalidInput)
	}

	temple, err := uc.temples.GetByID(ctx, req.TempleID)
	if err != nil {
		if errors.Is(err, templeStorage.ErrTempleNotFound) {
			uc.logger.Warn("GetWaitEstimate: temple id=%d not found", req.TempleID)
			return nil, ErrTempleNotFound
		}
		uc.logger.Error("GetWaitEstimate: failed to get temple id=%d: %v", req.TempleID, err)
		return nil, fmt.Errorf("%w: failed to get temple: %v", ErrInternal, err)
	}

	slot, err := uc.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotStorage.ErrSlotNotFound) {
			uc.logger.Warn("GetWaitEstimate: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("GetWaitEstimate: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if slot.TempleID != req.TempleID {
		return nil, fmt.Errorf("%w: slot=%d does not belong to temple=%d", ErrSlotNotFound, req.SlotID, req.TempleID)
	}

	visitors := slot.CurrentBookings
	if req.CurrentVisitors != nil {
		visitors = *req.CurrentVisitors
	}

	lanes := 0
	if req.Lanes != nil {
		lanes = *req.Lanes
	}

	result := estimate(visitors, temple.Capacity.MaxVisitorsPerSlot, temple.SlotDuration(), lanes)
	if result == nil {
		uc.logger.Warn("GetWaitEstimate: temple id=%d has no slot capacity configured", req.TempleID)
	}

	return &Response{
		TempleID:        req.TempleID,
		SlotID:          req.SlotID,
		CurrentVisitors: visitors,
		Estimate:        result,
	}, nil
}
