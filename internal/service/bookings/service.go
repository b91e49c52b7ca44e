package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	bookingRepo "github.com/m04kA/TCM-VisitService/internal/infra/storage/booking"
	"github.com/m04kA/TCM-VisitService/internal/service/bookings/models"
	"github.com/m04kA/TCM-VisitService/internal/service/capacity"
)

// maxTxRetries число повторов сериализуемой транзакции отмены при конфликтах
const maxTxRetries = 3

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo BookingRepository
	allocator   CapacityAllocator
	txManager   TransactionManager
	timeProv    TimeProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	allocator CapacityAllocator,
	txManager TransactionManager,
	timeProv TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		allocator:   allocator,
		txManager:   txManager,
		timeProv:    timeProv,
		logger:      logger,
	}
}

// GetByID получает бронирование по внутреннему ID
// Паломник может видеть только своё бронирование, оператор - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.ActorRole) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(booking, userID, role); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetByBookingID получает бронирование по публичному идентификатору ("TCM...")
func (s *Service) GetByBookingID(ctx context.Context, bookingID string, userID int64, role domain.ActorRole) (*models.BookingResponse, error) {
	s.logger.Info("GetByBookingID: fetching booking=%s for user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByBookingID: booking=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByBookingID: repository error for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByBookingID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(booking, userID, role); err != nil {
		s.logger.Warn("GetByBookingID: access denied for user=%d to booking=%s", userID, bookingID)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus изменяет статус бронирования.
//
// Отмена (cancelled) доступна владельцу бронирования и оператору; паломник
// может отменить только пока до начала слота остаётся строго больше окна
// отмены. Отмена возвращает места слоту: переход статуса и декремент
// счётчика выполняются в одной сериализуемой транзакции, причём переход
// условный - повторная отмена не затронет строк и не уменьшит счётчик
// второй раз. Переходы completed и no_show доступны только оператору и
// ёмкость не возвращают: завершённый визит уже израсходовал свои места.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d role=%s",
		bookingID, req.Status, req.UserID, req.Role)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: status=%s", ErrInvalidStatus, req.Status)
	}

	role, err := models.ToDomainActorRole(req.Role)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid role=%s for booking id=%d", req.Role, bookingID)
		return fmt.Errorf("%w: role=%s", ErrInvalidInput, req.Role)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if newStatus == domain.StatusCancelled {
		return s.cancel(ctx, booking, req, role)
	}

	// Все переходы кроме отмены выполняет только оператор
	if role != domain.RoleOperator {
		s.logger.Warn("UpdateStatus: user=%d role=%s cannot set status=%s", req.UserID, role, newStatus)
		return ErrAccessDenied
	}

	if !booking.ValidStatusTransition(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatusFrom(ctx, bookingID, newStatus, allowedFrom(newStatus)); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			// Статус уже изменился конкурентным запросом
			return fmt.Errorf("%w: booking id=%d", ErrInvalidTransition, bookingID)
		default:
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: booking id=%d updated to status=%s", bookingID, newStatus)
	return nil
}

// cancel отменяет бронирование и возвращает его места слоту
func (s *Service) cancel(ctx context.Context, booking *domain.Booking, req *models.UpdateStatusRequest, role domain.ActorRole) error {
	// Отменить может владелец или оператор
	if booking.UserID != req.UserID && role != domain.RoleOperator {
		s.logger.Warn("cancel: access denied for user=%d to booking id=%d", req.UserID, booking.ID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("cancel: booking id=%d cannot be cancelled, status=%s", booking.ID, booking.Status)
		return ErrCannotCancel
	}

	// Оператор может отменить в любой момент; паломник - только пока до
	// начала слота строго больше окна отмены. Ровно на границе - отказ.
	if !domain.CanCancel(role, booking.SlotStart, s.timeProv.Now()) {
		s.logger.Warn("cancel: window closed for booking id=%d, slot starts at %s",
			booking.ID, booking.SlotStart.Format(time.RFC3339))
		return ErrCancellationWindowClosed
	}

	var lastErr error
	for attempt := 1; attempt <= maxTxRetries; attempt++ {
		err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// Условный переход: если статус уже не активен, строк не будет
			// затронуто и счётчик ёмкости останется нетронутым
			if err := s.bookingRepo.UpdateStatusFrom(txCtx, booking.ID, domain.StatusCancelled,
				[]domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}); err != nil {
				return err
			}

			if _, err := s.allocator.ReleaseUnits(txCtx, booking.SlotID, booking.VisitorsCount); err != nil {
				return err
			}

			if req.CancellationReason != nil && *req.CancellationReason != "" {
				if err := s.bookingRepo.SetCancellationReason(txCtx, booking.ID, *req.CancellationReason); err != nil {
					return err
				}
			}

			return nil
		})
		if err == nil {
			s.logger.Info("cancel: booking id=%d cancelled, released %d units to slot=%d",
				booking.ID, booking.VisitorsCount, booking.SlotID)
			return nil
		}

		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			// Конкурентный запрос уже отменил или завершил бронирование
			s.logger.Warn("cancel: booking id=%d already transitioned concurrently", booking.ID)
			return ErrCannotCancel
		case errors.Is(err, capacity.ErrSerializationConflict), isSerializationError(err):
			lastErr = err
			s.logger.Warn("cancel: serialization conflict for booking id=%d, attempt %d/%d",
				booking.ID, attempt, maxTxRetries)
		default:
			s.logger.Error("cancel: transaction failed for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: cancel - transaction failed: %v", ErrInternal, err)
		}
	}

	s.logger.Error("cancel: retries exhausted for booking id=%d: %v", booking.ID, lastErr)
	return fmt.Errorf("%w: booking id=%d", ErrConflictRetryExhausted, booking.ID)
}

// checkAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkAccess(booking *domain.Booking, userID int64, role domain.ActorRole) error {
	if booking.UserID == userID || role == domain.RoleOperator {
		return nil
	}
	return ErrAccessDenied
}

// allowedFrom возвращает статусы, из которых допустим переход в next
func allowedFrom(next domain.BookingStatus) []domain.BookingStatus {
	switch next {
	case domain.StatusConfirmed:
		return []domain.BookingStatus{domain.StatusPending}
	case domain.StatusCompleted, domain.StatusNoShow:
		return []domain.BookingStatus{domain.StatusConfirmed}
	default:
		return nil
	}
}

// isSerializationError распознаёт конфликт сериализации при коммите (40001)
// или deadlock (40P01)
func isSerializationError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
