package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/api/middleware"
	createBooking "github.com/m04kA/TCM-VisitService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgTempleNotFound     = "храм не найден"
	msgTempleInactive     = "храм закрыт для посещений"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот недоступен для бронирования"
	msgSlotInPast         = "слот уже начался"
	msgCapacityExceeded   = "в слоте недостаточно свободных мест"
	msgConflictExhausted  = "не удалось забронировать из-за высокой нагрузки, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrTempleNotFound):
			h.logger.Warn("POST /bookings - Temple not found: temple_id=%d", req.TempleID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		case errors.Is(err, createBooking.ErrTempleInactive):
			h.logger.Warn("POST /bookings - Temple inactive: temple_id=%d", req.TempleID)
			handlers.RespondConflict(w, msgTempleInactive)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: slot_id=%d, visitors=%d",
				req.SlotID, req.VisitorsCount)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrConflictRetryExhausted):
			h.logger.Warn("POST /bookings - Conflict retries exhausted: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgConflictExhausted)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, slot_id=%d, error=%v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%d, slot_id=%d",
		result.BookingID, userID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
