package get_booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/api/middleware"
	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Принимает как внутренний числовой ID, так и публичный "TCM..."
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())
	if role == "" {
		role = domain.RolePilgrim
	}

	booking, err := h.getBooking(r, bookingIDStr, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, errBadIdentifier):
			h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %s", bookingIDStr)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingIDStr)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%s, user_id=%d", bookingIDStr, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingIDStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s, user_id=%d",
		bookingIDStr, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

var errBadIdentifier = errors.New("bad booking identifier")

func (h *Handler) getBooking(r *http.Request, raw string, userID int64, role domain.ActorRole) (interface{}, error) {
	if strings.HasPrefix(raw, "TCM") {
		return h.service.GetByBookingID(r.Context(), raw, userID, role)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errBadIdentifier
	}
	return h.service.GetByID(r.Context(), id, userID, role)
}
