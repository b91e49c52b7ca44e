package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/domain"
	getAvailableSlots "github.com/m04kA/TCM-VisitService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTempleID = "некорректный ID храма"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast      = "дата уже прошла"
	msgTempleNotFound  = "храм не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/temples/{templeId}/slots?date=2026-08-28
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templeID, err := strconv.ParseInt(vars["templeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /temples/{id}/slots - Invalid temple ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTempleID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /temples/{id}/slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		TempleID: templeID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /temples/{id}/slots - Invalid input: temple_id=%d, error=%v", templeID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /temples/{id}/slots - Date in past: temple_id=%d, date=%s", templeID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrTempleNotFound):
			h.logger.Warn("GET /temples/{id}/slots - Temple not found: temple_id=%d", templeID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		default:
			h.logger.Error("GET /temples/{id}/slots - Failed to get slots: temple_id=%d, error=%v", templeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /temples/{id}/slots - Retrieved %d slots: temple_id=%d, date=%s",
		len(result.Slots), templeID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
