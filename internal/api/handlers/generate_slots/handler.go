package generate_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/api/middleware"
	"github.com/m04kA/TCM-VisitService/internal/domain"
	generateSlots "github.com/m04kA/TCM-VisitService/internal/usecase/generate_slots"
)

const (
	msgInvalidTempleID    = "некорректный ID храма"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast         = "дата уже прошла"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgTempleNotFound     = "храм не найден"
	msgTempleInactive     = "храм закрыт для посещений"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	Date string `json:"date"` // "2026-08-28"
}

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/temples/{templeId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templeID, err := strconv.ParseInt(vars["templeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /temples/{id}/slots/generate - Invalid temple ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTempleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /temples/{id}/slots/generate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /temples/{id}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /temples/{id}/slots/generate - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{
		UserID:   userID,
		Role:     string(role),
		TempleID: templeID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrAccessDenied):
			h.logger.Warn("POST /temples/{id}/slots/generate - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /temples/{id}/slots/generate - Invalid input: temple_id=%d, error=%v",
				templeID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, generateSlots.ErrInvalidDate):
			h.logger.Warn("POST /temples/{id}/slots/generate - Date in past: temple_id=%d, date=%s",
				templeID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, generateSlots.ErrTempleNotFound):
			h.logger.Warn("POST /temples/{id}/slots/generate - Temple not found: temple_id=%d", templeID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		case errors.Is(err, generateSlots.ErrTempleInactive):
			h.logger.Warn("POST /temples/{id}/slots/generate - Temple inactive: temple_id=%d", templeID)
			handlers.RespondConflict(w, msgTempleInactive)

		default:
			h.logger.Error("POST /temples/{id}/slots/generate - Failed to generate slots: temple_id=%d, error=%v",
				templeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /temples/{id}/slots/generate - Created %d of %d slots: temple_id=%d, date=%s",
		result.Created, result.Total, templeID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
