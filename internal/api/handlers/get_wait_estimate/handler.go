package get_wait_estimate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	getWaitEstimate "github.com/m04kA/TCM-VisitService/internal/usecase/get_wait_estimate"
)

const (
	msgInvalidTempleID = "некорректный ID храма"
	msgInvalidSlotID   = "некорректный ID слота"
	msgInvalidVisitors = "некорректное число посетителей"
	msgInvalidLanes    = "некорректное число полос"
	msgTempleNotFound  = "храм не найден"
	msgSlotNotFound    = "слот не найден"
)

type Handler struct {
	useCase GetWaitEstimateUseCase
	logger  Logger
}

func NewHandler(useCase GetWaitEstimateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/temples/{templeId}/slots/{slotId}/wait-estimate?currentVisitors=120&lanes=2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templeID, err := strconv.ParseInt(vars["templeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /temples/{id}/slots/{id}/wait-estimate - Invalid temple ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTempleID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /temples/{id}/slots/{id}/wait-estimate - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	req := &getWaitEstimate.Request{
		TempleID: templeID,
		SlotID:   slotID,
	}

	// Живое число людей в очереди - необязательный override счётчика слота
	if visitorsStr := r.URL.Query().Get("currentVisitors"); visitorsStr != "" {
		visitors, err := strconv.Atoi(visitorsStr)
		if err != nil || visitors < 0 {
			h.logger.Warn("GET /temples/{id}/slots/{id}/wait-estimate - Invalid visitors count: %q", visitorsStr)
			handlers.RespondBadRequest(w, msgInvalidVisitors)
			return
		}
		req.CurrentVisitors = &visitors
	}

	if lanesStr := r.URL.Query().Get("lanes"); lanesStr != "" {
		lanes, err := strconv.Atoi(lanesStr)
		if err != nil || lanes <= 0 {
			h.logger.Warn("GET /temples/{id}/slots/{id}/wait-estimate - Invalid lanes: %q", lanesStr)
			handlers.RespondBadRequest(w, msgInvalidLanes)
			return
		}
		req.Lanes = &lanes
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getWaitEstimate.ErrInvalidInput):
			h.logger.Warn("GET /temples/{id}/slots/{id}/wait-estimate - Invalid input: temple_id=%d, slot_id=%d, error=%v",
				templeID, slotID, err)
			handlers.RespondBadRequest(w, msgInvalidVisitors)

		case errors.Is(err, getWaitEstimate.ErrTempleNotFound):
			h.logger.Warn("GET /temples/{id}/slots/{id}/wait-estimate - Temple not found: temple_id=%d", templeID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		case errors.Is(err, getWaitEstimate.ErrSlotNotFound):
			h.logger.Warn("GET /temples/{id}/slots/{id}/wait-estimate - Slot not found: temple_id=%d, slot_id=%d",
				templeID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("GET /temples/{id}/slots/{id}/wait-estimate - Failed to estimate: temple_id=%d, slot_id=%d, error=%v",
				templeID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /temples/{id}/slots/{id}/wait-estimate - Estimate built: temple_id=%d, slot_id=%d, visitors=%d",
		templeID, slotID, result.CurrentVisitors)
	handlers.RespondJSON(w, http.StatusOK, result)
}
