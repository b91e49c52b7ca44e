package get_simulation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/domain"
	getSimulation "github.com/m04kA/TCM-VisitService/internal/usecase/get_simulation"
)

const (
	msgInvalidTempleID = "некорректный ID храма"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTempleNotFound  = "храм не найден"
)

type Handler struct {
	useCase GetSimulationUseCase
	logger  Logger
}

func NewHandler(useCase GetSimulationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/temples/{templeId}/simulation?date=2026-08-28
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templeID, err := strconv.ParseInt(vars["templeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /temples/{id}/simulation - Invalid temple ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTempleID)
		return
	}

	// Дата опциональна, по умолчанию - сегодня
	var date time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err = time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /temples/{id}/simulation - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getSimulation.Request{
		TempleID: templeID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSimulation.ErrInvalidInput):
			h.logger.Warn("GET /temples/{id}/simulation - Invalid input: temple_id=%d, error=%v", templeID, err)
			handlers.RespondBadRequest(w, msgInvalidTempleID)

		case errors.Is(err, getSimulation.ErrTempleNotFound):
			h.logger.Warn("GET /temples/{id}/simulation - Temple not found: temple_id=%d", templeID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		default:
			h.logger.Error("GET /temples/{id}/simulation - Failed to build simulation: temple_id=%d, error=%v",
				templeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /temples/{id}/simulation - Simulation built: temple_id=%d, records=%d",
		templeID, len(result.HourlyData))
	handlers.RespondJSON(w, http.StatusOK, result)
}
