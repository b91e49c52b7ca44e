package get_temple

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/service/temples"
)

const (
	msgInvalidTempleID = "некорректный ID храма"
	msgTempleNotFound  = "храм не найден"
)

type Handler struct {
	service TempleService
	logger  Logger
}

func NewHandler(service TempleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/temples/{templeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templeID, err := strconv.ParseInt(vars["templeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /temples/{id} - Invalid temple ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTempleID)
		return
	}

	temple, err := h.service.GetByID(r.Context(), templeID)
	if err != nil {
		switch {
		case errors.Is(err, temples.ErrTempleNotFound):
			h.logger.Warn("GET /temples/{id} - Temple not found: temple_id=%d", templeID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		default:
			h.logger.Error("GET /temples/{id} - Failed to get temple: temple_id=%d, error=%v", templeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /temples/{id} - Temple retrieved: temple_id=%d", templeID)
	handlers.RespondJSON(w, http.StatusOK, temple)
}
