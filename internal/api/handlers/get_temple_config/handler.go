package get_temple_config

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

// Handle GET /api/v1/temples/{templeId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templeID, err := strconv.ParseInt(vars["templeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /temples/{id}/config - Invalid temple ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTempleID)
		return
	}

	config, err := h.service.GetConfig(r.Context(), templeID)
	if err != nil {
		switch {
		case errors.Is(err, temples.ErrTempleNotFound):
			h.logger.Warn("GET /temples/{id}/config - Temple not found: temple_id=%d", templeID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		default:
			h.logger.Error("GET /temples/{id}/config - Failed to get config: temple_id=%d, error=%v",
				templeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /temples/{id}/config - Config retrieved: temple_id=%d", templeID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
