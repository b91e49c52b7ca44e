package update_temple_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TCM-VisitService/internal/api/handlers"
	"github.com/m04kA/TCM-VisitService/internal/api/middleware"
	"github.com/m04kA/TCM-VisitService/internal/service/temples"
)

const (
	msgInvalidTempleID    = "некорректный ID храма"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgTempleNotFound     = "храм не найден"
	msgInvalidConfig      = "некорректная конфигурация ёмкости"
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

// Handle PUT /api/v1/temples/{templeId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templeID, err := strconv.ParseInt(vars["templeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /temples/{id}/config - Invalid temple ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTempleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /temples/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /temples/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.UpdateConfig(r.Context(), templeID, req.ToServiceRequest(userID, role))
	if err != nil {
		switch {
		case errors.Is(err, temples.ErrAccessDenied):
			h.logger.Warn("PUT /temples/{id}/config - Access denied: temple_id=%d, user_id=%d",
				templeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, temples.ErrInvalidInput):
			h.logger.Warn("PUT /temples/{id}/config - Invalid config: temple_id=%d, error=%v", templeID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, temples.ErrTempleNotFound):
			h.logger.Warn("PUT /temples/{id}/config - Temple not found: temple_id=%d", templeID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		default:
			h.logger.Error("PUT /temples/{id}/config - Failed to update config: temple_id=%d, error=%v",
				templeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /temples/{id}/config - Config updated: temple_id=%d, user_id=%d", templeID, userID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
