package update_temple_config

import (
	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/internal/service/temples/models"
)

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	MaxVisitorsPerSlot int                 `json:"maxVisitorsPerSlot"`
	TotalDailyCapacity int                 `json:"totalDailyCapacity"`
	PeakWindows        []domain.PeakWindow `json:"peakWindows,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(userID int64, role domain.ActorRole) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:             userID,
		Role:               string(role),
		MaxVisitorsPerSlot: r.MaxVisitorsPerSlot,
		TotalDailyCapacity: r.TotalDailyCapacity,
		PeakWindows:        r.PeakWindows,
	}
}
