package update_booking_status

import (
	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"` // "cancelled" | "completed" | "no_show" | "confirmed"
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64, role domain.ActorRole) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID:             userID,
		Role:               string(role),
		Status:             r.Status,
		CancellationReason: r.CancellationReason,
	}
}
