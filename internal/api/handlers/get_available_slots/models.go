package get_available_slots

import (
	"github.com/m04kA/TCM-VisitService/internal/domain"
	getAvailableSlots "github.com/m04kA/TCM-VisitService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	TempleID int64                    `json:"templeId"`
	Date     string                   `json:"date"` // "2026-08-28"
	Slots    []getAvailableSlots.Slot `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	return &SlotsResponse{
		TempleID: resp.TempleID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    resp.Slots,
	}
}
