package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if domain.ActorRole(req.Role) != domain.RoleOperator {
		return ErrAccessDenied
	}

	if req.TempleID <= 0 {
		return fmt.Errorf("%w: templeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reqDate := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())
	if reqDate.Before(today) {
		return ErrInvalidDate
	}

	return nil
}
