package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Выполняется до любых обращений к хранилищу - некорректный запрос
// не оставляет частичного состояния.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TempleID <= 0 {
		return fmt.Errorf("%w: templeID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.VisitorsCount < domain.MinVisitorsPerBooking || req.VisitorsCount > domain.MaxVisitorsPerBooking {
		return fmt.Errorf("%w: visitorsCount must be between %d and %d",
			ErrInvalidInput, domain.MinVisitorsPerBooking, domain.MaxVisitorsPerBooking)
	}

	if len(req.Visitors) != req.VisitorsCount {
		return fmt.Errorf("%w: visitors array length (%d) must match visitorsCount (%d)",
			ErrInvalidInput, len(req.Visitors), req.VisitorsCount)
	}

	for i, v := range req.Visitors {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("%w: visitor #%d has empty name", ErrInvalidInput, i+1)
		}
		if v.Age < 0 {
			return fmt.Errorf("%w: visitor #%d has negative age", ErrInvalidInput, i+1)
		}
	}

	if req.SpecialRequest != nil && len(*req.SpecialRequest) > domain.MaxSpecialRequestLength {
		return fmt.Errorf("%w: special request exceeds %d characters",
			ErrInvalidInput, domain.MaxSpecialRequestLength)
	}

	return nil
}
