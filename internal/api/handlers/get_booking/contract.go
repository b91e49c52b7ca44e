package get_booking

import (
	"context"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, userID int64, role domain.ActorRole) (*models.BookingResponse, error)
	GetByBookingID(ctx context.Context, bookingID string, userID int64, role domain.ActorRole) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
