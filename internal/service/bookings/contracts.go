package bookings

import (
	"context"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, next domain.BookingStatus, allowedFrom []domain.BookingStatus) error
	SetCancellationReason(ctx context.Context, id int64, reason string) error
}

// CapacityAllocator интерфейс аллокатора ёмкости слотов.
// ReleaseUnits используется внутри транзакции отмены: exactly-once
// обеспечивается условным переходом статуса в той же транзакции.
type CapacityAllocator interface {
	ReleaseUnits(ctx context.Context, slotID int64, units int) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
