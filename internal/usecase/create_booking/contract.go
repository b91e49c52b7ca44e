package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/internal/service/capacity"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// TempleRepository интерфейс репозитория храмов
type TempleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Temple, error)
}

// CapacityAllocator интерфейс аллокатора ёмкости слотов.
// Commit погашает токен после сохранения бронирования, Release
// возвращает резерв при откате.
type CapacityAllocator interface {
	Reserve(ctx context.Context, slotID int64, units int) (*capacity.ReservationToken, error)
	Release(ctx context.Context, token *capacity.ReservationToken) error
	Commit(token *capacity.ReservationToken)
}

// IdentifierGenerator интерфейс генератора публичных идентификаторов бронирований
type IdentifierGenerator interface {
	Next() string
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
