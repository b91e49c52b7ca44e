package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error)
}

// TempleRepository интерфейс репозитория храмов
type TempleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Temple, error)
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
