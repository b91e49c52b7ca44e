package temples

import (
	"context"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// TempleRepository интерфейс репозитория храмов
type TempleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Temple, error)
	UpdateCapacityConfig(ctx context.Context, templeID int64, cfg domain.CapacityConfig) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
