package get_simulation

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/internal/integrations/weatherservice"
)

// TempleRepository интерфейс репозитория храмов
type TempleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Temple, error)
}

// WeatherClient интерфейс клиента погодного сервиса
type WeatherClient interface {
	GetCurrentWithGracefulDegradation(ctx context.Context, latitude, longitude float64) (*weatherservice.Weather, error)
}

// NoiseSource источник шумового коэффициента кривой посещаемости.
// Интерфейс позволяет подменить случайность в тестах детерминированной
// последовательностью.
type NoiseSource interface {
	Factor() float64
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

// RandomNoise источник шума на math/rand/v2, равномерный на
// [NoiseFactorMin, NoiseFactorMax)
type RandomNoise struct{}

// Factor возвращает случайный шумовой коэффициент
func (RandomNoise) Factor() float64 {
	return domain.NoiseFactorMin + rand.Float64()*(domain.NoiseFactorMax-domain.NoiseFactorMin)
}
