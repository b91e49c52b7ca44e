package get_simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
)

// neutralWeather подставляется при недоступности погодного сервиса
var neutralWeather = domain.WeatherImpact{
	Condition:   "unknown",
	Temperature: 0,
	ImpactLevel: "none",
}

// UseCase симуляция посещаемости храма на день
type UseCase struct {
	temples       TempleRepository
	weatherClient WeatherClient
	noise         NoiseSource
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	temples TempleRepository,
	weatherClient WeatherClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		temples:       temples,
		weatherClient: weatherClient,
		noise:         RandomNoise{},
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute строит симуляцию посещаемости храма на дату.
// Погода подмешивается с graceful degradation: недоступность погодного
// сервиса не валит запрос, снимок уходит с нейтральным влиянием погоды.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSimulation: temple=%d", req.TempleID)

	if req.TempleID <= 0 {
		return nil, fmt.Errorf("%w: templeID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	date := req.Date
	if date.IsZero() {
		date = now
	}

	temple, err := uc.temples.GetByID(ctx, req.TempleID)
	if err != nil {
		if errors.Is(err, templeStorage.ErrTempleNotFound) {
			uc.logger.Warn("GetSimulation: temple id=%d not found", req.TempleID)
			return nil, ErrTempleNotFound
		}
		uc.logger.Error("GetSimulation: failed to get temple id=%d: %v", req.TempleID, err)
		return nil, fmt.Errorf("%w: failed to get temple: %v", ErrInternal, err)
	}

	snapshot := buildSnapshot(temple, date, now, uc.noise)
	snapshot.WeatherImpact = uc.fetchWeather(ctx, temple)

	uc.logger.Info("GetSimulation: %d hourly records for temple=%d, date=%s",
		len(snapshot.HourlyData), req.TempleID, date.Format(domain.DateFormat))

	return fromSnapshot(snapshot), nil
}

// fetchWeather получает влияние погоды; при сбое - нейтральные значения
func (uc *UseCase) fetchWeather(ctx context.Context, temple *domain.Temple) domain.WeatherImpact {
	if uc.weatherClient == nil {
		return neutralWeather
	}

	weather, err := uc.weatherClient.GetCurrentWithGracefulDegradation(
		ctx, temple.Coordinates.Latitude, temple.Coordinates.Longitude)
	if err != nil {
		uc.logger.Warn("GetSimulation: weather degraded for temple=%d: %v", temple.ID, err)
		return neutralWeather
	}

	return domain.WeatherImpact{
		Condition:   weather.Condition,
		Temperature: weather.Temperature,
		ImpactLevel: weather.ImpactLevel,
	}
}
