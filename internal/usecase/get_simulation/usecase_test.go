package get_simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
	"github.com/m04kA/TCM-VisitService/internal/integrations/weatherservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTemples struct {
	temples map[int64]*domain.Temple
}

func (f *fakeTemples) GetByID(_ context.Context, id int64) (*domain.Temple, error) {
	t, ok := f.temples[id]
	if !ok {
		return nil, templeStorage.ErrTempleNotFound
	}
	return t, nil
}

type fakeWeather struct {
	weather *weatherservice.Weather
	err     error
}

func (f *fakeWeather) GetCurrentWithGracefulDegradation(_ context.Context, _, _ float64) (*weatherservice.Weather, error) {
	return f.weather, f.err
}

// unitNoise фиксирует шумовой коэффициент: кривая полностью детерминирована
type unitNoise struct{ factor float64 }

func (n unitNoise) Factor() float64 { return n.factor }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func testTemple() *domain.Temple {
	return &domain.Temple{
		ID:          1,
		Name:        "Main Temple",
		Coordinates: domain.Coordinates{Latitude: 23.18, Longitude: 75.77},
		IsActive:    true,
		Capacity: domain.CapacityConfig{
			MaxVisitorsPerSlot: 100,
			TotalDailyCapacity: 3000,
		},
	}
}

func setupTestUseCase(temple *domain.Temple, weather WeatherClient, now time.Time, factor float64) *UseCase {
	uc := NewUseCase(&fakeTemples{temples: map[int64]*domain.Temple{temple.ID: temple}}, weather, nopLogger{})
	uc.noise = unitNoise{factor: factor}
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestUseCase_Execute_DeterministicCurve(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := setupTestUseCase(testTemple(), nil, now, 1.0)

	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})

	require.NoError(t, err)
	// Рабочие часы по умолчанию: 6..22 включительно
	require.Len(t, resp.HourlyData, 17)
	assert.Equal(t, 6, resp.HourlyData[0].Hour)
	assert.Equal(t, 22, resp.HourlyData[16].Hour)

	// Непиковый час: 100 * 0.7 = 70
	offPeak := resp.HourlyData[0] // 06:00
	assert.Equal(t, 70, offPeak.ExpectedVisitors)
	assert.Equal(t, 70, offPeak.ActualVisitors)
	assert.Equal(t, 70, offPeak.OccupancyPercentage)
	assert.Equal(t, string(domain.DensityMedium), offPeak.CrowdDensity)
	assert.Equal(t, 15, offPeak.WaitTimeMinutes)

	// Пиковый час (8-10): 100 * 1.6 = 160, занятость ограничена 100%
	peak := resp.HourlyData[2] // 08:00
	assert.Equal(t, 160, peak.ExpectedVisitors)
	assert.Equal(t, 160, peak.ActualVisitors)
	assert.Equal(t, 100, peak.OccupancyPercentage)
	assert.Equal(t, string(domain.DensityCritical), peak.CrowdDensity)
	assert.Equal(t, 25, peak.WaitTimeMinutes)
}

func TestUseCase_Execute_Areas(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := setupTestUseCase(testTemple(), nil, now, 1.0)

	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})
	require.NoError(t, err)

	offPeak := resp.HourlyData[0]
	require.Len(t, offPeak.Areas, 2)

	main := offPeak.Areas[0]
	assert.Equal(t, "Main Temple", main.Name)
	assert.Equal(t, 100, main.Capacity)
	assert.Equal(t, 70, main.Occupancy)
	assert.Equal(t, 70, main.OccupancyPercentage)
	assert.InDelta(t, 23.18, main.Coordinates.Latitude, 1e-9)

	// Зона очереди: половина ёмкости и потока, смещённые координаты
	queue := offPeak.Areas[1]
	assert.Equal(t, "Queue Area", queue.Name)
	assert.Equal(t, 50, queue.Capacity)
	assert.Equal(t, 35, queue.Occupancy)
	assert.Equal(t, 70, queue.OccupancyPercentage)
	assert.Equal(t, string(domain.DensityMedium), queue.Density)
	assert.InDelta(t, 23.181, queue.Coordinates.Latitude, 1e-9)
	assert.InDelta(t, 75.771, queue.Coordinates.Longitude, 1e-9)

	// Пиковый час: занятость основной зоны обрезается ёмкостью
	peak := resp.HourlyData[2]
	assert.Equal(t, 100, peak.Areas[0].Occupancy)
	assert.Equal(t, 50, peak.Areas[1].Occupancy)
}

func TestUseCase_Execute_CurrentStatusFollowsClock(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	uc := setupTestUseCase(testTemple(), nil, now, 1.0)

	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})

	require.NoError(t, err)
	assert.Equal(t, 10, resp.CurrentStatus.Hour)

	// Вне рабочих часов статусом становится первая запись
	uc = setupTestUseCase(testTemple(), nil, time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC), 1.0)
	resp, err = uc.Execute(context.Background(), &Request{TempleID: 1})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.CurrentStatus.Hour)
}

func TestUseCase_Execute_PeakWindows(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	temple := testTemple()
	temple.Capacity.PeakWindows = []domain.PeakWindow{{StartHour: 12, EndHour: 13}}
	uc := setupTestUseCase(temple, nil, now, 1.0)

	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})

	require.NoError(t, err)
	require.Len(t, resp.PeakWindows, 1)
	assert.Equal(t, 12, resp.PeakWindows[0].StartHour)

	// Сконфигурированное окно вытесняет окна по умолчанию
	assert.Equal(t, 160, resp.HourlyData[6].ExpectedVisitors) // 12:00
	assert.Equal(t, 70, resp.HourlyData[2].ExpectedVisitors)  // 08:00
}

func TestUseCase_Execute_DefaultCapacityFallback(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	temple := testTemple()
	temple.Capacity.MaxVisitorsPerSlot = 0
	uc := setupTestUseCase(temple, nil, now, 1.0)

	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})

	require.NoError(t, err)
	// 300 * 0.7 = 210
	assert.Equal(t, 210, resp.HourlyData[0].ExpectedVisitors)
}

func TestUseCase_Execute_WeatherGracefulDegradation(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// Погодный сервис недоступен - нейтральное влияние, запрос не падает
	uc := setupTestUseCase(testTemple(), &fakeWeather{err: errors.New("connection refused")}, now, 1.0)
	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})
	require.NoError(t, err)
	assert.Equal(t, "unknown", resp.WeatherImpact.Condition)
	assert.Equal(t, "none", resp.WeatherImpact.ImpactLevel)

	// Клиент не сконфигурирован вовсе
	uc = setupTestUseCase(testTemple(), nil, now, 1.0)
	resp, err = uc.Execute(context.Background(), &Request{TempleID: 1})
	require.NoError(t, err)
	assert.Equal(t, "unknown", resp.WeatherImpact.Condition)

	// Сервис доступен - влияние передаётся как есть
	uc = setupTestUseCase(testTemple(), &fakeWeather{weather: &weatherservice.Weather{
		Condition:   "rain",
		Temperature: 24.5,
		ImpactLevel: "medium",
	}}, now, 1.0)
	resp, err = uc.Execute(context.Background(), &Request{TempleID: 1})
	require.NoError(t, err)
	assert.Equal(t, "rain", resp.WeatherImpact.Condition)
	assert.InDelta(t, 24.5, resp.WeatherImpact.Temperature, 1e-9)
	assert.Equal(t, "medium", resp.WeatherImpact.ImpactLevel)
}

func TestUseCase_Execute_NoiseShapesActuals(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := setupTestUseCase(testTemple(), nil, now, 0.8)

	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})

	require.NoError(t, err)
	offPeak := resp.HourlyData[0]
	// 70 * 0.8 = 56
	assert.Equal(t, 70, offPeak.ExpectedVisitors)
	assert.Equal(t, 56, offPeak.ActualVisitors)
	assert.Equal(t, 56, offPeak.OccupancyPercentage)
	assert.Equal(t, string(domain.DensityMedium), offPeak.CrowdDensity)
	assert.Equal(t, 5, offPeak.WaitTimeMinutes)
}

func TestUseCase_Execute_TempleNotFound(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := setupTestUseCase(testTemple(), nil, now, 1.0)

	_, err := uc.Execute(context.Background(), &Request{TempleID: 404})

	assert.ErrorIs(t, err, ErrTempleNotFound)
}

func TestUseCase_Execute_InvalidTempleID(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := setupTestUseCase(testTemple(), nil, now, 1.0)

	_, err := uc.Execute(context.Background(), &Request{TempleID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_DateDefaultsToToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := setupTestUseCase(testTemple(), nil, now, 1.0)

	resp, err := uc.Execute(context.Background(), &Request{TempleID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", resp.Date)

	resp, err = uc.Execute(context.Background(), &Request{TempleID: 1, Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", resp.Date)
}
