package get_simulation

import (
	"math"
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// queueAreaOffset смещение координат зоны очереди относительно храма
const queueAreaOffset = 0.001

// buildSnapshot строит снимок посещаемости храма на день.
//
// Кривая детерминирована с точностью до источника шума: ожидаемый поток
// каждого часа определяется ёмкостью слота и пиковыми окнами, фактический -
// ожидаемым, умноженным на шумовой коэффициент. Снимок производен от
// конфигурации храма и никогда не персистится как источник истины.
func buildSnapshot(temple *domain.Temple, date time.Time, now time.Time, noise NoiseSource) *domain.SimulationSnapshot {
	cap := temple.Capacity.MaxVisitorsPerSlot
	if cap <= 0 {
		cap = domain.DefaultSimulationCapacity
	}

	startHour, endHour := temple.OperatingHours()

	hourly := make([]domain.HourlyRecord, 0, endHour-startHour+1)
	for hour := startHour; hour <= endHour; hour++ {
		hourly = append(hourly, buildHourlyRecord(temple, cap, hour, noise))
	}

	// Текущий статус - запись текущего часа; вне рабочих часов - первая
	current := hourly[0]
	for _, r := range hourly {
		if r.Hour == now.Hour() {
			current = r
			break
		}
	}

	return &domain.SimulationSnapshot{
		TempleID:      temple.ID,
		TempleName:    temple.Name,
		Date:          date,
		CurrentStatus: current,
		HourlyData:    hourly,
		PeakWindows:   temple.Capacity.EffectivePeakWindows(),
	}
}

// buildHourlyRecord строит одну запись кривой посещаемости
func buildHourlyRecord(temple *domain.Temple, cap int, hour int, noise NoiseSource) domain.HourlyRecord {
	factor := domain.OffPeakVisitorFactor
	if temple.Capacity.IsPeakHour(hour) {
		factor = domain.PeakVisitorFactor
	}

	expected := int(math.Round(float64(cap) * factor))
	actual := int(math.Round(float64(expected) * noise.Factor()))
	if actual < 0 {
		actual = 0
	}

	occPct := clampPct(math.Round(float64(actual) / float64(cap) * 100))
	density := domain.ClassifyDensity(occPct)

	queueCap := int(math.Round(float64(cap) * domain.QueueAreaCapacityShare))
	queueOcc := int(math.Round(float64(actual) * domain.QueueAreaOccupancyShare))
	queuePct := 0
	if queueCap > 0 {
		queuePct = clampPct(math.Round(float64(queueOcc) / float64(queueCap) * 100))
	}

	areas := []domain.AreaOccupancy{
		{
			Name:                "Main Temple",
			Coordinates:         temple.Coordinates,
			Capacity:            cap,
			Occupancy:           min(cap, actual),
			OccupancyPercentage: occPct,
			Density:             density,
		},
		{
			Name: "Queue Area",
			Coordinates: domain.Coordinates{
				Latitude:  temple.Coordinates.Latitude + queueAreaOffset,
				Longitude: temple.Coordinates.Longitude + queueAreaOffset,
			},
			Capacity:            queueCap,
			Occupancy:           min(queueCap, queueOcc),
			OccupancyPercentage: queuePct,
			// Зона очереди классифицируется по собственной занятости,
			// а не наследует плотность основной зоны
			Density: domain.ClassifyDensity(queuePct),
		},
	}

	return domain.HourlyRecord{
		Hour:                hour,
		ExpectedVisitors:    expected,
		ActualVisitors:      actual,
		OccupancyPercentage: occPct,
		CrowdDensity:        density,
		WaitTimeMinutes:     domain.WaitMinutesForOccupancy(occPct),
		Areas:               areas,
	}
}

func clampPct(v float64) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return int(v)
}
