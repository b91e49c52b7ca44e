package get_simulation

import (
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// Request модель запроса симуляции посещаемости
type Request struct {
	TempleID int64     // ID храма
	Date     time.Time // Дата симуляции; нулевая - сегодня
}

// AreaOccupancy занятость одной зоны храма
type AreaOccupancy struct {
	Name                string             `json:"name"`
	Coordinates         domain.Coordinates `json:"coordinates"`
	Capacity            int                `json:"capacity"`
	Occupancy           int                `json:"occupancy"`
	OccupancyPercentage int                `json:"occupancyPercentage"`
	Density             string             `json:"density"`
}

// HourlyRecord один час кривой посещаемости
type HourlyRecord struct {
	Hour                int             `json:"hour"`
	ExpectedVisitors    int             `json:"expectedVisitors"`
	ActualVisitors      int             `json:"actualVisitors"`
	OccupancyPercentage int             `json:"occupancyPercentage"`
	CrowdDensity        string          `json:"crowdDensity"`
	WaitTimeMinutes     int             `json:"waitTime"`
	Areas               []AreaOccupancy `json:"areas"`
}

// WeatherImpact влияние погоды на поток посетителей
type WeatherImpact struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	ImpactLevel string  `json:"impactLevel"`
}

// Response модель ответа с симуляцией на день
type Response struct {
	TempleID      int64               `json:"templeId"`
	TempleName    string              `json:"templeName"`
	Date          string              `json:"date"` // "2026-08-28"
	CurrentStatus HourlyRecord        `json:"currentStatus"`
	HourlyData    []HourlyRecord      `json:"hourlyData"`
	PeakWindows   []domain.PeakWindow `json:"peakHours"`
	WeatherImpact WeatherImpact       `json:"weatherImpact"`
}

// fromSnapshot конвертирует domain снимок в DTO
func fromSnapshot(s *domain.SimulationSnapshot) *Response {
	return &Response{
		TempleID:      s.TempleID,
		TempleName:    s.TempleName,
		Date:          s.Date.Format(domain.DateFormat),
		CurrentStatus: fromHourlyRecord(s.CurrentStatus),
		HourlyData:    fromHourlyRecords(s.HourlyData),
		PeakWindows:   s.PeakWindows,
		WeatherImpact: WeatherImpact{
			Condition:   s.WeatherImpact.Condition,
			Temperature: s.WeatherImpact.Temperature,
			ImpactLevel: s.WeatherImpact.ImpactLevel,
		},
	}
}

func fromHourlyRecord(r domain.HourlyRecord) HourlyRecord {
	areas := make([]AreaOccupancy, 0, len(r.Areas))
	for _, a := range r.Areas {
		areas = append(areas, AreaOccupancy{
			Name:                a.Name,
			Coordinates:         a.Coordinates,
			Capacity:            a.Capacity,
			Occupancy:           a.Occupancy,
			OccupancyPercentage: a.OccupancyPercentage,
			Density:             string(a.Density),
		})
	}

	return HourlyRecord{
		Hour:                r.Hour,
		ExpectedVisitors:    r.ExpectedVisitors,
		ActualVisitors:      r.ActualVisitors,
		OccupancyPercentage: r.OccupancyPercentage,
		CrowdDensity:        string(r.CrowdDensity),
		WaitTimeMinutes:     r.WaitTimeMinutes,
		Areas:               areas,
	}
}

func fromHourlyRecords(records []domain.HourlyRecord) []HourlyRecord {
	result := make([]HourlyRecord, 0, len(records))
	for _, r := range records {
		result = append(result, fromHourlyRecord(r))
	}
	return result
}
