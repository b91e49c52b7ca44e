package get_wait_estimate

import (
	"math"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// estimate считает ожидание по пропускной способности храма.
//
// Число полных слотов, необходимых чтобы пропустить очередь через lanes
// параллельных полос, умножается на длительность слота:
//
//	minutes = round(visitors / (capacityPerSlot * lanes) * slotDuration)
//
// Нулевая или отрицательная ёмкость делает оценку невозможной - функция
// возвращает nil, а не ноль: "ждать не придётся" и "оценить нельзя"
// принципиально разные ответы.
func estimate(currentVisitors, capacityPerSlot, slotDurationMinutes, lanes int) *Estimate {
	if capacityPerSlot <= 0 {
		return nil
	}
	if lanes <= 0 {
		lanes = domain.DefaultLanes
	}
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}

	slotsNeeded := float64(currentVisitors) / float64(capacityPerSlot*lanes)
	minutes := int(math.Round(slotsNeeded * float64(slotDurationMinutes)))
	if minutes < 0 {
		minutes = 0
	}

	return &Estimate{
		Minutes: minutes,
		Level:   string(domain.ClassifyWait(minutes)),
	}
}
