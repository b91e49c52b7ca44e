package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
	"github.com/m04kA/TCM-VisitService/pkg/types"
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

// fakeSlots считает существующими слоты с ключом temple/date/start,
// воспроизводя идемпотентность ON CONFLICT DO NOTHING
type fakeSlots struct {
	existing map[string]struct{}
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{existing: make(map[string]struct{})}
}

func (f *fakeSlots) CreateBatch(_ context.Context, slots []*domain.Slot) (int, error) {
	created := 0
	for _, s := range slots {
		key := s.Date.Format(domain.DateFormat) + "/" + s.StartTime.String()
		if _, ok := f.existing[key]; ok {
			continue
		}
		f.existing[key] = struct{}{}
		created++
	}
	return created, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	testNow  = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

func testTemple() *domain.Temple {
	return &domain.Temple{
		ID:                  1,
		Name:                "Main Temple",
		OpenTime:            "06:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 30,
		IsActive:            true,
		Capacity:            domain.CapacityConfig{MaxVisitorsPerSlot: 50},
	}
}

func setupTestUseCase(temple *domain.Temple, slots *fakeSlots) *UseCase {
	uc := NewUseCase(slots, &fakeTemples{temples: map[int64]*domain.Temple{temple.ID: temple}}, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func operatorRequest() *Request {
	return &Request{UserID: 555, Role: "operator", TempleID: 1, Date: testDate}
}

func TestBuildDaySlots_Grid(t *testing.T) {
	slots, err := buildDaySlots(testTemple(), testDate)

	require.NoError(t, err)
	// 16 часов по два получасовых слота
	require.Len(t, slots, 32)

	first := slots[0]
	assert.Equal(t, types.TimeString("06:00"), first.StartTime)
	assert.Equal(t, types.TimeString("06:30"), first.EndTime)
	assert.Equal(t, 50, first.MaxCapacity)
	assert.Equal(t, 0, first.CurrentBookings)
	assert.True(t, first.IsAvailable)

	last := slots[len(slots)-1]
	assert.Equal(t, types.TimeString("21:30"), last.StartTime)
	assert.Equal(t, types.TimeString("22:00"), last.EndTime)

	// Слоты стыкуются без зазоров
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
	}
}

func TestBuildDaySlots_PartialSlotDropped(t *testing.T) {
	temple := testTemple()
	temple.CloseTime = "21:45"

	slots, err := buildDaySlots(temple, testDate)

	require.NoError(t, err)
	// Неполный слот 21:30-22:00 за время закрытия не создаётся
	require.Len(t, slots, 31)
	assert.Equal(t, types.TimeString("21:30"), slots[len(slots)-1].EndTime)
}

func TestBuildDaySlots_DefaultHours(t *testing.T) {
	temple := testTemple()
	temple.OpenTime = ""
	temple.CloseTime = ""

	slots, err := buildDaySlots(temple, testDate)

	require.NoError(t, err)
	require.Len(t, slots, 32)
	assert.Equal(t, types.TimeString("06:00"), slots[0].StartTime)
}

func TestUseCase_Execute_Success(t *testing.T) {
	uc := setupTestUseCase(testTemple(), newFakeSlots())

	resp, err := uc.Execute(context.Background(), operatorRequest())

	require.NoError(t, err)
	assert.Equal(t, 32, resp.Created)
	assert.Equal(t, 32, resp.Total)
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	slots := newFakeSlots()
	uc := setupTestUseCase(testTemple(), slots)

	_, err := uc.Execute(context.Background(), operatorRequest())
	require.NoError(t, err)

	// Повторный запуск не создаёт дублей
	resp, err := uc.Execute(context.Background(), operatorRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 32, resp.Total)
}

func TestUseCase_Execute_OperatorOnly(t *testing.T) {
	uc := setupTestUseCase(testTemple(), newFakeSlots())

	req := operatorRequest()
	req.Role = "pilgrim"
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc := setupTestUseCase(testTemple(), newFakeSlots())

	req := operatorRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Сегодня - допустимая дата
	req.Date = testNow
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_TempleInactive(t *testing.T) {
	temple := testTemple()
	temple.IsActive = false
	uc := setupTestUseCase(temple, newFakeSlots())

	_, err := uc.Execute(context.Background(), operatorRequest())

	assert.ErrorIs(t, err, ErrTempleInactive)
}

func TestUseCase_Execute_TempleNotFound(t *testing.T) {
	uc := setupTestUseCase(testTemple(), newFakeSlots())

	req := operatorRequest()
	req.TempleID = 404
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTempleNotFound)
}
