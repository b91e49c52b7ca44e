package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	slotStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/slot"
	templeStorage "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
	"github.com/m04kA/TCM-VisitService/internal/service/capacity"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookings struct {
	created   []*domain.Booking
	createErr error
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	clone := *b
	clone.ID = int64(len(f.created) + 1)
	clone.CreatedAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f.created = append(f.created, &clone)
	return &clone, nil
}

type fakeSlots struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlots) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	return s, nil
}

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

// fakeAllocator ведёт счётчик занятых мест и журнал операций
type fakeAllocator struct {
	capacity   int
	current    int
	reserveErr error
	released   int
	committed  int
}

func (f *fakeAllocator) Reserve(_ context.Context, slotID int64, units int) (*capacity.ReservationToken, error) {
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	if f.current+units > f.capacity {
		return nil, capacity.ErrCapacityExceeded
	}
	f.current += units
	return &capacity.ReservationToken{ID: "tok-1", SlotID: slotID, Units: units, NewCount: f.current}, nil
}

func (f *fakeAllocator) Release(_ context.Context, token *capacity.ReservationToken) error {
	f.current -= token.Units
	f.released++
	return nil
}

func (f *fakeAllocator) Commit(_ *capacity.ReservationToken) {
	f.committed++
}

type fakeIDGen struct{ id string }

func (f fakeIDGen) Next() string { return f.id }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	testNow       = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	testSlotDate  = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	testSlotStart = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookings
	allocator *fakeAllocator
}

func setupTestUseCase() *fixture {
	bookings := &fakeBookings{}
	allocator := &fakeAllocator{capacity: 10}
	slots := &fakeSlots{slots: map[int64]*domain.Slot{
		42: {ID: 42, TempleID: 1, Date: testSlotDate, StartTime: "10:00", EndTime: "10:30", MaxCapacity: 10, IsAvailable: true},
	}}
	temples := &fakeTemples{temples: map[int64]*domain.Temple{
		1: {ID: 1, Name: "Main Temple", IsActive: true},
		2: {ID: 2, Name: "Closed Temple", IsActive: false},
		3: {ID: 3, Name: "Other Temple", IsActive: true},
	}}

	uc := NewUseCase(bookings, slots, temples, allocator, fakeIDGen{id: "TCMTEST00001"}, fixedTime{now: testNow}, nopLogger{})
	return &fixture{uc: uc, bookings: bookings, allocator: allocator}
}

func validRequest() *Request {
	return &Request{
		UserID:        100,
		TempleID:      1,
		SlotID:        42,
		VisitorsCount: 2,
		Visitors: []domain.Visitor{
			{Name: "Asha", Age: 34},
			{Name: "Ravi", Age: 36},
		},
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := setupTestUseCase()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "TCMTEST00001", resp.BookingID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, testSlotStart, resp.SlotStart)
	assert.Equal(t, 2, f.allocator.current)
	require.Len(t, f.bookings.created, 1)
	// Токен резерва погашен после сохранения бронирования
	assert.Equal(t, 1, f.allocator.committed)

	// QR payload содержит идентификаторы бронирования
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resp.QRPayload), &payload))
	assert.Equal(t, "TCMTEST00001", payload["bookingId"])
	assert.Equal(t, float64(1), payload["templeId"])
	assert.Equal(t, float64(42), payload["slotId"])
	assert.Equal(t, float64(100), payload["userId"])
	assert.Equal(t, float64(2), payload["visitorsCount"])
}

func TestUseCase_Execute_CapacityExceeded(t *testing.T) {
	f := setupTestUseCase()
	f.allocator.current = 9

	req := validRequest()
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	// Бронирование не создано, счётчик не изменился
	assert.Empty(t, f.bookings.created)
	assert.Equal(t, 9, f.allocator.current)
}

func TestUseCase_Execute_CreateFailureReleasesReservation(t *testing.T) {
	f := setupTestUseCase()
	f.bookings.createErr = errors.New("db is down")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	// Резерв возвращён слоту, токен не погашался
	assert.Equal(t, 0, f.allocator.current)
	assert.Equal(t, 1, f.allocator.released)
	assert.Equal(t, 0, f.allocator.committed)
}

func TestUseCase_Execute_TempleNotFound(t *testing.T) {
	f := setupTestUseCase()

	req := validRequest()
	req.TempleID = 404
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTempleNotFound)
}

func TestUseCase_Execute_TempleInactive(t *testing.T) {
	f := setupTestUseCase()

	req := validRequest()
	req.TempleID = 2
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTempleInactive)
}

func TestUseCase_Execute_SlotNotFound(t *testing.T) {
	f := setupTestUseCase()

	req := validRequest()
	req.SlotID = 404
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestUseCase_Execute_SlotOfAnotherTemple(t *testing.T) {
	f := setupTestUseCase()

	// Слот 42 принадлежит храму 1, а запрошен от имени храма 3
	req := validRequest()
	req.TempleID = 3
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestUseCase_Execute_SlotInPast(t *testing.T) {
	f := setupTestUseCase()

	uc := f.uc
	uc.timeProv = fixedTime{now: testSlotStart}

	_, err := uc.Execute(context.Background(), validRequest())

	// Слот, начавшийся ровно сейчас, бронировать уже нельзя
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestUseCase_Execute_RetryExhausted(t *testing.T) {
	f := setupTestUseCase()
	f.allocator.reserveErr = capacity.ErrConflictRetryExhausted

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrConflictRetryExhausted)
	assert.Empty(t, f.bookings.created)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := setupTestUseCase()
	ctx := context.Background()

	req := validRequest()
	req.VisitorsCount = 0
	req.Visitors = nil
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.VisitorsCount = 11
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Число посетителей не совпадает с составом группы
	req = validRequest()
	req.VisitorsCount = 3
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Visitors[0].Name = "   "
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Ничего не должно было дойти до аллокатора
	assert.Equal(t, 0, f.allocator.current)
	assert.Empty(t, f.bookings.created)
}
