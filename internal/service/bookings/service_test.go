package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	bookingRepo "github.com/m04kA/TCM-VisitService/internal/infra/storage/booking"
	"github.com/m04kA/TCM-VisitService/internal/service/bookings/models"
	"github.com/m04kA/TCM-VisitService/internal/service/capacity"
	"github.com/m04kA/TCM-VisitService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeBookingRepo хранит бронирования в памяти и воспроизводит семантику
// условного перехода UpdateStatusFrom.
type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) GetByBookingID(_ context.Context, bookingID string) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.BookingID == bookingID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatusFrom(_ context.Context, id int64, next domain.BookingStatus, allowedFrom []domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	for _, from := range allowedFrom {
		if b.Status == from {
			b.Status = next
			return nil
		}
	}
	return bookingRepo.ErrStatusConflict
}

func (r *fakeBookingRepo) SetCancellationReason(_ context.Context, id int64, reason string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.CancellationReason = &reason
	return nil
}

// fakeAllocator ведёт счётчик слота в памяти.
// releaseErrs очередь ошибок, возвращаемых до первого успешного вызова.
type fakeAllocator struct {
	slotCount    map[int64]int
	releaseCalls int
	releaseErrs  []error
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{slotCount: make(map[int64]int)}
}

func (a *fakeAllocator) ReleaseUnits(_ context.Context, slotID int64, units int) (int, error) {
	a.releaseCalls++
	if len(a.releaseErrs) > 0 {
		err := a.releaseErrs[0]
		a.releaseErrs = a.releaseErrs[1:]
		return 0, err
	}
	a.slotCount[slotID] -= units
	return a.slotCount[slotID], nil
}

// fakeTxManager исполняет функцию транзакции напрямую; rollback, если
// задан, откатывает изменения фейковых хранилищ при ошибке
type fakeTxManager struct {
	rollback func()
}

func (m fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m fakeTxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		if m.rollback != nil {
			m.rollback()
		}
		return err
	}
	return nil
}

// fixedTime детерминированный TimeProvider
type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var slotStart = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func activeBooking(id, userID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BookingID:     "TCMTEST00001",
		UserID:        userID,
		TempleID:      1,
		SlotID:        42,
		VisitorsCount: 3,
		Status:        status,
		SlotStart:     slotStart,
	}
}

func setupTestService(repo *fakeBookingRepo, allocator *fakeAllocator, now time.Time) *Service {
	return NewService(repo, allocator, fakeTxManager{}, fixedTime{now: now}, nopLogger{})
}

func cancelRequest(userID int64, role string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Role:   role,
		Status: string(domain.StatusCancelled),
	}
}

func TestService_GetByID_OwnerAndOperator(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	svc := setupTestService(repo, newFakeAllocator(), slotStart.Add(-24*time.Hour))

	resp, err := svc.GetByID(context.Background(), 1, 100, domain.RolePilgrim)
	require.NoError(t, err)
	assert.Equal(t, "TCMTEST00001", resp.BookingID)

	// Оператор видит чужое бронирование
	resp, err = svc.GetByID(context.Background(), 1, 999, domain.RoleOperator)
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.UserID)

	// Чужой паломник - нет
	_, err = svc.GetByID(context.Background(), 1, 999, domain.RolePilgrim)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := setupTestService(newFakeBookingRepo(), newFakeAllocator(), slotStart)

	_, err := svc.GetByID(context.Background(), 404, 100, domain.RolePilgrim)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByBookingID_Success(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	svc := setupTestService(repo, newFakeAllocator(), slotStart)

	resp, err := svc.GetByBookingID(context.Background(), "TCMTEST00001", 100, domain.RolePilgrim)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestService_GetUserBookings_StatusFilter(t *testing.T) {
	confirmed := activeBooking(1, 100, domain.StatusConfirmed)
	cancelled := activeBooking(2, 100, domain.StatusCancelled)
	other := activeBooking(3, 200, domain.StatusConfirmed)
	repo := newFakeBookingRepo(confirmed, cancelled, other)
	svc := setupTestService(repo, newFakeAllocator(), slotStart)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100, Status: ptr.Ptr(string(domain.StatusCancelled))})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100, Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel_OutsideWindowReleasesCapacity(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	allocator := newFakeAllocator()
	allocator.slotCount[42] = 8
	// За три часа до начала слота - окно ещё открыто
	svc := setupTestService(repo, allocator, slotStart.Add(-3*time.Hour))

	err := svc.UpdateStatus(context.Background(), 1, cancelRequest(100, "pilgrim"))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	// Места вернулись слоту: 8 - 3 = 5
	assert.Equal(t, 5, allocator.slotCount[42])
}

func TestService_Cancel_BoundaryDenied(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	allocator := newFakeAllocator()
	// Ровно за два часа до начала - отказ
	svc := setupTestService(repo, allocator, slotStart.Add(-domain.CancellationNotice))

	err := svc.UpdateStatus(context.Background(), 1, cancelRequest(100, "pilgrim"))

	assert.ErrorIs(t, err, ErrCancellationWindowClosed)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Equal(t, 0, allocator.releaseCalls)
}

func TestService_Cancel_OperatorInsideWindow(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	allocator := newFakeAllocator()
	allocator.slotCount[42] = 3
	// За полчаса до начала оператору можно
	svc := setupTestService(repo, allocator, slotStart.Add(-30*time.Minute))

	err := svc.UpdateStatus(context.Background(), 1, cancelRequest(555, "operator"))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Equal(t, 0, allocator.slotCount[42])
}

func TestService_Cancel_DoubleCancelDoesNotReleaseTwice(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	allocator := newFakeAllocator()
	allocator.slotCount[42] = 3
	svc := setupTestService(repo, allocator, slotStart.Add(-3*time.Hour))

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, cancelRequest(100, "pilgrim")))
	err := svc.UpdateStatus(context.Background(), 1, cancelRequest(100, "pilgrim"))

	assert.ErrorIs(t, err, ErrCannotCancel)
	// Счётчик уменьшился ровно один раз
	assert.Equal(t, 0, allocator.slotCount[42])
	assert.Equal(t, 1, allocator.releaseCalls)
}

func TestService_Cancel_RetriesSerializationConflict(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	allocator := newFakeAllocator()
	allocator.slotCount[42] = 3
	// Первый ReleaseUnits падает на конфликте сериализации внутри
	// транзакции - отмена должна перезапустить транзакцию целиком
	allocator.releaseErrs = []error{capacity.ErrSerializationConflict}
	rollback := func() { repo.bookings[1].Status = domain.StatusConfirmed }
	svc := NewService(repo, allocator, fakeTxManager{rollback: rollback},
		fixedTime{now: slotStart.Add(-3 * time.Hour)}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, cancelRequest(100, "pilgrim"))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Equal(t, 0, allocator.slotCount[42])
	assert.Equal(t, 2, allocator.releaseCalls)
}

func TestService_Cancel_SerializationRetriesExhausted(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	allocator := newFakeAllocator()
	allocator.slotCount[42] = 3
	allocator.releaseErrs = []error{
		capacity.ErrSerializationConflict,
		capacity.ErrSerializationConflict,
		capacity.ErrSerializationConflict,
	}
	rollback := func() { repo.bookings[1].Status = domain.StatusConfirmed }
	svc := NewService(repo, allocator, fakeTxManager{rollback: rollback},
		fixedTime{now: slotStart.Add(-3 * time.Hour)}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, cancelRequest(100, "pilgrim"))

	assert.ErrorIs(t, err, ErrConflictRetryExhausted)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Equal(t, 3, allocator.releaseCalls)
	assert.Equal(t, 3, allocator.slotCount[42])
}

func TestService_Cancel_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	svc := setupTestService(repo, newFakeAllocator(), slotStart.Add(-3*time.Hour))

	err := svc.UpdateStatus(context.Background(), 1, cancelRequest(999, "pilgrim"))

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Cancel_StoresReason(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	svc := setupTestService(repo, newFakeAllocator(), slotStart.Add(-3*time.Hour))

	reason := "не смогу прийти"
	req := cancelRequest(100, "pilgrim")
	req.CancellationReason = &reason

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, req))
	require.NotNil(t, repo.bookings[1].CancellationReason)
	assert.Equal(t, reason, *repo.bookings[1].CancellationReason)
}

func TestService_UpdateStatus_CompletedDoesNotReleaseCapacity(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	allocator := newFakeAllocator()
	allocator.slotCount[42] = 3
	svc := setupTestService(repo, allocator, slotStart.Add(time.Hour))

	req := &models.UpdateStatusRequest{UserID: 555, Role: "operator", Status: string(domain.StatusCompleted)}
	err := svc.UpdateStatus(context.Background(), 1, req)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
	// Завершённый визит уже израсходовал свои места
	assert.Equal(t, 3, allocator.slotCount[42])
	assert.Equal(t, 0, allocator.releaseCalls)
}

func TestService_UpdateStatus_NonCancelRequiresOperator(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	svc := setupTestService(repo, newFakeAllocator(), slotStart)

	req := &models.UpdateStatusRequest{UserID: 100, Role: "pilgrim", Status: string(domain.StatusCompleted)}
	err := svc.UpdateStatus(context.Background(), 1, req)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusCancelled))
	svc := setupTestService(repo, newFakeAllocator(), slotStart)

	req := &models.UpdateStatusRequest{UserID: 555, Role: "operator", Status: string(domain.StatusCompleted)}
	err := svc.UpdateStatus(context.Background(), 1, req)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_UpdateStatus_InvalidInput(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 100, domain.StatusConfirmed))
	svc := setupTestService(repo, newFakeAllocator(), slotStart)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 100, Role: "pilgrim", Status: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 100, Role: "admin", Status: string(domain.StatusCancelled)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
