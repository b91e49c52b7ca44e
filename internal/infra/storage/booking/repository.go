package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/pkg/dbmetrics"
	"github.com/m04kA/TCM-VisitService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Состав посетителей сериализуется в JSONB колонку visitors
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	visitors, err := json.Marshal(b.Visitors)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal visitors: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_id",
			"user_id",
			"temple_id",
			"slot_id",
			"visitors_count",
			"visitors",
			"status",
			"slot_start",
			"contact_email",
			"contact_phone",
			"special_request",
			"qr_payload",
		).
		Values(
			b.BookingID,
			b.UserID,
			b.TempleID,
			b.SlotID,
			b.VisitorsCount,
			visitors,
			b.Status,
			b.SlotStart,
			b.ContactEmail,
			b.ContactPhone,
			b.SpecialRequest,
			b.QRPayload,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBookingID
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по внутреннему ID
// Внутри активной транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByBookingID получает бронирование по публичному идентификатору ("TCM...")
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_id": bookingID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByUserID получает бронирования пользователя, опционально фильтруя по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatusFrom выполняет условный переход статуса: строка обновляется,
// только если её текущий статус входит в allowedFrom. Это защита от двойной
// отмены - второй переход в cancelled не затронет строк и вернёт
// ErrStatusConflict, не трогая счётчик ёмкости.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, next domain.BookingStatus, allowedFrom []domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	if next == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		// Либо бронирование не существует, либо статус уже изменился
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

// SetCancellationReason записывает причину отмены
func (r *Repository) SetCancellationReason(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("cancellation_reason", reason).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCancellationReason - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCancellationReason - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCancellationReason - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func bookingColumns() []string {
	return []string{
		"id",
		"booking_id",
		"user_id",
		"temple_id",
		"slot_id",
		"visitors_count",
		"visitors",
		"status",
		"slot_start",
		"contact_email",
		"contact_phone",
		"special_request",
		"qr_payload",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		visitors             []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.BookingID,
		&b.UserID,
		&b.TempleID,
		&b.SlotID,
		&b.VisitorsCount,
		&visitors,
		&b.Status,
		&b.SlotStart,
		&b.ContactEmail,
		&b.ContactPhone,
		&b.SpecialRequest,
		&b.QRPayload,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(visitors) > 0 {
		if err := json.Unmarshal(visitors, &b.Visitors); err != nil {
			return nil, fmt.Errorf("unmarshal visitors: %w", err)
		}
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isUniqueViolation распознаёт нарушение уникального индекса (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
