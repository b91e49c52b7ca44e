package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/pkg/dbmetrics"
	"github.com/m04kA/TCM-VisitService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами посещений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"temple_id",
			"date",
			"start_time",
			"end_time",
			"max_capacity",
			"current_bookings",
			"is_available",
		).
		Values(
			s.TempleID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.MaxCapacity,
			s.CurrentBookings,
			s.IsAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// CreateBatch создает набор слотов одним запросом
// Уже существующие слоты (temple_id, date, start_time) пропускаются
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns(
			"temple_id",
			"date",
			"start_time",
			"end_time",
			"max_capacity",
			"current_bookings",
			"is_available",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.TempleID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.MaxCapacity,
			s.CurrentBookings,
			s.IsAvailable,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (temple_id, date, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return int(created), nil
}

// GetByID получает слот по ID
// Внутри активной транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns()...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByTempleAndDate получает все слоты храма на указанную дату
func (r *Repository) GetByTempleAndDate(ctx context.Context, templeID int64, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns()...).
		From("slots").
		Where(squirrel.Eq{"temple_id": templeID, "date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTempleAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTempleAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTempleAndDate - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTempleAndDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// AdjustCapacity атомарно изменяет счётчик current_bookings с проверкой границ.
// Это единственная операция, через которую изменяется ёмкость слота:
// проверка и инкремент выполняются одним UPDATE, поэтому два конкурентных
// резервирования, совместно превышающих ёмкость, не могут пройти оба.
//
// Для положительной дельты (резервирование) слот обязан быть доступен;
// освобождение (отрицательная дельта) допускается и для закрытого слота.
// Возвращает новое значение счётчика.
func (r *Repository) AdjustCapacity(ctx context.Context, slotID int64, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Expr("current_bookings + ? >= 0", delta)).
		Where(squirrel.Expr("current_bookings + ? <= max_capacity", delta))

	if delta > 0 {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := updateBuilder.Suffix("RETURNING current_bookings").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: AdjustCapacity - build update query: %v", ErrBuildQuery, err)
	}

	var newCount int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&newCount)
	if err == nil {
		return newCount, nil
	}

	if isSerializationError(err) {
		return 0, ErrSerialization
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: AdjustCapacity - execute update: %v", ErrExecQuery, err)
	}

	// UPDATE не затронул строк: выясняем причину отказа
	current, err := r.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return 0, ErrSlotNotFound
		}
		return 0, err
	}

	switch {
	case delta > 0 && !current.IsAvailable:
		return 0, ErrSlotUnavailable
	case delta > 0:
		return 0, ErrCapacityExceeded
	default:
		return 0, ErrCapacityUnderflow
	}
}

// SetAvailability открывает или закрывает слот для новых резервирований
func (r *Repository) SetAvailability(ctx context.Context, slotID int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func slotColumns() []string {
	return []string{
		"id",
		"temple_id",
		"date",
		"start_time",
		"end_time",
		"max_capacity",
		"current_bookings",
		"is_available",
		"created_at",
		"updated_at",
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		s                    domain.Slot
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.TempleID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.MaxCapacity,
		&s.CurrentBookings,
		&s.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// isSerializationError распознаёт retry-able ошибки PostgreSQL:
// 40001 - serialization_failure, 40P01 - deadlock_detected
func isSerializationError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
