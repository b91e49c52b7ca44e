package temple

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	"github.com/m04kA/TCM-VisitService/pkg/dbmetrics"
	"github.com/m04kA/TCM-VisitService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с храмами и их конфигурацией ёмкости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория храмов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает храм по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Temple, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"city",
		"state",
		"latitude",
		"longitude",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"max_visitors_per_slot",
		"total_daily_capacity",
		"peak_windows",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("temples").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		t                    domain.Temple
		peakWindows          []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Name,
		&t.City,
		&t.State,
		&t.Coordinates.Latitude,
		&t.Coordinates.Longitude,
		&t.OpenTime,
		&t.CloseTime,
		&t.SlotDurationMinutes,
		&t.Capacity.MaxVisitorsPerSlot,
		&t.Capacity.TotalDailyCapacity,
		&peakWindows,
		&t.IsActive,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTempleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan temple: %v", ErrScanRow, err)
	}

	if len(peakWindows) > 0 {
		if err := json.Unmarshal(peakWindows, &t.Capacity.PeakWindows); err != nil {
			return nil, fmt.Errorf("%w: GetByID - unmarshal peak windows: %v", ErrScanRow, err)
		}
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// UpdateCapacityConfig обновляет конфигурацию ёмкости храма
func (r *Repository) UpdateCapacityConfig(ctx context.Context, templeID int64, cfg domain.CapacityConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	peakWindows, err := json.Marshal(cfg.PeakWindows)
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacityConfig - marshal peak windows: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("temples").
		Set("max_visitors_per_slot", cfg.MaxVisitorsPerSlot).
		Set("total_daily_capacity", cfg.TotalDailyCapacity).
		Set("peak_windows", peakWindows).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": templeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacityConfig - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacityConfig - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacityConfig - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTempleNotFound
	}

	return nil
}
