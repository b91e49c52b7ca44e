package capacity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	slotRepo "github.com/m04kA/TCM-VisitService/internal/infra/storage/slot"
)

// DefaultMaxRetries число попыток при retry-able конфликтах хранилища
const DefaultMaxRetries = 3

// retryBackoff базовая пауза между попытками (умножается на номер попытки)
const retryBackoff = 10 * time.Millisecond

// Allocator атомарно резервирует и освобождает ёмкость слотов.
//
// Проверка и инкремент неразделимы на уровне SlotStore.AdjustCapacity,
// поэтому два конкурентных резервирования, совместно переполняющих слот,
// не могут пройти оба. Резервирования разных слотов независимы и не
// блокируют друг друга. Все операции завершаются за ограниченное число
// попыток - при исчерпании возвращается ErrConflictRetryExhausted.
type Allocator struct {
	store      SlotStore
	logger     Logger
	maxRetries int
	timeNow    func() time.Time

	// Реестр непогашенных токенов защищает от двойного освобождения.
	// Токен живёт в реестре до Release или Commit; успешное освобождение
	// изымает запись, поэтому реестр не растёт с числом бронирований.
	mu     sync.Mutex
	tokens map[string]*ReservationToken
}

// NewAllocator создает новый аллокатор ёмкости
func NewAllocator(store SlotStore, maxRetries int, logger Logger) *Allocator {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Allocator{
		store:      store,
		logger:     logger,
		maxRetries: maxRetries,
		timeNow:    time.Now,
		tokens:     make(map[string]*ReservationToken),
	}
}

// Reserve атомарно резервирует units мест в слоте и возвращает токен.
// Запросы вне [MinVisitorsPerBooking, MaxVisitorsPerBooking] отклоняются
// до обращения к хранилищу. Закрытый слот отклоняет резервирование
// независимо от остатка ёмкости.
func (a *Allocator) Reserve(ctx context.Context, slotID int64, units int) (*ReservationToken, error) {
	if units < domain.MinVisitorsPerBooking || units > domain.MaxVisitorsPerBooking {
		return nil, fmt.Errorf("%w: units=%d, allowed [%d, %d]",
			ErrInvalidUnits, units, domain.MinVisitorsPerBooking, domain.MaxVisitorsPerBooking)
	}

	newCount, err := a.adjustWithRetry(ctx, slotID, units)
	if err != nil {
		return nil, err
	}

	token := &ReservationToken{
		ID:         uuid.NewString(),
		SlotID:     slotID,
		Units:      units,
		NewCount:   newCount,
		ReservedAt: a.timeNow(),
	}

	a.mu.Lock()
	a.tokens[token.ID] = token
	a.mu.Unlock()

	a.logger.Info("Reserve: slot=%d units=%d current=%d token=%s", slotID, units, newCount, token.ID)
	return token, nil
}

// Release освобождает ёмкость, зарезервированную токеном, и изымает
// токен из реестра. Повторное освобождение не изменяет счётчик и
// возвращает ErrTokenNotFound. Счётчик никогда не уходит ниже нуля -
// нижнюю границу обеспечивает хранилище.
func (a *Allocator) Release(ctx context.Context, token *ReservationToken) error {
	if token == nil {
		return fmt.Errorf("%w: nil token", ErrTokenNotFound)
	}

	a.mu.Lock()
	stored, ok := a.tokens[token.ID]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("%w: token=%s", ErrTokenNotFound, token.ID)
	}
	delete(a.tokens, token.ID)
	a.mu.Unlock()

	newCount, err := a.adjustWithRetry(ctx, stored.SlotID, -stored.Units)
	if err != nil {
		// Возвращаем токен в реестр, чтобы вызывающий мог повторить
		// освобождение: зависшее освобождение навсегда блокирует ёмкость слота
		a.mu.Lock()
		a.tokens[stored.ID] = stored
		a.mu.Unlock()
		a.logger.Error("Release: failed for slot=%d token=%s: %v", stored.SlotID, stored.ID, err)
		return err
	}

	a.logger.Info("Release: slot=%d units=%d current=%d token=%s", stored.SlotID, stored.Units, newCount, stored.ID)
	return nil
}

// Commit погашает токен после того, как бронирование сохранено: резерв
// закреплён за записью бронирования, а возврат этой ёмкости при отмене
// идёт через ReleaseUnits в транзакции отмены, минуя токен. Без
// погашения реестр рос бы на каждое успешное бронирование.
func (a *Allocator) Commit(token *ReservationToken) {
	if token == nil {
		return
	}
	a.mu.Lock()
	delete(a.tokens, token.ID)
	a.mu.Unlock()
}

// ReleaseUnits освобождает units мест слота напрямую, без токена.
// Используется книгой бронирований внутри транзакции отмены, где
// exactly-once гарантируется условным переходом статуса бронирования
// в той же транзакции. Конфликт сериализации возвращается сразу как
// ErrSerializationConflict, без внутренних повторов: после конфликта
// транзакция уже прервана, и повторять отдельный statement внутри неё
// бессмысленно - вызывающий перезапускает транзакцию целиком.
// Возвращает новое значение счётчика.
func (a *Allocator) ReleaseUnits(ctx context.Context, slotID int64, units int) (int, error) {
	if units < domain.MinVisitorsPerBooking || units > domain.MaxVisitorsPerBooking {
		return 0, fmt.Errorf("%w: units=%d, allowed [%d, %d]",
			ErrInvalidUnits, units, domain.MinVisitorsPerBooking, domain.MaxVisitorsPerBooking)
	}

	newCount, err := a.store.AdjustCapacity(ctx, slotID, -units)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSerialization):
			a.logger.Warn("ReleaseUnits: serialization conflict on slot=%d", slotID)
			return 0, fmt.Errorf("%w: slot=%d", ErrSerializationConflict, slotID)
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return 0, ErrSlotNotFound
		default:
			// В том числе декремент ниже нуля - нарушение учёта
			return 0, fmt.Errorf("%w: release slot=%d units=%d: %v", ErrInternal, slotID, units, err)
		}
	}
	return newCount, nil
}

// adjustWithRetry выполняет AdjustCapacity с ограниченным числом попыток
// при retry-able конфликтах хранилища
func (a *Allocator) adjustWithRetry(ctx context.Context, slotID int64, delta int) (int, error) {
	var lastErr error

	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		newCount, err := a.store.AdjustCapacity(ctx, slotID, delta)
		if err == nil {
			return newCount, nil
		}

		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return 0, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotUnavailable):
			return 0, ErrSlotUnavailable
		case errors.Is(err, slotRepo.ErrCapacityExceeded):
			return 0, ErrCapacityExceeded
		case errors.Is(err, slotRepo.ErrCapacityUnderflow):
			// Декремент ниже нуля - нарушение учёта, не retry-able
			return 0, fmt.Errorf("%w: adjust slot=%d delta=%d: %v", ErrInternal, slotID, delta, err)
		case errors.Is(err, slotRepo.ErrSerialization):
			lastErr = err
			a.logger.Warn("adjustWithRetry: serialization conflict on slot=%d, attempt %d/%d",
				slotID, attempt, a.maxRetries)
		default:
			return 0, fmt.Errorf("%w: adjust slot=%d delta=%d: %v", ErrInternal, slotID, delta, err)
		}

		if attempt < a.maxRetries {
			select {
			case <-ctx.Done():
				return 0, fmt.Errorf("%w: %v", ErrInternal, ctx.Err())
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
	}

	return 0, fmt.Errorf("%w: slot=%d after %d attempts: %v",
		ErrConflictRetryExhausted, slotID, a.maxRetries, lastErr)
}
