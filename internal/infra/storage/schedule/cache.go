package schedule

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
)

type cacheKey struct {
	doctorID int64
	weekday  domain.Weekday
}

// CachedRepository LRU-кэш поверх хранилища расписаний
// Кэшируется только чтение по (врач, день недели); изменения слотов сбрасывают ключ.
// Поколение ключа растёт при каждом сбросе: чтение, начатое до сброса, не кладёт
// результат в кэш
type CachedRepository struct {
	Store
	cache   *lru.Cache[cacheKey, []domain.RecurringSlot]
	metrics CacheMetrics
	logger  Logger

	mu          sync.Mutex
	generations map[cacheKey]uint64
}

// NewCachedRepository создает кэш размером size; metrics может быть nil
func NewCachedRepository(store Store, size int, metrics CacheMetrics, logger Logger) (*CachedRepository, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCacheSize, size)
	}

	cache, err := lru.New[cacheKey, []domain.RecurringSlot](size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCacheSize, err)
	}

	return &CachedRepository{
		Store:       store,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		generations: make(map[cacheKey]uint64),
	}, nil
}

// ListByDoctorAndWeekday читает из кэша, при промахе идёт в хранилище
func (c *CachedRepository) ListByDoctorAndWeekday(ctx context.Context, doctorID int64, weekday domain.Weekday) ([]domain.RecurringSlot, error) {
	key := cacheKey{doctorID: doctorID, weekday: weekday}

	if slots, ok := c.cache.Get(key); ok {
		c.recordLookup(true)
		c.logger.Debug("schedule cache hit: doctor=%d, weekday=%d, slots=%d", doctorID, weekday, len(slots))
		return cloneSlots(slots), nil
	}
	c.recordLookup(false)

	generation := c.generation(key)

	slots, err := c.Store.ListByDoctorAndWeekday(ctx, doctorID, weekday)
	if err != nil {
		return nil, err
	}

	if c.store(key, generation, slots) {
		c.logger.Debug("schedule cache store: doctor=%d, weekday=%d, slots=%d", doctorID, weekday, len(slots))
	} else {
		c.logger.Debug("schedule cache skip stale read: doctor=%d, weekday=%d", doctorID, weekday)
	}
	return slots, nil
}

// Create добавляет слот и сбрасывает кэш дня недели
func (c *CachedRepository) Create(ctx context.Context, slot *domain.RecurringSlot) (*domain.RecurringSlot, error) {
	created, err := c.Store.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	c.invalidate(created.DoctorID, created.Weekday)
	return created, nil
}

// Delete удаляет слот и сбрасывает кэш дня недели
func (c *CachedRepository) Delete(ctx context.Context, id int64) (*domain.RecurringSlot, error) {
	deleted, err := c.Store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(deleted.DoctorID, deleted.Weekday)
	return deleted, nil
}

// Len количество закэшированных ключей
func (c *CachedRepository) Len() int {
	return c.cache.Len()
}

func (c *CachedRepository) generation(key cacheKey) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// store кладёт слоты в кэш, только если ключ не сбрасывали после начала чтения
func (c *CachedRepository) store(key cacheKey, generation uint64, slots []domain.RecurringSlot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[key] != generation {
		return false
	}
	c.cache.Add(key, cloneSlots(slots))
	return true
}

func (c *CachedRepository) invalidate(doctorID int64, weekday domain.Weekday) {
	key := cacheKey{doctorID: doctorID, weekday: weekday}

	c.mu.Lock()
	c.generations[key]++
	removed := c.cache.Remove(key)
	c.mu.Unlock()

	if removed {
		c.logger.Info("schedule cache invalidated: doctor=%d, weekday=%d", doctorID, weekday)
	}
}

func (c *CachedRepository) recordLookup(hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCacheLookup(hit)
	}
}

// cloneSlots вызывающий код не должен менять содержимое кэша
func cloneSlots(slots []domain.RecurringSlot) []domain.RecurringSlot {
	result := make([]domain.RecurringSlot, len(slots))
	copy(result, slots)
	return result
}
