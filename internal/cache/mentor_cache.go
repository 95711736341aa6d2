package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MentorDataSource loads the full, normalized mentor list
type MentorDataSource interface {
	ListMentors(ctx context.Context) ([]*models.Mentor, error)
}

// MentorCacheInterface is what repositories depend on
type MentorCacheInterface interface {
	Get(ctx context.Context) ([]*models.Mentor, error)
	GetByID(ctx context.Context, id string) (*models.Mentor, bool, error)
	Invalidate()
	IsReady() bool
}

const (
	allMentorsKey    = "mentor:all"
	byIDKey          = "mentor:by_id"
	metadataKey      = "mentor:metadata"
	cacheCheckPeriod = 30 * time.Second
)

// CacheMetadata stores cache-wide information
type CacheMetadata struct {
	LastRefreshTime time.Time
	MentorCount     int
}

// MentorCache keeps the mentor list in memory for ttl. A miss reloads the
// whole list from the data source; concurrent misses share one load.
type MentorCache struct {
	cache      *gocache.Cache
	dataSource MentorDataSource
	group      singleflight.Group
	ttl        time.Duration
	disabled   bool

	// mu guards ready and generation. Invalidate bumps generation so a load
	// that started earlier does not write its list back.
	mu         sync.RWMutex
	ready      bool
	generation uint64
}

var _ MentorCacheInterface = (*MentorCache)(nil)

// NewMentorCache creates a mentor cache. With disabled set every Get goes to
// the data source.
func NewMentorCache(dataSource MentorDataSource, ttlSeconds int, disabled bool) *MentorCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &MentorCache{
		cache:      gocache.New(ttl, cacheCheckPeriod),
		dataSource: dataSource,
		ttl:        ttl,
		disabled:   disabled,
	}
}

// Warm loads the list once at startup. A failure is returned but the cache
// stays usable and will load lazily on the next Get.
func (mc *MentorCache) Warm(ctx context.Context) error {
	start := time.Now()
	if _, err := mc.load(ctx); err != nil {
		return err
	}
	logger.Info("Mentor cache warmed", zap.Duration("duration", time.Since(start)))
	return nil
}

// IsReady reports whether at least one load has succeeded
func (mc *MentorCache) IsReady() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.ready || mc.disabled
}

// Get returns the mentor list ordered by name
func (mc *MentorCache) Get(ctx context.Context) ([]*models.Mentor, error) {
	if mc.disabled {
		return mc.dataSource.ListMentors(ctx)
	}

	if data, found := mc.cache.Get(allMentorsKey); found {
		if mentors, ok := data.([]*models.Mentor); ok {
			metrics.CacheHits.WithLabelValues("mentors").Inc()
			return mentors, nil
		}
		mc.cache.Delete(allMentorsKey)
	}

	metrics.CacheMisses.WithLabelValues("mentors").Inc()
	return mc.load(ctx)
}

// GetByID finds a mentor in the cached list
func (mc *MentorCache) GetByID(ctx context.Context, id string) (*models.Mentor, bool, error) {
	if mc.disabled {
		mentors, err := mc.dataSource.ListMentors(ctx)
		if err != nil {
			return nil, false, err
		}
		m, ok := indexByID(mentors)[id]
		return m, ok, nil
	}

	if data, found := mc.cache.Get(byIDKey); found {
		if index, ok := data.(map[string]*models.Mentor); ok {
			metrics.CacheHits.WithLabelValues("mentor_by_id").Inc()
			m, ok := index[id]
			return m, ok, nil
		}
	}

	metrics.CacheMisses.WithLabelValues("mentor_by_id").Inc()
	mentors, err := mc.load(ctx)
	if err != nil {
		return nil, false, err
	}
	m, ok := indexByID(mentors)[id]
	return m, ok, nil
}

// Invalidate drops the cached list so the next read reloads it
func (mc *MentorCache) Invalidate() {
	mc.mu.Lock()
	mc.generation++
	mc.cache.Delete(allMentorsKey)
	mc.cache.Delete(byIDKey)
	mc.group.Forget(allMentorsKey)
	mc.mu.Unlock()

	logger.Debug("Mentor cache invalidated")
}

// GetMetadata returns information about the last load
func (mc *MentorCache) GetMetadata() (*CacheMetadata, error) {
	data, found := mc.cache.Get(metadataKey)
	if !found {
		return nil, fmt.Errorf("metadata not found")
	}

	metadata, ok := data.(*CacheMetadata)
	if !ok {
		return nil, fmt.Errorf("invalid metadata type")
	}

	return metadata, nil
}

func (mc *MentorCache) load(ctx context.Context) ([]*models.Mentor, error) {
	v, err, _ := mc.group.Do(allMentorsKey, func() (interface{}, error) {
		mc.mu.RLock()
		generation := mc.generation
		mc.mu.RUnlock()

		mentors, err := mc.dataSource.ListMentors(ctx)
		if err != nil {
			return nil, err
		}
		mc.populate(mentors, generation)
		return mentors, nil
	})
	if err != nil {
		logger.Error("Failed to load mentors into cache", zap.Error(err))
		return nil, fmt.Errorf("failed to load mentors: %w", err)
	}

	mentors, _ := v.([]*models.Mentor) //nolint:errcheck // type is fixed by load
	return mentors, nil
}

// populate stores mentors unless the cache was invalidated after the load
// that produced them began.
func (mc *MentorCache) populate(mentors []*models.Mentor, generation uint64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.generation != generation {
		logger.Debug("Discarding mentor list loaded before invalidation")
		return
	}

	mc.cache.Set(allMentorsKey, mentors, mc.ttl)
	mc.cache.Set(byIDKey, indexByID(mentors), mc.ttl)
	mc.cache.Set(metadataKey, &CacheMetadata{
		LastRefreshTime: time.Now(),
		MentorCount:     len(mentors),
	}, gocache.NoExpiration)
	mc.ready = true

	metrics.CacheSize.WithLabelValues("mentors").Set(float64(len(mentors)))
}

func indexByID(mentors []*models.Mentor) map[string]*models.Mentor {
	index := make(map[string]*models.Mentor, len(mentors))
	for _, m := range mentors {
		if m != nil {
			index[m.ID] = m
		}
	}
	return index
}
