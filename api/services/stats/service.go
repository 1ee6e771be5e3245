package statsservice

import (
	"context"
	"time"

	"familykarting/api/dto"
	statsrepo "familykarting/api/repositories/stats"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	cacheKey = "stats"
	cacheTTL = time.Minute
)

// StatsService serves the headline counters, cached for a short while.
type StatsService struct {
	StatsRepository statsrepo.StatsRepository
	cache           *gocache.Cache
}

// StatsServiceDeps is the dependency list for the stats service.
type StatsServiceDeps struct {
	DB *gorm.DB
}

// NewStatsService creates a stats service.
func NewStatsService(deps *StatsServiceDeps) *StatsService {
	return &StatsService{
		StatsRepository: statsrepo.NewStatsRepository(deps.DB),
		cache:           gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// GetStats returns the counters of circuits, drivers, finished races and laps.
func (ss *StatsService) GetStats(ctx context.Context) (*dto.Stats, error) {
	if cached, found := ss.cache.Get(cacheKey); found {
		stats := cached.(dto.Stats)
		return &stats, nil
	}

	counts, err := ss.StatsRepository.GetCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := dto.Stats{
		Circuits:  counts.Circuits,
		Drivers:   counts.Drivers,
		RacesDone: counts.RacesDone,
		Laps:      counts.Laps,
	}
	ss.cache.SetDefault(cacheKey, stats)

	return &stats, nil
}

// Invalidate drops the cached counters.
func (ss *StatsService) Invalidate() {
	ss.cache.Delete(cacheKey)
}
