package geofence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const targetCacheKeyPrefix = "geofence:targets:"

func targetCacheKey(organizationID string) string {
	return targetCacheKeyPrefix + organizationID
}

// TargetService is the read path for geofence targets. Every clock
// event needs the org's targets, so lookups are cached in redis with
// singleflight guarding the database on cold keys.
type TargetService interface {
	ActiveTargets(ctx context.Context, organizationID string) ([]Target, error)
}

type targetService struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewTargetService(repo Repository, rdb *redis.Client) TargetService {
	return &targetService{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("geofence.targets"),
	}
}

func (s *targetService) ActiveTargets(ctx context.Context, organizationID string) ([]Target, error) {
	cacheKey := targetCacheKey(organizationID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var targets []Target
			if err := json.Unmarshal([]byte(cached), &targets); err == nil {
				return targets, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		targets, err := s.repo.FindActiveByOrganization(ctx, organizationID)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(targets); err == nil {
				// Short TTL: radius or active-flag edits must take
				// effect before the next shift starts.
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return targets, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]Target), nil
}
