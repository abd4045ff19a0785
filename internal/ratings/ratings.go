// internal/ratings/ratings.go
package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/common/metrics"
	"schema-engine/internal/content"
)

const cacheKey = "schema:rating:store"

// Aggregate is the store-wide review aggregate. Value is the arithmetic mean
// rounded to one decimal, string-formatted the way it appears in output.
type Aggregate struct {
	Value string `json:"avg"`
	Count int    `json:"count"`
}

// HasReviews reports whether an aggregateRating field should exist at all.
func (a Aggregate) HasReviews() bool {
	return a.Count > 0
}

// Service computes the aggregate with a TTL cache in front. A nil redis
// client degrades to computing on every call.
type Service struct {
	reviews content.ReviewSource
	redis   *redis.Client
	ttl     time.Duration
	log     logger.Logger
}

func NewService(reviews content.ReviewSource, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Service {
	return &Service{
		reviews: reviews,
		redis:   rdb,
		ttl:     ttl,
		log:     log,
	}
}

// StoreRating returns the cached aggregate, computing and caching on miss.
func (s *Service) StoreRating(ctx context.Context) (Aggregate, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var agg Aggregate
			if err := json.Unmarshal([]byte(val), &agg); err == nil {
				metrics.CacheLookups.WithLabelValues("rating", "hit").Inc()
				return agg, nil
			}
		}
		metrics.CacheLookups.WithLabelValues("rating", "miss").Inc()
	}

	agg, err := s.compute(ctx)
	if err != nil {
		return Aggregate{}, err
	}

	if s.redis != nil {
		data, _ := json.Marshal(agg)
		if err := s.redis.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
			s.log.WithError(err).Debug("rating cache write failed", nil)
		}
	}
	return agg, nil
}

// Invalidate drops the cached aggregate, for use when a review is approved.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, cacheKey).Err()
}

func (s *Service) compute(ctx context.Context) (Aggregate, error) {
	values, err := s.reviews.Ratings(ctx)
	if err != nil {
		return Aggregate{}, fmt.Errorf("load review ratings: %w", err)
	}
	if len(values) == 0 {
		return Aggregate{}, nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return Aggregate{
		Value: fmt.Sprintf("%.1f", sum/float64(len(values))),
		Count: len(values),
	}, nil
}
