package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/core/filter"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/rs/zerolog/log"
)

const (
	// currentCacheVersion defines the version of the cached aggregation layout
	currentCacheVersion = 1

	// cacheMaxAge is how long a cached aggregation stays usable
	cacheMaxAge = 7 * 24 * time.Hour
)

// cachedAggregate returns the aggregation of records, reusing a cached result for the
// same incident file, criteria and command when one exists.
func cachedAggregate(store contract.CacheStore, digest string, criteria filter.Criteria, command string, records []schema.IncidentRecord) schema.AggregationResult {
	if store == nil || digest == "" {
		return agg.Aggregate(records)
	}

	key := generateCacheKey(digest, criteria, command)
	if result := checkCacheHit(store, key); result != nil {
		log.Debug().Str("command", command).Msg("Aggregation cache hit")
		return *result
	}
	return computeAndStore(store, key, records)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.AggregationResult {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheMaxAge {
		return nil // Stale or version mismatch
	}

	var result schema.AggregationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	if result.ByDistrict == nil {
		result.ByDistrict = make(map[int]*schema.DistrictStats)
	}
	return &result
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(store contract.CacheStore, key string, records []schema.IncidentRecord) schema.AggregationResult {
	result := agg.Aggregate(records)

	data, err := json.Marshal(result)
	if err != nil {
		contract.LogWarn("Failed to encode aggregation for caching", err)
		return result
	}
	if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Failed to store aggregation in cache", err)
	}
	return result
}

// generateCacheKey creates a unique key from the incident file digest, the criteria and the command
func generateCacheKey(digest string, criteria filter.Criteria, command string) string {
	key := fmt.Sprintf("%s:%s:%s", digest, criteria.String(), command)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
