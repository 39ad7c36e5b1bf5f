package constants

import (
	"fmt"
	"time"
)

// Redis key layout: opshub:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_SHORT  = 6 * time.Hour
	TTL_DYNAMIC_SHORT = 5 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "opshub"
)

// ================== SITES MODULE ==================

const (
	CACHE_KEY_SITES_ACTIVE = CACHE_PREFIX + ":sites:active:all"
	CACHE_KEY_SITES_ALL    = CACHE_PREFIX + ":sites:list:all"
	CACHE_KEY_SITE_BY_ID   = CACHE_PREFIX + ":sites:detail:id:" // + site-id
)

const (
	TTL_SITES_LIST  = TTL_STATIC_SHORT
	TTL_SITE_DETAIL = TTL_STATIC_LONG
)

// ================== RATE LIMITING ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_SITES_ALL = CACHE_PREFIX + ":sites:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildSiteDetailKey(siteID uint) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_SITE_BY_ID, siteID)
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return CACHE_KEY_RATE_LIMIT + clientIP + ":" + limitType
}
