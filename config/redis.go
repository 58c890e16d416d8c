package config

import (
	"log"
	"time"

	"main/services"
	"main/utils"
)

// InitRedis wires the optional Redis-backed components. The service
// runs without Redis: the focus cache falls through to MongoDB and
// token blacklisting is disabled.
func InitRedis() {
	redisURL := utils.GetEnvAsString("REDIS_URL", "")
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without Redis")
		return
	}

	cacheTTL := time.Duration(utils.GetEnvAsInt("FOCUS_CACHE_TTL_SECONDS", 120)) * time.Second
	cache, err := services.NewFocusCache(redisURL, cacheTTL)
	if err != nil {
		log.Printf("Focus cache disabled: %v", err)
	} else {
		services.GlobalFocusCache = cache
	}

	blacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		log.Printf("Token blacklist disabled: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}
}
