package clients

import "time"

const (
	MAX_RETRIES     = 3
	RETRY_BACKOFF   = 250 * time.Millisecond
	USER_AGENT      = "prodpulse-client/1.0 (+https://github.com/spacesedan/prodpulse)"
	TREND_CACHE_TTL = 6 * time.Hour
)
