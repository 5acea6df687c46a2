package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyCache holds recent Google Trends scores so repeated keyword
// lookups skip the rate-limited SerpAPI round trip. Entries expire
// after TREND_CACHE_TTL; a cache miss or any Valkey failure just means
// the caller goes back to the API.
type ValkeyCache struct {
	client valkey.Client
	opts   valkey.ClientOption
	mu     sync.Mutex
}

func NewValkeyCache(address, password string, useTLS bool) (*ValkeyCache, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{address},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey: %w", err)
	}

	slog.Info("[ValkeyCache] Connected", slog.String("address", address))
	return &ValkeyCache{client: client, opts: opts}, nil
}

func trendKey(geo, keyword string) string {
	return "trends:score:" + geo + ":" + keyword
}

// GetTrendScore returns a cached score for the keyword, if present.
func (vc *ValkeyCache) GetTrendScore(ctx context.Context, geo, keyword string) (float64, bool) {
	res := vc.doWithRetry(ctx, vc.client.B().Get().Key(trendKey(geo, keyword)).Build())
	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return 0, false
	}

	score, err := res.AsFloat64()
	if err != nil {
		return 0, false
	}
	return score, true
}

// SetTrendScore stores a score with the cache TTL. Failures are logged
// and swallowed; caching is strictly best effort.
func (vc *ValkeyCache) SetTrendScore(ctx context.Context, geo, keyword string, score float64) {
	cmd := vc.client.B().Set().
		Key(trendKey(geo, keyword)).
		Value(fmt.Sprintf("%.2f", score)).
		Ex(TREND_CACHE_TTL).
		Build()

	if err := vc.doWithRetry(ctx, cmd).Error(); err != nil {
		slog.Warn("[ValkeyCache] Failed to cache trend score",
			slog.String("keyword", keyword),
			slog.String("error", err.Error()))
	}
}

func (vc *ValkeyCache) Close() {
	vc.client.Close()
}

func (vc *ValkeyCache) doWithRetry(ctx context.Context, cmd valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < MAX_RETRIES; i++ {
		result = vc.client.Do(ctx, cmd)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyCache] Command failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		time.Sleep(RETRY_BACKOFF)
	}
	return result
}

func (vc *ValkeyCache) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ValkeyCache] Recreate failed", slog.Any("panic", r))
		}
	}()

	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyCache] Attempting to recreate Valkey client...")
	vc.client.Close()

	client, err := valkey.NewClient(vc.opts)
	if err != nil {
		slog.Error("[ValkeyCache] Failed to recreate client", slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		slog.Error("[ValkeyCache] Failed to ping after recreate", slog.String("error", err.Error()))
		client.Close()
		return
	}

	vc.client = client
	slog.Info("[ValkeyCache] Client recreated")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
