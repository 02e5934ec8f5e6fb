package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBucketTake(t *testing.T) {
	b := newBucket(10, 1.0) // 10 tokens, 1 token per second

	for i := 0; i < 10; i++ {
		allowed, remaining, _ := b.take()
		if !allowed {
			t.Errorf("expected request %d to be allowed", i+1)
		}
		if remaining != 9-i {
			t.Errorf("expected %d remaining after request %d, got %d", 9-i, i+1, remaining)
		}
	}

	allowed, _, reset := b.take()
	if allowed {
		t.Error("expected 11th request to be denied")
	}
	if !reset.After(time.Now()) {
		t.Error("reset time should be in the future")
	}
}

func TestBucketRefill(t *testing.T) {
	b := newBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		b.take()
	}

	// Wait for one token to refill
	time.Sleep(1100 * time.Millisecond)

	if allowed, _, _ := b.take(); !allowed {
		t.Error("expected request to be allowed after refill")
	}
	if allowed, _, _ := b.take(); allowed {
		t.Error("expected request to be denied after consuming refilled token")
	}
}

func TestLimiterAllow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
		if !allowed {
			t.Errorf("expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
	if allowed {
		t.Error("expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", info.Remaining)
	}
	if info.RetryAfter <= 0 {
		t.Error("expected positive retry after")
	}
}

func TestLimiterWhitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
		if !allowed {
			t.Errorf("expected whitelisted request %d to be allowed", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("expected limit 0 for whitelisted client, got %d", info.Limit)
		}
	}
}

func TestLimiterBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/api/stats", "GET"); allowed {
		t.Error("expected blacklisted request to be denied")
	}
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/api/stats", "GET"); !allowed {
			t.Errorf("expected request %d to be allowed when disabled", i+1)
		}
	}
}

func TestLimiterEndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	// /api/tailor allows a burst of 2 against a 10/hour limit
	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/tailor", "POST")
		if !allowed {
			t.Errorf("expected tailor request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("expected limit 10, got %d", info.Limit)
		}
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/api/tailor", "POST"); allowed {
		t.Error("expected tailor request past burst to be denied")
	}

	// Unmatched endpoints fall back to the default limit
	allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
	if !allowed {
		t.Error("expected default-tier request to be allowed")
	}
	if info.Limit != 1000 {
		t.Errorf("expected default limit 1000, got %d", info.Limit)
	}
}

func TestLimiterPrefixMatch(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/api/applications/abc-123", "PUT")
	if !allowed {
		t.Error("expected prefix-matched request to be allowed")
	}
	if info.Limit != 100 {
		t.Errorf("expected write-tier limit 100, got %d", info.Limit)
	}
}

func TestLimiterHealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/health", "GET")
		if !allowed {
			t.Errorf("expected health request %d to be allowed", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("expected limit 0 for health check, got %d", info.Limit)
		}
	}
}

func TestLimiterConcurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	// 200 concurrent requests against a budget of 100
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/api/stats", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiterRemovesStaleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/stats", "GET")
	}

	limiter.mu.Lock()
	if len(limiter.buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(limiter.buckets))
	}
	// Age two clients past the stale cutoff
	limiter.lastAccess["127.0.0.1:/api/stats:GET"] = time.Now().Add(-2 * time.Hour)
	limiter.lastAccess["127.0.0.2:/api/stats:GET"] = time.Now().Add(-2 * time.Hour)
	limiter.mu.Unlock()

	limiter.removeStale()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.buckets) != 3 {
		t.Errorf("expected 3 buckets after cleanup, got %d", len(limiter.buckets))
	}
}

func TestNewLimiterNilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
	if !allowed {
		t.Error("expected request to be allowed with default config")
	}
	if info.Limit != 1000 {
		t.Errorf("expected default limit 1000, got %d", info.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact match", path: "/api/tailor", method: "POST", wantLimit: 10},
		{name: "prefix match", path: "/api/applications/abc/status", method: "POST", wantLimit: 100},
		{name: "method mismatch", path: "/api/tailor", method: "GET", wantNil: true},
		{name: "unknown path", path: "/api/stats", method: "GET", wantNil: true},
		{name: "health unlimited", path: "/health", method: "GET", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected no match, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a match, got nil")
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, got.Limit)
			}
		})
	}
}

func TestLoadConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	if cfg.Enabled {
		t.Error("expected rate limiting to be disabled")
	}
}

func TestLoadConfigLists(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_BLACKLIST", "10.9.9.9")

	cfg := LoadConfig()
	if !cfg.Whitelist["10.0.0.1"] || !cfg.Whitelist["10.0.0.2"] {
		t.Errorf("expected whitelist entries, got %v", cfg.Whitelist)
	}
	if !cfg.Blacklist["10.9.9.9"] {
		t.Errorf("expected blacklist entry, got %v", cfg.Blacklist)
	}
	if len(cfg.EndpointConfigs) == 0 {
		t.Error("expected default endpoint configs")
	}
}
