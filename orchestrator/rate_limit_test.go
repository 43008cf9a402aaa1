// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rl, err := NewRateLimiter("redis://"+mr.Addr(), limit, window)
	if err != nil {
		t.Fatalf("NewRateLimiter() error = %v", err)
	}
	t.Cleanup(func() { rl.Close() })
	return rl, mr
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if !rl.Allow(ctx, "case:CASE-1") {
			t.Fatalf("request %d denied under limit", i)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()
	rl.Allow(ctx, "case:CASE-1")
	rl.Allow(ctx, "case:CASE-1")
	if rl.Allow(ctx, "case:CASE-1") {
		t.Error("third request allowed over a limit of 2")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()
	rl.Allow(ctx, "case:CASE-1")
	if !rl.Allow(ctx, "case:CASE-2") {
		t.Error("unrelated key throttled")
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()
	rl.Allow(ctx, "case:CASE-1")
	if rl.Allow(ctx, "case:CASE-1") {
		t.Fatal("second request allowed inside window")
	}
	mr.FastForward(2 * time.Minute)
	if !rl.Allow(ctx, "case:CASE-1") {
		t.Error("request denied after window passed")
	}
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	rl, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()
	if !rl.Allow(context.Background(), "case:CASE-1") {
		t.Error("request denied while redis is down, want fail-open")
	}
}

func TestRateLimiter_DisabledWithoutURL(t *testing.T) {
	rl, err := NewRateLimiter("", 1, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if !rl.Allow(context.Background(), "anything") {
			t.Fatal("disabled limiter denied a request")
		}
	}
}

func TestNewRateLimiter_BadURL(t *testing.T) {
	if _, err := NewRateLimiter("not a url", 1, time.Minute); err == nil {
		t.Error("expected error for malformed url")
	}
}
