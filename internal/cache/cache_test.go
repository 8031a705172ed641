// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("key", "value")

	got, ok := c.Get("key")
	if !ok || got != "value" {
		t.Errorf("Get() = %v, %v, want value, true", got, ok)
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestExpiration(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.SetWithTTL("short", "value", -time.Second)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry still retrievable")
	}

	stats := c.GetStats()
	if stats.Evictions == 0 {
		t.Error("expired access not counted as eviction")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("key", "value")
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("deleted entry still retrievable")
	}

	// Deleting a missing key must not panic.
	c.Delete("missing")
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear()")
	}
	if got := c.GetStats().TotalKeys; got != 0 {
		t.Errorf("TotalKeys = %d, want 0", got)
	}
}

func TestHitRate(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("key", "value")

	c.Get("key")     // hit
	c.Get("missing") // miss

	if got := c.HitRate(); got != 50.0 {
		t.Errorf("HitRate() = %g, want 50", got)
	}
}

func TestHitRateEmpty(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	if got := c.HitRate(); got != 0.0 {
		t.Errorf("HitRate() with no traffic = %g, want 0", got)
	}
}

func TestGenerateKeyStable(t *testing.T) {
	t.Parallel()

	type params struct {
		Days int
		N    int
	}

	a := GenerateKey("trending", params{Days: 30, N: 10})
	b := GenerateKey("trending", params{Days: 30, N: 10})
	if a != b {
		t.Errorf("GenerateKey not stable: %q vs %q", a, b)
	}

	c := GenerateKey("trending", params{Days: 7, N: 10})
	if a == c {
		t.Error("GenerateKey collision for different params")
	}
}
