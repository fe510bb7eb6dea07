package store

import (
	"testing"
	"time"
)

func TestIdentifierCachePutGet(t *testing.T) {
	c := NewIdentifierCache(2, time.Minute)
	c.Put("mei", "US12345678", []int{1, 2})
	got, ok := c.Get("mei", "US12345678")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if rows, _ := got.([]int); len(rows) != 2 {
		t.Errorf("unexpected cached value: %+v", got)
	}
}

func TestIdentifierCacheKindSeparation(t *testing.T) {
	c := NewIdentifierCache(10, time.Minute)
	c.Put("mei", "12345", "mei-value")
	c.Put("lei", "12345", "lei-value")
	v, _ := c.Get("mei", "12345")
	if v != "mei-value" {
		t.Errorf("kind/value collision: got %v for mei", v)
	}
	v, _ = c.Get("lei", "12345")
	if v != "lei-value" {
		t.Errorf("kind/value collision: got %v for lei", v)
	}
}

func TestIdentifierCacheEviction(t *testing.T) {
	c := NewIdentifierCache(2, time.Minute)
	c.Put("mei", "a", 1)
	c.Put("mei", "b", 2)
	c.Put("mei", "c", 3)
	if _, ok := c.Get("mei", "a"); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if _, ok := c.Get("mei", "c"); !ok {
		t.Error("expected newest entry to still be cached")
	}
}

func TestIdentifierCacheExpiry(t *testing.T) {
	c := NewIdentifierCache(10, -time.Second)
	c.Put("mei", "a", 1)
	if _, ok := c.Get("mei", "a"); ok {
		t.Error("expected expired entry to miss")
	}
}
