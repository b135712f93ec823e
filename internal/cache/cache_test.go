package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "list:blog"); ok {
		t.Error("unexpected hit on empty cache")
	}

	c.Set(ctx, "list:blog", []byte(`[{"id":1}]`))
	got, ok := c.Get(ctx, "list:blog")
	if !ok || string(got) != `[{"id":1}]` {
		t.Errorf("Get = %q, %v", got, ok)
	}

	c.Delete(ctx, "list:blog")
	if _, ok := c.Get(ctx, "list:blog"); ok {
		t.Error("hit after Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "list:products", []byte("[]"))
	if _, ok := c.Get(ctx, "list:products"); !ok {
		t.Fatal("miss before expiry")
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get(ctx, "list:products"); ok {
		t.Error("hit after expiry")
	}
}
