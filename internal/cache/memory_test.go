package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("absent"); found {
		t.Error("Expected miss for absent key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if string(val) != "v" {
		t.Errorf("Expected v, got %s", val)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after Delete")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected miss after Clear")
	}
}

func TestKey_StableAndDistinct(t *testing.T) {
	if Key("missing modifier") != Key("missing modifier") {
		t.Error("Expected stable keys")
	}
	if Key("missing modifier") == Key("incorrect npi") {
		t.Error("Expected distinct keys for distinct reasons")
	}
}
