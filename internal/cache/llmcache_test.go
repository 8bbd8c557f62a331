package cache

import (
	"context"
	"testing"
)

func TestLLMCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := &LLMCache{Dir: dir}
	ctx := context.Background()

	key := KeyFrom("gpt-4", "system\n\nuser prompt")
	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss on empty cache, ok=%t err=%v", ok, err)
	}

	if err := c.Save(ctx, key, []byte(`{"article":"body"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%t err=%v", ok, err)
	}
	if string(b) != `{"article":"body"}` {
		t.Fatalf("unexpected cached bytes: %s", b)
	}
}

func TestKeyFrom_Distinguishes(t *testing.T) {
	if KeyFrom("gpt-4", "a") == KeyFrom("gpt-4", "b") {
		t.Fatal("different prompts must produce different keys")
	}
	if KeyFrom("gpt-4", "a") == KeyFrom("gpt-3.5", "a") {
		t.Fatal("different models must produce different keys")
	}
}

func TestLLMCache_NoDirConfigured(t *testing.T) {
	c := &LLMCache{}
	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error when cache dir is not configured")
	}
}
