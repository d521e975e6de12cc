package cache

import (
	"context"
	"testing"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()

	if err := c.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var dest string
	ok, err := c.Get(ctx, "k", &dest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Noop.Get should always report absent")
	}

	existed, err := c.Delete(ctx, "k")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if existed {
		t.Error("Noop.Delete should always report absent")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	type record struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	if err := c.Set(ctx, "k", record{ID: "1", Title: "Water plants"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got record
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.ID != "1" || got.Title != "Water plants" {
		t.Errorf("unexpected value: %+v", got)
	}

	t.Run("delete reports prior existence", func(t *testing.T) {
		existed, _ := c.Delete(ctx, "k")
		if !existed {
			t.Error("first delete should report the key existed")
		}
		existed, _ = c.Delete(ctx, "k")
		if existed {
			t.Error("second delete should report absent")
		}
	})

	t.Run("missing key is absent", func(t *testing.T) {
		var dest record
		ok, err := c.Get(ctx, "nope", &dest)
		if err != nil || ok {
			t.Errorf("expected absent, got ok=%v err=%v", ok, err)
		}
	})
}

func TestKeyScheme(t *testing.T) {
	if got := ItemKey("abc"); got != "todo::item::abc" {
		t.Errorf("ItemKey = %s", got)
	}
	if AllItemsKey != "todo::items::all" {
		t.Errorf("AllItemsKey = %s", AllItemsKey)
	}
	if got := Key("a", "", "b"); got != "a::b" {
		t.Errorf("Key should skip empty segments, got %s", got)
	}
}
