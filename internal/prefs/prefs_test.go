package prefs

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/nae2121/ISC-onlinejudge/internal/storage"
)

func newStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewStore(kv, zap.NewNop()), kv
}

func TestLoadEmptyStoreReturnsDefaults(t *testing.T) {
	store, _ := newStore(t)

	got := store.Load(context.Background())
	want := Default()

	if got.Theme != want.Theme || got.Live != want.Live || got.FontSize != want.FontSize {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if got.SelectedTargetID != nil {
		t.Fatalf("expected no selected target, got %d", *got.SelectedTargetID)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	target := 52
	saved := Settings{Theme: ThemeLight, Live: false, FontSize: 18, SelectedTargetID: &target}
	store.Save(ctx, saved)

	got := store.Load(ctx)
	if got.Theme != ThemeLight || got.Live != false || got.FontSize != 18 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.SelectedTargetID == nil || *got.SelectedTargetID != 52 {
		t.Fatalf("selected target lost in round trip: %+v", got.SelectedTargetID)
	}
}

func TestLoadCorruptBlobReturnsDefaults(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	if err := kv.Set(ctx, "playground:settings", []byte("{not json")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	got := store.Load(ctx)
	want := Default()
	if got.Theme != want.Theme || got.Live != want.Live || got.FontSize != want.FontSize || got.SelectedTargetID != nil {
		t.Fatalf("expected defaults for corrupt blob, got %+v", got)
	}
}

func TestLoadMergesFieldWise(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	// fontSize has the wrong type, theme is an unknown value, live is valid.
	blob := []byte(`{"theme":"solarized","live":false,"fontSize":"big","selectedTargetId":63}`)
	if err := kv.Set(ctx, "playground:settings", blob); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	got := store.Load(ctx)
	if got.Theme != ThemeDark {
		t.Fatalf("unknown theme should fall back, got %q", got.Theme)
	}
	if got.Live {
		t.Fatalf("live=false should survive the merge")
	}
	if got.FontSize != 14 {
		t.Fatalf("mistyped fontSize should fall back, got %d", got.FontSize)
	}
	if got.SelectedTargetID == nil || *got.SelectedTargetID != 63 {
		t.Fatalf("valid selectedTargetId should survive, got %+v", got.SelectedTargetID)
	}
}

func TestLoadRejectsNegativeAndFractionalNumbers(t *testing.T) {
	store, kv := newStore(t)
	ctx := context.Background()

	blob := []byte(`{"fontSize":12.5,"selectedTargetId":-3}`)
	if err := kv.Set(ctx, "playground:settings", blob); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	got := store.Load(ctx)
	if got.FontSize != 14 {
		t.Fatalf("fractional fontSize should fall back, got %d", got.FontSize)
	}
	if got.SelectedTargetID != nil {
		t.Fatalf("negative target id should be discarded, got %d", *got.SelectedTargetID)
	}
}
