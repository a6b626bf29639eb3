package storage

import (
	"context"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	// Unwritten key loads as nil, nil.
	data, err := store.Load(ctx, "orders")
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if data != nil {
		t.Fatalf("Load empty = %q, want nil", data)
	}

	want := []byte(`[{"id":"1"}]`)
	if err := store.Save(ctx, "orders", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx, "orders")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Load = %q, want %q", got, want)
	}

	// Save replaces, never appends.
	want = []byte(`[]`)
	if err := store.Save(ctx, "orders", want); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err = store.Load(ctx, "orders")
	if err != nil {
		t.Fatalf("Load after overwrite: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Load after overwrite = %q, want %q", got, want)
	}
}

func TestFileStoreKeysAreIndependent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "orders", []byte(`["o"]`)); err != nil {
		t.Fatalf("Save orders: %v", err)
	}
	if err := store.Save(ctx, "invoices", []byte(`["i"]`)); err != nil {
		t.Fatalf("Save invoices: %v", err)
	}

	got, err := store.Load(ctx, "orders")
	if err != nil || string(got) != `["o"]` {
		t.Errorf("Load orders = %q, %v", got, err)
	}
	got, err = store.Load(ctx, "invoices")
	if err != nil || string(got) != `["i"]` {
		t.Errorf("Load invoices = %q, %v", got, err)
	}
}
