package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

func testResult(name string, at time.Time) *SchemaResult {
	return &SchemaResult{
		ID:        uuid.New(),
		Name:      name,
		Fields:    []schema.Field{{Name: "id", Type: schema.Of(schema.Integer)}},
		RowCount:  3,
		CreatedAt: at,
	}
}

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	res := testResult("orders.csv", time.Now())

	if err := store.Save(ctx, res); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != res.Name || got.RowCount != res.RowCount {
		t.Errorf("Get() = %+v, want %+v", got, res)
	}

	// Mutating the returned copy must not change the stored result
	got.Name = "changed"
	again, _ := store.Get(ctx, res.ID)
	if again.Name != "orders.csv" {
		t.Errorf("stored name changed to %q", again.Name)
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Now()

	var ids []uuid.UUID
	for i, name := range []string{"a", "b", "c"} {
		res := testResult(name, base.Add(time.Duration(i)*time.Second))
		ids = append(ids, res.ID)
		store.Save(ctx, res)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d results, want 3", len(all))
	}
	if all[0].Name != "c" || all[2].Name != "a" {
		t.Errorf("List() order = %s,%s,%s; want newest first", all[0].Name, all[1].Name, all[2].Name)
	}

	limited, _ := store.List(ctx, 2)
	if len(limited) != 2 || limited[0].ID != ids[2] {
		t.Errorf("List(2) = %d results, first %v", len(limited), limited[0].ID)
	}

	// Re-saving an ID updates in place without duplicating it
	updated := *all[2]
	updated.Name = "a2"
	store.Save(ctx, &updated)
	all, _ = store.List(ctx, 0)
	if len(all) != 3 || all[2].Name != "a2" {
		t.Errorf("after update: %d results, oldest %q", len(all), all[2].Name)
	}
}
