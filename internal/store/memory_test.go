package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreAddGetRoundtrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Add(ctx, "events", map[string]interface{}{
		"eventName": "Hack Night",
		"isActive":  false,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	doc, err := s.Get(ctx, "events", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Data["eventName"] != "Hack Night" {
		t.Fatalf("eventName = %v, want Hack Night", doc.Data["eventName"])
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "events", "nope")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestMemoryStoreServerTimestamp(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	before := time.Now().UTC()
	id, err := s.Add(ctx, "events", map[string]interface{}{
		"createdAt": ServerTimestamp,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	after := time.Now().UTC()

	doc, err := s.Get(ctx, "events", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	created, ok := doc.Data["createdAt"].(time.Time)
	if !ok {
		t.Fatalf("createdAt = %T, want time.Time", doc.Data["createdAt"])
	}
	if created.Before(before) || created.After(after) {
		t.Fatalf("createdAt %v outside [%v, %v]", created, before, after)
	}
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	s := NewMemoryStore()

	err := s.Update(context.Background(), "events", "nope", map[string]interface{}{"status": "open"})
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestMemoryStoreQueryEqual(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, active := range []bool{true, false, true} {
		if _, err := s.Add(ctx, "events", map[string]interface{}{"isActive": active, "n": i}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	docs, err := s.Query(ctx, "events", "isActive", OpEqual, true, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}

	docs, err = s.Query(ctx, "events", "isActive", OpEqual, true, 1)
	if err != nil {
		t.Fatalf("Query with limit: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs with limit 1, want 1", len(docs))
	}
}

func TestMemoryStoreListOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := s.Add(ctx, "events", map[string]interface{}{
			"n":         i,
			"createdAt": base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	docs, err := s.List(ctx, "events", "createdAt", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d docs, want 3", len(docs))
	}
	for i, want := range []int{2, 1, 0} {
		if docs[i].Data["n"] != want {
			t.Fatalf("docs[%d].n = %v, want %d", i, docs[i].Data["n"], want)
		}
	}
}

func TestMemoryStoreBatchAppliesAllWrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, _ := s.Add(ctx, "events", map[string]interface{}{"isActive": true})
	b, _ := s.Add(ctx, "events", map[string]interface{}{"isActive": false})

	batch := s.Batch()
	batch.Update("events", a, map[string]interface{}{"isActive": false})
	batch.Update("events", b, map[string]interface{}{"isActive": true})
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	docA, _ := s.Get(ctx, "events", a)
	docB, _ := s.Get(ctx, "events", b)
	if docA.Data["isActive"] != false || docB.Data["isActive"] != true {
		t.Fatalf("after batch: a=%v b=%v, want false/true", docA.Data["isActive"], docB.Data["isActive"])
	}
}

func TestMemoryStoreBatchIsAtomic(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, _ := s.Add(ctx, "events", map[string]interface{}{"isActive": true})

	batch := s.Batch()
	batch.Update("events", a, map[string]interface{}{"isActive": false})
	batch.Update("events", "missing", map[string]interface{}{"isActive": true})

	if err := batch.Commit(ctx); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("Commit err = %v, want ErrDocumentNotFound", err)
	}

	// The valid write in the same batch must not have been applied.
	doc, _ := s.Get(ctx, "events", a)
	if doc.Data["isActive"] != true {
		t.Fatalf("isActive = %v after failed batch, want true", doc.Data["isActive"])
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, _ := s.Add(ctx, "pastEvents", map[string]interface{}{"title": "Expo"})
	if err := s.Delete(ctx, "pastEvents", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "pastEvents", id); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrDocumentNotFound", err)
	}
}
