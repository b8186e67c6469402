package room

import (
	"testing"

	"github.com/truongvq/kienquoc-backend/internal"
)

func TestStorePutRejectsDuplicateCode(t *testing.T) {
	store := NewStore()
	if !store.Put(&internal.Room{Code: "123456"}) {
		t.Fatalf("first put must succeed")
	}
	if store.Put(&internal.Room{Code: "123456"}) {
		t.Fatalf("second put under the same code must fail")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 room, got %d", store.Len())
	}
}

func TestStoreGetNormalizesCode(t *testing.T) {
	store := NewStore()
	store.Put(&internal.Room{Code: "123456"})

	if store.Get(" 123456 ") == nil {
		t.Fatalf("expected lookup to trim whitespace")
	}
	if store.Get("999999") != nil {
		t.Fatalf("expected nil for unknown code")
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	store.Put(&internal.Room{Code: "123456"})

	if !store.Delete("123456") {
		t.Fatalf("expected delete of existing room to succeed")
	}
	if store.Delete("123456") {
		t.Fatalf("expected delete of missing room to fail")
	}
	if store.Get("123456") != nil {
		t.Fatalf("expected room gone after delete")
	}
}
