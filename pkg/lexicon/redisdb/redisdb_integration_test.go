//go:build integration

package redisdb

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

func TestRedisRoundTrip_Integration(t *testing.T) {
	addr := os.Getenv("LEXGRAPH_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := New(ctx, Config{Addr: addr, Prefix: "lexgraph-test:" + uuid.NewString() + ":"})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer db.Close()

	src, err := lexicon.LoadFile("../testdata/hire.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	for _, s := range src.Senses() {
		if err := db.Put(ctx, s); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	// Re-putting must not duplicate index entries.
	if err := db.Put(ctx, src.Senses()[0]); err != nil {
		t.Fatalf("Put again: %v", err)
	}

	ids, err := db.LookupWord(ctx, "hire", lexicon.Noun)
	if err != nil {
		t.Fatalf("LookupWord: %v", err)
	}
	if len(ids) != 2 || ids[0].Offset != 1213223 {
		t.Errorf("noun senses = %v, want 2 with 01213223-n first", ids)
	}

	hire, err := db.Lookup(ctx, lexicon.SenseID{Offset: 1213223, POS: lexicon.Noun})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	ptrs, _ := db.RelationsOf(ctx, hire)
	if len(ptrs) != 3 {
		t.Fatalf("pointers = %d, want 3", len(ptrs))
	}
	if _, err := db.Resolve(ctx, ptrs[2]); !errors.Is(err, lexicon.ErrDanglingPointer) {
		t.Errorf("Resolve(dangling) = %v, want ErrDanglingPointer", err)
	}
}

func TestRedisPutDropsRemovedWords_Integration(t *testing.T) {
	addr := os.Getenv("LEXGRAPH_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := New(ctx, Config{Addr: addr, Prefix: "lexgraph-test:" + uuid.NewString() + ":"})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer db.Close()

	id := lexicon.SenseID{Offset: 2409412, POS: lexicon.Verb}
	if err := db.Put(ctx, &lexicon.Sense{ID: id, Words: []string{"hire", "engage"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Put(ctx, &lexicon.Sense{ID: id, Words: []string{"hire", "employ"}}); err != nil {
		t.Fatalf("Put again: %v", err)
	}

	for _, tt := range []struct {
		word string
		want int
	}{{"hire", 1}, {"engage", 0}, {"employ", 1}} {
		ids, err := db.LookupWord(ctx, tt.word, lexicon.Verb)
		if err != nil {
			t.Fatalf("LookupWord(%s): %v", tt.word, err)
		}
		if len(ids) != tt.want {
			t.Errorf("LookupWord(%s) = %v, want %d ids", tt.word, ids, tt.want)
		}
	}
}
