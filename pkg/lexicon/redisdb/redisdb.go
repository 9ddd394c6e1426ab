// Package redisdb stores a lexicon in Redis.
//
// Each sense is one JSON document ([lexicon.Record]) under
// "<prefix>sense:<id>", and every word is indexed by a list of sense ids
// under "<prefix>word:<pos>:<lemma>" in insertion order.
//
//	db, err := redisdb.New(ctx, redisdb.Config{Addr: "localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// DefaultPrefix namespaces all keys written by this package.
const DefaultPrefix = "lexgraph:"

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Defaults to DefaultPrefix
}

// DB is a [lexicon.Database] and [lexicon.WordIndex] backed by Redis.
// It is safe for concurrent use.
type DB struct {
	client redis.Cmdable
	closer func() error
	prefix string
}

var (
	_ lexicon.Database  = (*DB)(nil)
	_ lexicon.WordIndex = (*DB)(nil)
)

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config) (*DB, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	db := NewWithClient(client, cfg.Prefix)
	db.closer = client.Close
	return db, nil
}

// NewWithClient wraps an existing client. The caller keeps ownership of it.
func NewWithClient(client redis.Cmdable, prefix string) *DB {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &DB{client: client, prefix: prefix}
}

// Close closes the client if New created it.
func (d *DB) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer()
}

func (d *DB) senseKey(id lexicon.SenseID) string {
	return d.prefix + "sense:" + id.String()
}

func (d *DB) wordKey(lemma string, pos lexicon.PartOfSpeech) string {
	return d.prefix + "word:" + pos.String() + ":" + lxerrors.NormalizeLemma(lemma)
}

// Lookup implements [lexicon.Database].
func (d *DB) Lookup(ctx context.Context, id lexicon.SenseID) (*lexicon.Sense, error) {
	data, err := d.client.Get(ctx, d.senseKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, lexicon.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	var rec lexicon.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, lxerrors.Wrap(lxerrors.ErrCodeInvalidFormat, err, "decode sense %s", id)
	}
	return rec.Sense()
}

// RelationsOf implements [lexicon.Database]. Pointers are stored inside the
// sense document, so no round trip is needed.
func (d *DB) RelationsOf(_ context.Context, s *lexicon.Sense) ([]lexicon.Pointer, error) {
	return lexicon.PointersOf(s), nil
}

// Resolve implements [lexicon.Database].
func (d *DB) Resolve(ctx context.Context, p lexicon.Pointer) (*lexicon.Sense, error) {
	s, err := d.Lookup(ctx, p.Target)
	if err != nil {
		return nil, lexicon.Dangling(p, err)
	}
	return s, nil
}

// LookupWord implements [lexicon.WordIndex].
func (d *DB) LookupWord(ctx context.Context, lemma string, pos lexicon.PartOfSpeech) ([]lexicon.SenseID, error) {
	raw, err := d.client.LRange(ctx, d.wordKey(lemma, pos), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s: %w", lemma, err)
	}
	ids := make([]lexicon.SenseID, 0, len(raw))
	for _, r := range raw {
		id, err := lexicon.ParseSenseID(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Put writes a sense and its word index entries in one transaction.
// Writing a sense again replaces the document, drops the index entries of
// words it no longer has and leaves the others in place. Concurrent Puts of
// the same sense may interleave their index updates.
func (d *DB) Put(ctx context.Context, s *lexicon.Sense) error {
	data, err := json.Marshal(lexicon.RecordOf(s))
	if err != nil {
		return fmt.Errorf("encode sense %s: %w", s.ID, err)
	}
	prev, err := d.Lookup(ctx, s.ID)
	if err != nil && !errors.Is(err, lexicon.ErrNotFound) {
		return err
	}
	removed, added := d.indexChanges(prev, s)

	id := s.ID.String()
	_, err = d.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, d.senseKey(s.ID), data, 0)
		for _, key := range removed {
			pipe.LRem(ctx, key, 0, id)
		}
		for _, key := range added {
			pipe.LRem(ctx, key, 0, id)
			pipe.RPush(ctx, key, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put %s: %w", s.ID, err)
	}
	return nil
}

// indexChanges returns the word keys next drops relative to prev and the
// keys it adds. prev may be nil.
func (d *DB) indexChanges(prev, next *lexicon.Sense) (removed, added []string) {
	keys := func(s *lexicon.Sense) []string {
		if s == nil {
			return nil
		}
		var out []string
		for _, w := range s.Words {
			if k := d.wordKey(w, s.ID.POS); !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
		return out
	}
	before, after := keys(prev), keys(next)
	for _, k := range before {
		if !slices.Contains(after, k) {
			removed = append(removed, k)
		}
	}
	for _, k := range after {
		if !slices.Contains(before, k) {
			added = append(added, k)
		}
	}
	return removed, added
}
