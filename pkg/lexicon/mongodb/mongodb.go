// Package mongodb stores a lexicon in a MongoDB collection.
//
// Each sense is one document keyed by its sense id. Alongside the
// [lexicon.Record] fields a document carries the part of speech, the
// normalized lemmas and an import sequence number, so that word lookups can
// use a compound index and return senses in the order they were imported.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// Defaults for Config fields left empty.
const (
	DefaultDatabase   = "lexgraph"
	DefaultCollection = "senses"
)

// Config holds the MongoDB connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// DB is a [lexicon.Database] and [lexicon.WordIndex] backed by MongoDB.
// It is safe for concurrent use.
type DB struct {
	client *mongo.Client
	coll   *mongo.Collection

	// seq is the last import sequence number handed out by Put.
	seq atomic.Int64
}

var (
	_ lexicon.Database  = (*DB)(nil)
	_ lexicon.WordIndex = (*DB)(nil)
)

// document is the stored shape of a sense.
type document struct {
	lexicon.Record `bson:",inline"`
	POS            string   `bson:"pos"`
	Lemmas         []string `bson:"lemmas"`
	Seq            int64    `bson:"seq"`
}

func toDocument(s *lexicon.Sense, seq int64) document {
	doc := document{
		Record: lexicon.RecordOf(s),
		POS:    s.ID.POS.String(),
		Seq:    seq,
		Lemmas: make([]string, 0, len(s.Words)),
	}
	for _, w := range s.Words {
		doc.Lemmas = append(doc.Lemmas, lxerrors.NormalizeLemma(w))
	}
	return doc
}

// New connects to MongoDB, pings the primary and ensures the word index.
func New(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := &DB{client: client, coll: client.Database(cfg.Database).Collection(cfg.Collection)}
	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := db.loadSeq(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return db, nil
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "lemmas", Value: 1}, {Key: "pos", Value: 1}, {Key: "seq", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo create index: %w", err)
	}
	return nil
}

// loadSeq continues numbering after the highest sequence already stored, so
// a second import appends after the first.
func (d *DB) loadSeq(ctx context.Context) error {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "seq", Value: -1}}).
		SetProjection(bson.M{"seq": 1})
	var row struct {
		Seq int64 `bson:"seq"`
	}
	err := d.coll.FindOne(ctx, bson.M{}, opts).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("mongo find last seq: %w", err)
	}
	d.seq.Store(row.Seq)
	return nil
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Lookup implements [lexicon.Database].
func (d *DB) Lookup(ctx context.Context, id lexicon.SenseID) (*lexicon.Sense, error) {
	var doc document
	err := d.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, lexicon.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", id, err)
	}
	return doc.Record.Sense()
}

// RelationsOf implements [lexicon.Database].
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

// LookupWord implements [lexicon.WordIndex]. Matches are in import order.
func (d *DB) LookupWord(ctx context.Context, lemma string, pos lexicon.PartOfSpeech) ([]lexicon.SenseID, error) {
	filter := bson.M{"lemmas": lxerrors.NormalizeLemma(lemma), "pos": pos.String()}
	opts := options.Find().
		SetSort(bson.D{{Key: "seq", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1})

	cur, err := d.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", lemma, err)
	}
	defer cur.Close(ctx)

	var ids []lexicon.SenseID
	for cur.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		id, err := lexicon.ParseSenseID(row.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return ids, nil
}

// Put upserts a sense document. A replaced sense keeps its place in the word
// order.
func (d *DB) Put(ctx context.Context, s *lexicon.Sense) error {
	seq, err := d.seqOf(ctx, s.ID)
	if err != nil {
		return err
	}
	doc := toDocument(s, seq)
	_, err = d.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", s.ID, err)
	}
	return nil
}

// seqOf returns the stored sequence number of id, or the next one when id is
// not stored yet.
func (d *DB) seqOf(ctx context.Context, id lexicon.SenseID) (int64, error) {
	var row struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOne().SetProjection(bson.M{"seq": 1})
	err := d.coll.FindOne(ctx, bson.M{"_id": id.String()}, opts).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return d.seq.Add(1), nil
	}
	if err != nil {
		return 0, fmt.Errorf("mongo find %s: %w", id, err)
	}
	return row.Seq, nil
}
