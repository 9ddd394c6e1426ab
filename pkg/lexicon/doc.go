// Package lexicon defines the lexical database consumed by the explorer.
//
// A lexical database is a WordNet-style network of word senses connected by
// typed relation pointers (hypernym, part meronym, antonym, ...). This package
// does not parse the raw WordNet dictionary files; it defines the contract
// the explorer depends on and ships an in-memory implementation that loads a
// TOML lexicon file.
//
// # Core Types
//
//   - [SenseID]: identity of a sense (synset offset + part of speech)
//   - [Sense]: an immutable lexical concept with its words, gloss and pointers
//   - [Pointer]: a typed, directed reference to another sense
//   - [Symbol]: a WordNet pointer symbol with its relation description
//
// # Database Contract
//
// [Database] is the only thing the explorer knows about the data layer:
//
//	sense, err := db.Lookup(ctx, id)          // ErrNotFound if absent
//	ptrs, err := db.RelationsOf(ctx, sense)   // ordered, possibly empty
//	target, err := db.Resolve(ctx, ptrs[0])   // ErrDanglingPointer if unresolvable
//
// Databases that can search by word also implement [WordIndex].
//
// # Backends
//
//   - [Memory]: in-memory, loaded with [LoadFile] / [Load] from TOML
//   - redisdb: senses stored as JSON documents in Redis
//   - mongodb: senses stored as documents in a MongoDB collection
//
// # Lexicon File Format
//
//	[[sense]]
//	id = "02045123-n"
//	words = ["hire", "hiring"]
//	gloss = "the act of hiring something"
//
//	  [[sense.pointer]]
//	  symbol = "@"
//	  target = "00407535-n"
package lexicon
