package lexicon

import "fmt"

// Record is the storage form of a sense shared by the TOML lexicon file,
// the Redis backend (JSON) and the MongoDB backend (BSON).
type Record struct {
	ID       string          `toml:"id" json:"id" bson:"_id"`
	Words    []string        `toml:"words" json:"words" bson:"words"`
	Gloss    string          `toml:"gloss,omitempty" json:"gloss,omitempty" bson:"gloss,omitempty"`
	Pointers []PointerRecord `toml:"pointer,omitempty" json:"pointers,omitempty" bson:"pointers,omitempty"`
}

// PointerRecord is the storage form of a [Pointer].
type PointerRecord struct {
	Symbol string `toml:"symbol" json:"symbol" bson:"symbol"`
	Target string `toml:"target" json:"target" bson:"target"`
}

// Sense converts the record into a Sense, validating every id.
func (r Record) Sense() (*Sense, error) {
	id, err := ParseSenseID(r.ID)
	if err != nil {
		return nil, err
	}
	s := &Sense{
		ID:       id,
		Words:    append([]string(nil), r.Words...),
		Gloss:    r.Gloss,
		Pointers: make([]Pointer, 0, len(r.Pointers)),
	}
	for i, pr := range r.Pointers {
		target, err := ParseSenseID(pr.Target)
		if err != nil {
			return nil, fmt.Errorf("sense %s pointer %d: %w", id, i, err)
		}
		s.Pointers = append(s.Pointers, Pointer{Symbol: Symbol(pr.Symbol), Target: target})
	}
	return s, nil
}

// RecordOf converts a sense back to its storage form.
func RecordOf(s *Sense) Record {
	r := Record{
		ID:    s.ID.String(),
		Words: append([]string(nil), s.Words...),
		Gloss: s.Gloss,
	}
	for _, p := range s.Pointers {
		r.Pointers = append(r.Pointers, PointerRecord{Symbol: string(p.Symbol), Target: p.Target.String()})
	}
	return r
}
