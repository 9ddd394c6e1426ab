package lexicon

// Symbol is a WordNet pointer symbol such as "@" (hypernym) or "%p"
// (part meronym).
type Symbol string

// Pointer symbols defined by the WordNet data file format.
const (
	Antonym               Symbol = "!"
	Hypernym              Symbol = "@"
	InstanceHypernym      Symbol = "@i"
	Hyponym               Symbol = "~"
	InstanceHyponym       Symbol = "~i"
	MemberHolonym         Symbol = "#m"
	SubstanceHolonym      Symbol = "#s"
	PartHolonym           Symbol = "#p"
	MemberMeronym         Symbol = "%m"
	SubstanceMeronym      Symbol = "%s"
	PartMeronym           Symbol = "%p"
	Attribute             Symbol = "="
	DerivationallyRelated Symbol = "+"
	DomainTopic           Symbol = ";c"
	MemberOfDomainTopic   Symbol = "-c"
	DomainRegion          Symbol = ";r"
	MemberOfDomainRegion  Symbol = "-r"
	DomainUsage           Symbol = ";u"
	MemberOfDomainUsage   Symbol = "-u"
	Entailment            Symbol = "*"
	Cause                 Symbol = ">"
	AlsoSee               Symbol = "^"
	VerbGroup             Symbol = "$"
	SimilarTo             Symbol = "&"
	ParticipleOfVerb      Symbol = "<"
	Pertainym             Symbol = "\\"
)

var descriptions = map[Symbol]string{
	Antonym:               "antonym",
	Hypernym:              "hypernym",
	InstanceHypernym:      "instance hypernym",
	Hyponym:               "hyponym",
	InstanceHyponym:       "instance hyponym",
	MemberHolonym:         "member holonym",
	SubstanceHolonym:      "substance holonym",
	PartHolonym:           "part holonym",
	MemberMeronym:         "member meronym",
	SubstanceMeronym:      "substance meronym",
	PartMeronym:           "part meronym",
	Attribute:             "attribute",
	DerivationallyRelated: "derivationally related form",
	DomainTopic:           "domain topic",
	MemberOfDomainTopic:   "member of domain topic",
	DomainRegion:          "domain region",
	MemberOfDomainRegion:  "member of domain region",
	DomainUsage:           "domain usage",
	MemberOfDomainUsage:   "member of domain usage",
	Entailment:            "entailment",
	Cause:                 "cause",
	AlsoSee:               "also see",
	VerbGroup:             "verb group",
	SimilarTo:             "similar to",
	ParticipleOfVerb:      "participle of verb",
	Pertainym:             "pertainym",
}

// Known reports whether s is a WordNet pointer symbol.
func (s Symbol) Known() bool {
	_, ok := descriptions[s]
	return ok
}

// Describe returns the relation description for s. Unknown symbols describe
// themselves so that no relation is ever rendered without a label.
func (s Symbol) Describe() string {
	if d, ok := descriptions[s]; ok {
		return d
	}
	return string(s)
}
