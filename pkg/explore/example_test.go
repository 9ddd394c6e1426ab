package explore_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/lexgraph/pkg/explore"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

const exampleLexicon = `
[[sense]]
id = "00000001-n"
words = ["dog"]
pointer = [
  { symbol = "@", target = "00000002-n" },
  { symbol = "%p", target = "00000003-n" },
]

[[sense]]
id = "00000002-n"
words = ["canine"]
pointer = [{ symbol = "~", target = "00000001-n" }]

[[sense]]
id = "00000003-n"
words = ["flag"]
`

func Example() {
	db, err := lexicon.Load(strings.NewReader(exampleLexicon))
	if err != nil {
		panic(err)
	}
	ctx := context.Background()

	x, err := explore.New(ctx, db, lexicon.SenseID{Offset: 1, POS: lexicon.Noun}, explore.Options{})
	if err != nil {
		panic(err)
	}
	res, _ := x.Expand(ctx, x.Seed())
	for _, n := range res.NewNodes {
		p := n.Position()
		fmt.Printf("%v at (%.0f, %.0f)\n", n, p.X, p.Y)
	}

	canine, _ := x.Node(lexicon.SenseID{Offset: 2, POS: lexicon.Noun})
	res, _ = x.Expand(ctx, canine)
	fmt.Println("new nodes:", len(res.NewNodes))
	for _, e := range x.Graph().Edges() {
		fmt.Println(e)
	}
	// Output:
	// canine (00000002-n) at (335, 300)
	// flag (00000003-n) at (265, 300)
	// new nodes: 0
	// 00000001-n -[hypernym]-> 00000002-n
	// 00000001-n -[part meronym]-> 00000003-n
	// 00000002-n -[hyponym]-> 00000001-n
}
