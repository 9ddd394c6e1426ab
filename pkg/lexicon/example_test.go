package lexicon_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

func ExampleLoad() {
	src := `
[[sense]]
id = "1-n"
words = ["dog"]

  [[sense.pointer]]
  symbol = "@"
  target = "2-n"

[[sense]]
id = "2-n"
words = ["canine"]
`
	db, err := lexicon.Load(strings.NewReader(src))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	ctx := context.Background()
	dog, _ := db.Lookup(ctx, lexicon.SenseID{Offset: 1, POS: lexicon.Noun})
	ptrs, _ := db.RelationsOf(ctx, dog)
	target, _ := db.Resolve(ctx, ptrs[0])

	fmt.Println(dog, "-["+ptrs[0].Label()+"]->", target)
	// Output:
	// dog (00000001-n) -[hypernym]-> canine (00000002-n)
}
