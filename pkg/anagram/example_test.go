package anagram_test

import (
	"fmt"

	"github.com/bastiangx/anagramserve/pkg/anagram"
)

func Example() {
	root := anagram.NewTrie()
	for _, w := range []string{"dog", "god", "go", "do"} {
		root.Insert(w)
	}

	for phrase := range anagram.Search(root, "G.O.D.", 2) {
		fmt.Println(phrase)
	}

	// Output:
	// dog
	// god
}

func ExampleNormalize() {
	fmt.Println(anagram.Normalize("Hello, World! 42"))
	// Output: helloworld42
}
