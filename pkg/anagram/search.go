package anagram

import "iter"

// Separator is placed between words of a phrase.
const Separator = ' '

// searcher holds the mutable state of one Search call.
// letters and path are restored exactly after every branch.
type searcher struct {
	root     *Node
	minLen   int
	letters  [256]int
	path     []byte
	consumed int
	target   int
	yield    func(string) bool
}

// Search walks the trie rooted at root and yields every phrase whose letters are
// an exact permutation of the normalized query. Each word of a phrase is a
// dictionary word at least minWordLength long. Values below 1 are treated as 1.
//
// Phrases are produced depth first, children visited in insertion order, so the
// sequence is deterministic for a given trie. Stopping the range loop early ends
// the search.
func Search(root *Node, query string, minWordLength int) iter.Seq[string] {
	return func(yield func(string) bool) {
		token := Normalize(query)
		if root == nil || token == "" {
			return
		}
		if minWordLength < 1 {
			minWordLength = 1
		}

		s := &searcher{
			root:   root,
			minLen: minWordLength,
			path:   make([]byte, 0, 2*len(token)),
			target: len(token),
			yield:  yield,
		}
		for i := 0; i < len(token); i++ {
			s.letters[token[i]]++
		}
		s.next(root)
	}
}

// next explores node and returns false once the consumer stopped.
func (s *searcher) next(node *Node) bool {
	if node.final && node.depth >= s.minLen {
		// Letters are never over-consumed, so equality means the query is used up.
		if s.consumed == s.target {
			if !s.yield(string(s.path)) {
				return false
			}
		}

		s.path = append(s.path, Separator)
		ok := s.next(s.root)
		s.path = s.path[:len(s.path)-1]
		if !ok {
			return false
		}
	}

	for _, child := range node.children {
		if s.letters[child.letter] == 0 {
			continue
		}
		s.letters[child.letter]--
		s.path = append(s.path, child.letter)
		s.consumed++

		ok := s.next(child)

		s.consumed--
		s.path = s.path[:len(s.path)-1]
		s.letters[child.letter]++
		if !ok {
			return false
		}
	}
	return true
}

// Generate collects every phrase of Search into a slice. The result is never nil.
func Generate(root *Node, query string, minWordLength int) []string {
	results := []string{}
	for phrase := range Search(root, query, minWordLength) {
		results = append(results, phrase)
	}
	return results
}
