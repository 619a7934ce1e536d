package anagram

// Node is one letter position shared by every dictionary word with the same prefix.
// The root carries no letter and has depth 0.
type Node struct {
	letter   byte
	depth    int
	final    bool
	children []*Node
}

// NewTrie returns an empty root node.
func NewTrie() *Node {
	return &Node{}
}

// Letter returns the character this node represents, 0 for the root.
func (n *Node) Letter() byte { return n.letter }

// Depth returns the length of the prefix ending at this node.
func (n *Node) Depth() int { return n.depth }

// IsFinal reports whether a dictionary word ends exactly here.
func (n *Node) IsFinal() bool { return n.final }

// Children returns the child nodes in insertion order.
// The slice is shared with the trie and must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Child returns the child for letter, or nil.
func (n *Node) Child(letter byte) *Node {
	for _, c := range n.children {
		if c.letter == letter {
			return c
		}
	}
	return nil
}

// Insert adds the normalized form of word below n, creating missing nodes
// and marking the last one final. Words that normalize to nothing are
// rejected and Insert returns false. Inserting a word twice is a no-op.
func (n *Node) Insert(word string) bool {
	token := Normalize(word)
	if token == "" {
		return false
	}

	node := n
	for i := 0; i < len(token); i++ {
		next := node.Child(token[i])
		if next == nil {
			next = &Node{letter: token[i], depth: node.depth + 1}
			node.children = append(node.children, next)
		}
		node = next
	}
	node.final = true
	return true
}

// Contains reports whether word (after normalization) ends at a final node.
func (n *Node) Contains(word string) bool {
	token := Normalize(word)
	if token == "" {
		return false
	}
	node := n
	for i := 0; i < len(token) && node != nil; i++ {
		node = node.Child(token[i])
	}
	return node != nil && node.final
}

// Count returns the number of nodes below n, n excluded.
func (n *Node) Count() int {
	total := 0
	for _, c := range n.children {
		total += 1 + c.Count()
	}
	return total
}
