package encoder

// A prefix tree over the dictionary replacements, used by the greedy
// matcher to pick the entry that covers the most pixels at each
// position. Nodes live in a single arena slice sized up front; child
// links are arena indices, with 0 meaning "no child" (node 0 is the
// root, which is never anyone's child).

const noCodeword = -1

type trieNode struct {
	children [16]int32
	codeword int16
	refEntry bool
}

type dictTrie struct {
	nodes []trieNode
}

// Arena capacity: one node per pixel of every replacement, plus the
// 16 literal children and the root.
func newDictTrie(replacementPixels int) *dictTrie {
	var trie dictTrie
	trie.nodes = make([]trieNode, 1, replacementPixels + 17)
	trie.nodes[0].codeword = noCodeword

	// pre-populate one child per pixel value, terminating at the
	// corresponding literal codeword
	for value := int16(0); value < 16; value++ {
		index := trie.newNode()
		trie.nodes[0].children[value] = index
		trie.nodes[index].codeword = value
	}
	return &trie
}

func (self *dictTrie) newNode() int32 {
	if len(self.nodes) == cap(self.nodes) {
		panic("dictionary trie arena exhausted (node count estimate broken)")
	}
	self.nodes = append(self.nodes, trieNode{codeword: noCodeword})
	return int32(len(self.nodes) - 1)
}

// Inserts a dictionary entry along the path of its replacement
// pixels. If another entry already terminates at the same node, the
// earlier codeword wins.
func (self *dictTrie) insert(pixels []uint8, codeword int16, refEntry bool) {
	node := int32(0)
	for _, value := range pixels {
		child := self.nodes[node].children[value]
		if child == 0 {
			child = self.newNode()
			self.nodes[node].children[value] = child
		}
		node = child
	}
	if self.nodes[node].codeword == noCodeword {
		self.nodes[node].codeword = codeword
		self.nodes[node].refEntry = refEntry
	}
}

// Walks the tree as far as the input pixels allow and returns the
// deepest codeword seen along the way with its covered length. When
// allowRefs is false, codewords belonging to ref entries are skipped
// (a ref entry may only expand through RLE entries and literals).
// The literal children guarantee a match of at least one pixel.
func (self *dictTrie) match(pixels []uint8, allowRefs bool) (int, int16) {
	bestLength, bestCodeword := 0, int16(noCodeword)
	node := int32(0)
	for length := 1; length <= len(pixels); length++ {
		node = self.nodes[node].children[pixels[length - 1]]
		if node == 0 { break }
		if self.nodes[node].codeword != noCodeword {
			if allowRefs || !self.nodes[node].refEntry {
				bestLength, bestCodeword = length, self.nodes[node].codeword
			}
		}
	}
	return bestLength, bestCodeword
}
