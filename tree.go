package huffcrunch

import (
	"container/heap"
)

// Node is a node of a Huffman code tree.  A leaf holds exactly one Symbol;
// an internal node owns exactly two children and weighs as much as both of
// them together.  Trees are immutable once built.
type Node struct {
	symbol Symbol
	weight uint64
	left   *Node
	right  *Node
}

// IsLeaf returns true iff this node holds a Symbol.
func (n *Node) IsLeaf() bool {
	return n.left == nil
}

// Symbol returns the Symbol of a leaf, or InvalidSymbol for an internal node.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// Weight returns the occurrence count of a leaf, or the sum of its
// children's weights for an internal node.
func (n *Node) Weight() uint64 {
	return n.weight
}

// Left returns the "0" child, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the "1" child, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// BuildTree constructs the Huffman code tree for the given frequencies.
//
// The two lightest nodes are repeatedly merged until one remains.  Ties in
// weight go to the node that arrived first: leaves arrive in the
// FrequencyTable's order of first appearance, and each merged node arrives
// after all leaves and all earlier merges.  The first node popped becomes the
// left child, the second the right child.
//
// A table with a single distinct symbol yields a lone leaf.  An empty table
// yields an EmptyInputError.
//
func BuildTree(ft FrequencyTable) (*Node, error) {
	numLeaves := len(ft.entries)
	if numLeaves == 0 {
		return nil, &EmptyInputError{Op: "build tree"}
	}

	// Step 1: build a minheap of leaves.

	h := nodeHeap{list: make([]nodeAndSeq, 0, numLeaves)}
	for index, entry := range ft.entries {
		leaf := &Node{symbol: entry.Symbol, weight: entry.Count}
		h.list = append(h.list, nodeAndSeq{leaf, uint64(index)})
	}
	h.Init()

	// Step 2: pop two, merge, push back, until only the root is left.

	nextSeq := uint64(numLeaves)
	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndSeq)
		b := heap.Pop(&h).(nodeAndSeq)
		merged := &Node{
			symbol: InvalidSymbol,
			weight: saturatingAdd(a.node.weight, b.node.weight),
			left:   a.node,
			right:  b.node,
		}
		heap.Push(&h, nodeAndSeq{merged, nextSeq})
		nextSeq++
	}

	root := heap.Pop(&h).(nodeAndSeq)
	return root.node, nil
}

// type nodeAndSeq + type nodeHeap {{{

type nodeAndSeq struct {
	node *Node
	seq  uint64
}

type nodeHeap struct {
	list []nodeAndSeq
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.weight != b.node.weight {
		return a.node.weight < b.node.weight
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndSeq))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
