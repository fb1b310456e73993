package rope

import (
	"slices"
	"strings"
)

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node in the rope B+ tree.
// Leaf nodes (height == 0) hold chunks, internal nodes hold children.
// A node is never modified after it becomes reachable from a Rope.
type Node struct {
	height int
	length int

	// Internal node fields (height > 0)
	children  []*Node
	childLens []int

	// Leaf node fields (height == 0)
	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.length += c.Len()
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	lens := make([]int, len(children))
	total := 0
	for i, child := range children {
		lens[i] = child.length
		total += child.length
	}

	return &Node{
		height:    children[0].height + 1,
		length:    total,
		children:  children,
		childLens: lens,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of this subtree.
func (n *Node) Len() int {
	return n.length
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the bytes in [start, end) of this subtree.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Len()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}
			lo, hi := 0, chunk.Len()
			if start > offset {
				lo = start - offset
			}
			if end < chunkEnd {
				hi = end - offset
			}
			sb.WriteString(chunk.data[lo:hi])
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childEnd := offset + n.childLens[i]
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}
		lo, hi := 0, n.childLens[i]
		if start > offset {
			lo = start - offset
		}
		if end < childEnd {
			hi = end - offset
		}
		child.appendRange(sb, lo, hi)
		offset = childEnd
	}
}

// borrow returns the bytes in [start, end) without copying when the range
// lies inside a single chunk.
func (n *Node) borrow(start, end int) (string, bool) {
	node := n
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByOffset(start)
		if childOffset+(end-start) > node.childLens[idx] {
			return "", false
		}
		node = node.children[idx]
		start, end = childOffset, childOffset+(end-start)
	}

	offset := 0
	for _, chunk := range node.chunks {
		chunkEnd := offset + chunk.Len()
		if start < chunkEnd {
			if end > chunkEnd {
				return "", false
			}
			return chunk.data[start-offset : end-offset], true
		}
		offset = chunkEnd
	}
	return "", false
}

// split splits the node at offset.
// The left node holds [0, offset), the right node holds [offset, len).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n
	}
	if offset >= n.length {
		return n, newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}

	idx, childOffset := n.findChildByOffset(offset)
	l, r := n.children[idx].split(childOffset)
	left := concat(fromSiblings(n.children[:idx]), l)
	right := concat(r, fromSiblings(n.children[idx+1:]))
	return left, right
}

func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	current := 0

	for _, chunk := range n.chunks {
		chunkLen := chunk.Len()
		switch {
		case current+chunkLen <= offset:
			leftChunks = append(leftChunks, chunk)
		case current >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.Split(offset - current)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		current += chunkLen
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

// fromSiblings returns one node holding children, which share a height.
func fromSiblings(children []*Node) *Node {
	switch len(children) {
	case 0:
		return newLeafNode()
	case 1:
		return children[0]
	}
	return newInternalNode(slices.Clone(children))
}

// concat joins two nodes into a new tree. Neither input is modified.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}
	return fromSiblings(join(left, right))
}

// join returns left followed by right as one or two nodes of the taller
// input's height. The shorter tree is attached along the facing spine of the
// taller one, and the nodes meeting at the seam are joined all the way down
// so that small chunks on either side are merged.
func join(left, right *Node) []*Node {
	switch {
	case left.height > right.height:
		k := len(left.children) - 1
		seam := join(left.children[k], right)
		return packChildren(slices.Concat(left.children[:k], seam))

	case left.height < right.height:
		seam := join(left, right.children[0])
		return packChildren(slices.Concat(seam, right.children[1:]))

	case left.IsLeaf():
		return packChunks(mergeChunks(left.chunks, right.chunks))

	default:
		k := len(left.children) - 1
		seam := join(left.children[k], right.children[0])
		return packChildren(slices.Concat(left.children[:k], seam, right.children[1:]))
	}
}

// packChildren puts at most 2*MaxChildren siblings under one or two parents.
func packChildren(children []*Node) []*Node {
	if len(children) <= MaxChildren {
		return []*Node{newInternalNode(children)}
	}
	half := len(children) / 2
	return []*Node{
		newInternalNode(slices.Clone(children[:half])),
		newInternalNode(slices.Clone(children[half:])),
	}
}

// packChunks puts at most 2*MaxChunksPerLeaf chunks into one or two leaves.
func packChunks(chunks []Chunk) []*Node {
	if len(chunks) <= MaxChunksPerLeaf {
		return []*Node{newLeafNodeWithChunks(chunks)}
	}
	half := len(chunks) / 2
	return []*Node{
		newLeafNodeWithChunks(slices.Clone(chunks[:half])),
		newLeafNodeWithChunks(slices.Clone(chunks[half:])),
	}
}

// mergeChunks concatenates two chunk runs, folding each chunk shorter than
// MinChunkSize into its neighbour while the result fits MaxChunkSize.
func mergeChunks(left, right []Chunk) []Chunk {
	out := make([]Chunk, 0, len(left)+len(right))
	for _, c := range slices.Concat(left, right) {
		if c.IsEmpty() {
			continue
		}
		if k := len(out) - 1; k >= 0 &&
			(out[k].Len() < MinChunkSize || c.Len() < MinChunkSize) &&
			out[k].Len()+c.Len() <= MaxChunkSize {
			out[k] = chunkOf(out[k].data + c.data)
			continue
		}
		out = append(out, c)
	}
	return out
}

// findChildByOffset returns the index of the child containing offset and the
// offset relative to that child.
func (n *Node) findChildByOffset(offset int) (int, int) {
	if n.IsLeaf() {
		return -1, 0
	}

	current := 0
	for i, l := range n.childLens {
		if current+l > offset {
			return i, offset - current
		}
		current += l
	}

	last := len(n.children) - 1
	return last, offset - (n.length - n.childLens[last])
}
