package rope

import (
	"io"
	"strings"
)

// Rope is an immutable byte sequence.
// Operations return new Rope values; the original is never modified.
// The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromBytes creates a rope holding a copy of b.
func FromBytes(b []byte) Rope {
	if len(b) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(string(b)))
}

// FromString creates a rope from the bytes of s.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from everything r yields.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		nodes = append(nodes, newLeafNodeWithChunks(leafChunks))
	}

	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}
	return Rope{root: nodes[0]}
}

// Len returns the total byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// IsEmpty returns true if the rope holds no bytes.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full content as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Bytes returns a copy of the full content.
func (r Rope) Bytes() []byte {
	return []byte(r.String())
}

// Slice returns a copy of the bytes in [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) []byte {
	return []byte(r.SliceString(start, end))
}

// SliceString returns the bytes in [start, end), clamped to the rope.
// When the range lies inside a single chunk the result shares the chunk's
// storage and nothing is copied.
func (r Rope) SliceString(start, end int) string {
	start, end = r.clamp(start, end)
	if r.root == nil || start >= end {
		return ""
	}
	if s, ok := r.root.borrow(start, end); ok {
		return s
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

func (r Rope) clamp(start, end int) (int, int) {
	n := r.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return start, end
}

// ByteAt returns the byte at offset.
// Returns 0 and false if offset is out of range.
func (r Rope) ByteAt(offset int) (byte, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return 0, false
	}

	node := r.root
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByOffset(offset)
		node = node.children[idx]
		offset = childOffset
	}
	for _, chunk := range node.chunks {
		if offset < chunk.Len() {
			return chunk.data[offset], true
		}
		offset -= chunk.Len()
	}
	return 0, false
}

// SubRope returns the rope covering [start, end), sharing structure with r.
func (r Rope) SubRope(start, end int) Rope {
	start, end = r.clamp(start, end)
	if start >= end {
		return New()
	}
	if start == 0 && end == r.Len() {
		return r
	}
	_, right := r.Split(start)
	left, _ := right.Split(end - start)
	return left
}

// Insert inserts b at offset.
func (r Rope) Insert(offset int, b []byte) Rope {
	if len(b) == 0 {
		return r
	}
	return r.InsertRope(offset, FromBytes(b))
}

// InsertRope inserts other at offset, sharing other's nodes.
func (r Rope) InsertRope(offset int, other Rope) Rope {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	if offset <= 0 {
		return other.Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(other)
	}
	left, right := r.Split(offset)
	return left.Concat(other).Concat(right)
}

// Delete removes the bytes in [start, end).
func (r Rope) Delete(start, end int) Rope {
	start, end = r.clamp(start, end)
	if r.root == nil || start >= end {
		return r
	}
	if start == 0 && end == r.Len() {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end == r.Len() {
		left, _ := r.Split(start)
		return left
	}

	left, tmp := r.Split(start)
	_, right := tmp.Split(end - start)
	return left.Concat(right)
}

// Replace replaces the bytes in [start, end) with b.
func (r Rope) Replace(start, end int, b []byte) Rope {
	return r.Delete(start, end).Insert(start, b)
}

// Split splits the rope at offset.
// The left rope holds [0, offset), the right rope holds [offset, len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Index returns the offset of the first occurrence of pattern at or after
// from, or -1.
func (r Rope) Index(pattern []byte, from int) int {
	if from < 0 {
		from = 0
	}
	if len(pattern) == 0 || from >= r.Len() {
		return -1
	}
	i := strings.Index(r.SliceString(from, r.Len()), string(pattern))
	if i < 0 {
		return -1
	}
	return from + i
}

// WriteTo writes the rope's bytes to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Chunk().String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Height returns the height of the tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}

// ChunkCount returns the number of chunks in the rope.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals returns true if both ropes hold the same bytes.
// Structure is not compared.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	if r.root == other.root {
		return true
	}
	return r.String() == other.String()
}
