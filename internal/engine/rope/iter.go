package rope

type chunkIterFrame struct {
	node     *Node
	childIdx int
	chunkIdx int
	offset   int
}

// ChunkIterator iterates over the chunks of a rope in order.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart int
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
	}
}

// Next advances to the next chunk.
// Returns false when iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
		return it.findNextChunk()
	}

	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.IsLeaf() {
			frame.offset += it.chunk.Len()
			frame.chunkIdx++
		}
	}
	return it.findNextChunk()
}

func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				it.chunk = node.chunks[frame.chunkIdx]
				it.chunkStart = frame.offset
				return true
			}
			it.pop()
			continue
		}

		if frame.childIdx < len(node.children) {
			child := node.children[frame.childIdx]
			it.stack = append(it.stack, chunkIterFrame{node: child, offset: frame.offset})
			continue
		}
		it.pop()
	}
	return false
}

// pop leaves the current node and advances the parent past it.
func (it *ChunkIterator) pop() {
	done := it.stack[len(it.stack)-1].node
	it.stack = it.stack[:len(it.stack)-1]
	if len(it.stack) > 0 {
		parent := &it.stack[len(it.stack)-1]
		parent.offset += done.Len()
		parent.childIdx++
	}
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.chunkStart
}

// ByteIterator iterates over the bytes of a rope.
type ByteIterator struct {
	chunkIter *ChunkIterator
	chunkData string
	idx       int
	offset    int
	started   bool
}

// BytesIter returns an iterator over all bytes in the rope.
func (r Rope) BytesIter() *ByteIterator {
	return &ByteIterator{chunkIter: r.Chunks()}
}

// Next advances to the next byte.
func (it *ByteIterator) Next() bool {
	if it.started {
		it.idx++
		it.offset++
		if it.idx < len(it.chunkData) {
			return true
		}
	}
	it.started = true
	for it.chunkIter.Next() {
		it.chunkData = it.chunkIter.Chunk().String()
		it.idx = 0
		it.offset = it.chunkIter.Offset()
		if len(it.chunkData) > 0 {
			return true
		}
	}
	return false
}

// Byte returns the current byte.
func (it *ByteIterator) Byte() byte {
	if it.idx < len(it.chunkData) {
		return it.chunkData[it.idx]
	}
	return 0
}

// Offset returns the offset of the current byte.
func (it *ByteIterator) Offset() int {
	return it.offset
}
