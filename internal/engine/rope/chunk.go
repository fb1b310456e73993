package rope

// Chunk size constants control the granularity of byte storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded run of bytes stored in a leaf node.
// Chunks are immutable once created.
type Chunk struct {
	data string
}

// NewChunk creates a chunk holding a copy of b.
func NewChunk(b []byte) Chunk {
	return Chunk{data: string(b)}
}

func chunkOf(s string) Chunk {
	return Chunk{data: s}
}

// String returns the chunk's bytes as a string without copying.
func (c Chunk) String() string {
	return c.data
}

// Bytes returns a copy of the chunk's bytes.
func (c Chunk) Bytes() []byte {
	return []byte(c.data)
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk holds no bytes.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at offset, returning two chunks.
// Both halves share storage with c.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return chunkOf(c.data[:offset]), chunkOf(c.data[offset:])
}

// Append concatenates another chunk to this one, returning several chunks
// when the result exceeds MaxChunkSize.
func (c Chunk) Append(other Chunk) []Chunk {
	if c.IsEmpty() {
		if other.IsEmpty() {
			return nil
		}
		return []Chunk{other}
	}
	if other.IsEmpty() {
		return []Chunk{c}
	}

	combined := c.data + other.data
	if len(combined) <= MaxChunkSize {
		return []Chunk{chunkOf(combined)}
	}
	return splitIntoChunks(combined)
}

// splitIntoChunks cuts s into chunks of TargetChunkSize, folding a short tail
// into the previous chunk when that stays under MaxChunkSize.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{chunkOf(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > 0 {
		n := TargetChunkSize
		if len(s) <= MaxChunkSize {
			n = len(s)
		} else if rest := len(s) - n; rest < MinChunkSize {
			n = len(s) - MinChunkSize
		}
		chunks = append(chunks, chunkOf(s[:n]))
		s = s[n:]
	}
	return chunks
}
