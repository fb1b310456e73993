package rope

import (
	"io"
	"strings"
)

// Builder provides incremental construction of a rope.
// It buffers writes and builds the tree when Build is called.
type Builder struct {
	chunks   []Chunk
	buffer   strings.Builder
	totalLen int
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]Chunk, 0, 64)}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.totalLen += len(p)
	b.buffer.Write(p)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flushBuffer()
	}
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.totalLen++
	return b.buffer.WriteByte(c)
}

// WriteRope appends the chunks of r without copying their bytes.
func (b *Builder) WriteRope(r Rope) {
	if r.IsEmpty() {
		return
	}
	b.flushBuffer()
	it := r.Chunks()
	for it.Next() {
		b.chunks = append(b.chunks, it.Chunk())
	}
	b.totalLen += r.Len()
}

func (b *Builder) flushBuffer() {
	if b.buffer.Len() == 0 {
		return
	}
	s := b.buffer.String()
	b.buffer.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buffer.Reset()
	b.totalLen = 0
}

// Build creates the rope from the accumulated bytes and resets the builder.
func (b *Builder) Build() Rope {
	b.flushBuffer()
	if len(b.chunks) == 0 {
		b.Reset()
		return New()
	}
	chunks := make([]Chunk, len(b.chunks))
	copy(chunks, b.chunks)
	b.Reset()
	return buildFromChunks(chunks)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = b.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// FromChunks creates a rope directly from chunks.
func FromChunks(chunks []Chunk) Rope {
	return buildFromChunks(chunks)
}

// Repeat creates a rope of b repeated n times.
func Repeat(b []byte, n int) Rope {
	if n <= 0 || len(b) == 0 {
		return New()
	}
	var builder Builder
	for i := 0; i < n; i++ {
		_, _ = builder.Write(b)
	}
	return builder.Build()
}
