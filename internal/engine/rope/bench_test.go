package rope

import (
	"math/rand"
	"testing"
)

func randomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

func BenchmarkFromBytes(b *testing.B) {
	data := randomBytes(1 << 20)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FromBytes(data)
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	r := FromBytes(randomBytes(1 << 20))
	ins := []byte{0xaa}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Insert(r.Len()/2, ins)
	}
}

func BenchmarkDeleteMiddle(b *testing.B) {
	r := FromBytes(randomBytes(1 << 20))
	mid := r.Len() / 2
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Delete(mid, mid+64)
	}
}

func BenchmarkSplit(b *testing.B) {
	r := FromBytes(randomBytes(1 << 20))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Split(i % r.Len())
	}
}

func BenchmarkByteAt(b *testing.B) {
	r := FromBytes(randomBytes(1 << 20))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.ByteAt(i % r.Len())
	}
}

func BenchmarkSliceString(b *testing.B) {
	r := FromBytes(randomBytes(1 << 20))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		off := (i * 4096) % (r.Len() - 368)
		_ = r.SliceString(off, off+368)
	}
}
