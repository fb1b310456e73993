package rope

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"testing/quick"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if len(r.Bytes()) != 0 {
		t.Errorf("New rope Bytes() should be empty, got %v", r.Bytes())
	}

	var zero Rope
	if zero.Len() != 0 || !zero.IsEmpty() {
		t.Error("zero Rope should be empty")
	}
}

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"single byte", []byte{0}},
		{"short", []byte{0, 1, 2, 3}},
		{"binary", []byte{0xff, 0x00, 0x80, 0x7f, 0x0a}},
		{"one chunk", bytes.Repeat([]byte{0xab}, MaxChunkSize)},
		{"many chunks", bytes.Repeat([]byte("0123456789"), 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes(tt.input)
			if !bytes.Equal(r.Bytes(), tt.input) {
				t.Errorf("Bytes() = %v, want %v", r.Bytes(), tt.input)
			}
			if r.Len() != len(tt.input) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
		})
	}
}

func TestFromBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	r := FromBytes(src)
	src[0] = 9
	if b, _ := r.ByteAt(0); b != 1 {
		t.Errorf("rope changed after source mutation: got %d", b)
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   int
		text     string
		expected string
	}{
		{"insert at start", "world", 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, " ", "hello world"},
		{"insert into empty", "", 0, "hello", "hello"},
		{"insert empty", "hello", 3, "", "hello"},
		{"insert binary", "\x00\x01", 1, "\xff", "\x00\xff\x01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Insert(tt.offset, []byte(tt.text))
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		expected   string
	}{
		{"delete start", "hello world", 0, 6, "world"},
		{"delete end", "hello world", 5, 11, "hello"},
		{"delete middle", "hello world", 5, 6, "helloworld"},
		{"delete all", "hello", 0, 5, ""},
		{"delete nothing", "hello", 2, 2, "hello"},
		{"delete past end", "hello", 3, 100, "hel"},
		{"delete inverted", "hello", 4, 2, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Delete(tt.start, tt.end)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	r := FromString("hello world").Replace(6, 11, []byte("there"))
	if got := r.String(); got != "hello there" {
		t.Errorf("got %q, want %q", got, "hello there")
	}
}

func TestSliceAndBorrow(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz"), 200)
	r := FromBytes(data)

	tests := []struct {
		name       string
		start, end int
	}{
		{"prefix", 0, 10},
		{"inside first chunk", 5, 50},
		{"across chunks", 100, 900},
		{"whole", 0, len(data)},
		{"clamped", 5000, 10000},
		{"empty", 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.start, min(tt.end, len(data))
			var want []byte
			if lo < hi {
				want = data[lo:hi]
			}
			if got := r.Slice(tt.start, tt.end); !bytes.Equal(got, want) {
				t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.end, got, want)
			}
			if got := r.SliceString(tt.start, tt.end); got != string(want) {
				t.Errorf("SliceString(%d, %d) = %q, want %q", tt.start, tt.end, got, want)
			}
		})
	}
}

func TestByteAt(t *testing.T) {
	data := bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 300)
	r := FromBytes(data)

	for _, off := range []int{0, 1, 255, 256, 1000, len(data) - 1} {
		b, ok := r.ByteAt(off)
		if !ok || b != data[off] {
			t.Errorf("ByteAt(%d) = %d, %v; want %d, true", off, b, ok, data[off])
		}
	}
	if _, ok := r.ByteAt(len(data)); ok {
		t.Error("ByteAt(len) should report false")
	}
	if _, ok := r.ByteAt(-1); ok {
		t.Error("ByteAt(-1) should report false")
	}
}

func TestSplitConcat(t *testing.T) {
	s := strings.Repeat("0123456789", 500)
	r := FromString(s)

	for _, off := range []int{0, 1, 128, 255, 256, 2500, len(s) - 1, len(s)} {
		left, right := r.Split(off)
		if left.Len() != off {
			t.Errorf("Split(%d): left len = %d", off, left.Len())
		}
		if got := left.Concat(right).String(); got != s {
			t.Errorf("Split(%d) then Concat lost data", off)
		}
	}
}

func TestSubRope(t *testing.T) {
	s := strings.Repeat("xyz", 400)
	r := FromString(s)
	if got := r.SubRope(10, 1000).String(); got != s[10:1000] {
		t.Errorf("SubRope mismatch")
	}
	if !r.SubRope(0, r.Len()).Equals(r) {
		t.Error("SubRope of full range should equal rope")
	}
	if !r.SubRope(50, 50).IsEmpty() {
		t.Error("empty SubRope should be empty")
	}
}

func TestPersistence(t *testing.T) {
	base := FromString(strings.Repeat("a", 5000))
	edited := base.Insert(2500, []byte("bbb")).Delete(0, 100)

	if base.Len() != 5000 || base.String() != strings.Repeat("a", 5000) {
		t.Error("base rope changed after edits")
	}
	if edited.Len() != 5000+3-100 {
		t.Errorf("edited len = %d", edited.Len())
	}
}

func TestIndex(t *testing.T) {
	r := FromString(strings.Repeat("-", 300) + "needle" + strings.Repeat("-", 300) + "needle")
	if got := r.Index([]byte("needle"), 0); got != 300 {
		t.Errorf("Index = %d, want 300", got)
	}
	if got := r.Index([]byte("needle"), 301); got != 606 {
		t.Errorf("Index from 301 = %d, want 606", got)
	}
	if got := r.Index([]byte("absent"), 0); got != -1 {
		t.Errorf("Index of absent = %d, want -1", got)
	}
}

func TestWriteTo(t *testing.T) {
	s := strings.Repeat("abc", 1000)
	var buf bytes.Buffer
	n, err := FromString(s).WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(s)) || buf.String() != s {
		t.Errorf("WriteTo wrote %d bytes, content match %v", n, buf.String() == s)
	}
}

func TestChunkIterator(t *testing.T) {
	s := strings.Repeat("0123456789", 300)
	r := FromString(s)

	var sb strings.Builder
	it := r.Chunks()
	for it.Next() {
		if it.Offset() != sb.Len() {
			t.Fatalf("chunk offset = %d, want %d", it.Offset(), sb.Len())
		}
		sb.WriteString(it.Chunk().String())
	}
	if sb.String() != s {
		t.Error("chunk iteration lost data")
	}
}

func TestByteIterator(t *testing.T) {
	data := bytes.Repeat([]byte{9, 8, 7}, 200)
	it := FromBytes(data).BytesIter()
	i := 0
	for it.Next() {
		if it.Offset() != i || it.Byte() != data[i] {
			t.Fatalf("byte %d: got %d at %d", i, it.Byte(), it.Offset())
		}
		i++
	}
	if i != len(data) {
		t.Errorf("iterated %d bytes, want %d", i, len(data))
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 100; i++ {
		_, _ = b.Write([]byte("chunk of bytes "))
	}
	_ = b.WriteByte('!')
	b.WriteRope(FromString("tail"))
	want := strings.Repeat("chunk of bytes ", 100) + "!tail"
	if b.Len() != len(want) {
		t.Errorf("Builder.Len() = %d, want %d", b.Len(), len(want))
	}
	if got := b.Build().String(); got != want {
		t.Error("Builder output mismatch")
	}
	if b.Len() != 0 {
		t.Error("Builder should reset after Build")
	}
}

func TestRepeat(t *testing.T) {
	r := Repeat([]byte{0xde, 0xad}, 1000)
	if r.Len() != 2000 {
		t.Errorf("Repeat len = %d", r.Len())
	}
	if Repeat(nil, 5).Len() != 0 {
		t.Error("Repeat of empty should be empty")
	}
}

func TestManyEditsStayBalanced(t *testing.T) {
	var want []byte
	r := New()
	for i := 0; i < 5000; i++ {
		at := len(want) / 2
		r = r.Insert(at, []byte{byte(i)})
		want = slices.Insert(want, at, byte(i))
	}
	if !bytes.Equal(r.Bytes(), want) {
		t.Fatalf("content diverged after middle inserts: len(Bytes()) = %d, Len() = %d", len(r.Bytes()), r.Len())
	}
	if r.Height() > 10 {
		t.Errorf("tree too tall after sequential inserts: %d", r.Height())
	}
	if n := r.ChunkCount(); n > r.Len()/64+2 {
		t.Errorf("small chunks were not merged: %d chunks for %d bytes", n, r.Len())
	}
}

func TestTypingAtFixedCaret(t *testing.T) {
	want := bytes.Repeat([]byte("0123456789abcdef"), 256)
	r := FromBytes(want)
	caret := 1000
	for i := 0; i < 3000; i++ {
		if i%7 == 6 {
			r = r.Delete(caret-1, caret)
			want = slices.Delete(want, caret-1, caret)
			caret--
			continue
		}
		r = r.Insert(caret, []byte{byte(i)})
		want = slices.Insert(want, caret, byte(i))
		caret++
	}

	if r.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(want))
	}
	if !bytes.Equal(r.Bytes(), want) {
		t.Fatal("content diverged from the reference after typing")
	}
	for _, off := range []int{0, caret - 1, caret, len(want) - 1} {
		if b, ok := r.ByteAt(off); !ok || b != want[off] {
			t.Errorf("ByteAt(%d) = %#x, %v; want %#x", off, b, ok, want[off])
		}
	}
	if r.Height() > 10 {
		t.Errorf("Height() = %d after typing", r.Height())
	}
}

func TestConcatUnequalHeights(t *testing.T) {
	big := bytes.Repeat([]byte{0xaa}, 100000)
	small := []byte("xyz")

	for _, tt := range []struct {
		name        string
		left, right []byte
	}{
		{"tall left", big, small},
		{"tall right", small, big},
		{"equal", big, big},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes(tt.left).Concat(FromBytes(tt.right))
			want := slices.Concat(tt.left, tt.right)
			if !bytes.Equal(r.Bytes(), want) {
				t.Fatal("concat lost bytes")
			}
			tall := max(FromBytes(tt.left).Height(), FromBytes(tt.right).Height())
			if r.Height() > tall+1 {
				t.Errorf("Height() = %d, inputs at most %d", r.Height(), tall)
			}
		})
	}
}

// Property-based tests

func TestInsertDeleteProperty(t *testing.T) {
	f := func(data []byte, offset int, insert []byte) bool {
		offset = clampOffset(offset, len(data))
		r := FromBytes(data).Insert(offset, insert)
		r = r.Delete(offset, offset+len(insert))
		return bytes.Equal(r.Bytes(), data)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestConcatSplitProperty(t *testing.T) {
	f := func(data []byte, offset int) bool {
		offset = clampOffset(offset, len(data))
		left, right := FromBytes(data).Split(offset)
		return bytes.Equal(left.Concat(right).Bytes(), data)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestLenProperty(t *testing.T) {
	f := func(data []byte) bool {
		return FromBytes(data).Len() == len(data)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func clampOffset(offset, n int) int {
	if n == 0 {
		return 0
	}
	offset %= n + 1
	if offset < 0 {
		offset = -offset
	}
	return offset
}
