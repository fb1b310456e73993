// Package rope provides an immutable byte rope for editing large binary buffers.
//
// A rope is a B+ tree whose leaves hold immutable byte chunks and whose internal
// nodes store the byte length of each child. Every edit returns a new Rope that
// shares all untouched subtrees with the original, so old versions stay valid and
// cheap to keep around (undo snapshots, views of the same data).
//
// Key features:
//   - O(log n) split, concat, insert, delete and random access
//   - Immutable operations return new ropes; nodes reachable from a live rope
//     are never written to
//   - Chunks store their bytes in Go strings, so sharing is enforced by the
//     language rather than by convention
//   - SliceString borrows the underlying bytes when a range lies in one chunk
//
// Basic usage:
//
//	r := rope.FromBytes([]byte{0, 1, 2, 3})
//	r = r.Insert(1, []byte{5})     // 00 05 01 02 03
//	r = r.Delete(0, 1)             // 05 01 02 03
//	b := r.Bytes()                 // []byte{5, 1, 2, 3}
package rope
