// Package delta describes edits over a rope and the algebra used to undo and
// compose them.
//
// # Subsets
//
// A Subset marks positions of a coordinate space as "in" or "out". Subsets are
// run-length encoded value types. Their algebra:
//
//   - Complement flips every position.
//   - Union marks a position when either operand marks it.
//   - TransformExpand reinterprets a subset of the positions left out of another
//     subset into the full space of that other subset (marked positions of the
//     other subset are "out" in the result).
//   - TransformShrink is the inverse: it drops the positions marked by the other
//     subset.
//
// # Deltas
//
// A Delta has a base length and an ordered list of elements, each either a copy
// of a base range or an inserted rope. Copies are strictly increasing and never
// overlap; base bytes not covered by a copy are deleted.
//
// Any delta factors into an insert-only delta plus the subset of base positions
// it deletes. Laying the inserted bytes next to the base bytes gives a "union"
// space in which both the inserts and the deletes are plain subsets. Invert and
// Chain work entirely in such union spaces and rebuild a delta with Synthesize.
//
// # Coincident positions
//
// When a delta inserts at a position where an earlier delta deleted bytes, the
// inserted bytes are placed after the deleted ones in the union space, and the
// inserted content always survives into the composed result. Inserts made by the
// same delta at the same base position keep their order.
package delta
