// Package buffer ties the engine together. A Buffer owns the rope being
// edited, its selection, its edit history and, for file-backed buffers, the
// window streaming the file through the rope.
//
// Every mutation goes through the same sequence: apply the delta to the
// rope, remap the selection through it, record its inverse in the history.
// The returned DirtyBytes tells the renderer what to redraw.
//
// Basic usage:
//
//	src, _ := window.OpenFile("image.bin")
//	buf, err := buffer.Open(src, 368, 16)
//	if err != nil {
//	    return err
//	}
//
//	// Delete the bytes under every region
//	dirty, err := buf.ApplyDelta(ops.Delete(buf.Len(), buf.Selection()))
//	buf.Commit()
//
//	// Undo restores the bytes and the selection
//	dirty, ok, err := buf.Undo()
//
// Buffers are not safe for concurrent use. The application owns the current
// buffer and resolves one event at a time.
package buffer
