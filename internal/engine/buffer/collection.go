package buffer

// Collection holds the open buffers, tracks the current one and owns the
// register shared by all of them.
type Collection struct {
	buffers  []*Buffer
	current  int
	register Register
}

// NewCollection returns a collection of bufs with the first one current.
func NewCollection(bufs ...*Buffer) *Collection {
	return &Collection{buffers: bufs, register: &MemRegister{}}
}

// Register returns the yank register.
func (c *Collection) Register() Register {
	return c.register
}

// SetRegister replaces the yank register.
func (c *Collection) SetRegister(r Register) {
	if r != nil {
		c.register = r
	}
}

// Len returns the number of buffers.
func (c *Collection) Len() int {
	return len(c.buffers)
}

// Current returns the current buffer, or nil when the collection is empty.
func (c *Collection) Current() *Buffer {
	if len(c.buffers) == 0 {
		return nil
	}
	return c.buffers[c.current]
}

// CurrentIndex returns the index of the current buffer.
func (c *Collection) CurrentIndex() int {
	return c.current
}

// Add appends b and makes it current.
func (c *Collection) Add(b *Buffer) {
	c.buffers = append(c.buffers, b)
	c.current = len(c.buffers) - 1
}

// Switch makes buffer i current. It reports false for an invalid index.
func (c *Collection) Switch(i int) bool {
	if i < 0 || i >= len(c.buffers) {
		return false
	}
	c.current = i
	return true
}

// Next makes the following buffer current, wrapping around.
func (c *Collection) Next() *Buffer {
	if len(c.buffers) == 0 {
		return nil
	}
	c.current = (c.current + 1) % len(c.buffers)
	return c.buffers[c.current]
}

// All returns the buffers in order.
func (c *Collection) All() []*Buffer {
	out := make([]*Buffer, len(c.buffers))
	copy(out, c.buffers)
	return out
}
