package buffer

// Register stores yanked bytes, one slice per region.
type Register interface {
	Yank(clips [][]byte) error
	Paste() ([][]byte, error)
}

// MemRegister is an in-process Register.
type MemRegister struct {
	clips [][]byte
}

var _ Register = (*MemRegister)(nil)

// Yank stores a copy of clips.
func (m *MemRegister) Yank(clips [][]byte) error {
	m.clips = make([][]byte, len(clips))
	for i, c := range clips {
		m.clips[i] = append([]byte(nil), c...)
	}
	return nil
}

// Paste returns the stored clips.
func (m *MemRegister) Paste() ([][]byte, error) {
	return m.clips, nil
}
