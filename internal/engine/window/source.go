package window

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
)

// Source is the backing store a window streams chunks from.
type Source interface {
	// ReadAt reads len(p) bytes at off. A short read at the end of the
	// source returns io.EOF along with the bytes read.
	ReadAt(p []byte, off int64) (int, error)

	// Size returns the current size of the source in bytes.
	Size() (int64, error)

	// Path names the source for messages.
	Path() string
}

// Reopener is implemented by sources whose backing handle can go stale,
// e.g. when a save replaces the file by renaming over it.
type Reopener interface {
	// Reopen switches to the current file at the source path if it is no
	// longer the one held open. It reports whether a switch happened.
	Reopen() (bool, error)
}

// FileSource reads chunks from a file on disk.
//
// FileSource is safe for concurrent use.
type FileSource struct {
	mu   sync.RWMutex
	path string
	f    *os.File
}

// Ensure FileSource implements Source and Reopener.
var (
	_ Source   = (*FileSource)(nil)
	_ Reopener = (*FileSource)(nil)
)

// OpenFile opens the file at path for chunked reading.
func OpenFile(path string) (*FileSource, error) {
	f, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, f: f}, nil
}

func openRegular(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: path, Err: errIsDir}
	}
	return f, nil
}

// ReadAt reads from the file.
func (s *FileSource) ReadAt(p []byte, off int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.ReadAt(p, off)
}

// Size stats the file.
func (s *FileSource) Size() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Reopen compares the open handle with the file now at the path and opens
// the new one when they differ. A missing path keeps the old handle.
func (s *FileSource) Reopen() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	onDisk, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	held, err := s.f.Stat()
	if err == nil && os.SameFile(onDisk, held) {
		return false, nil
	}

	f, err := openRegular(s.path)
	if err != nil {
		return false, err
	}
	s.f.Close()
	s.f = f
	return true, nil
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Close closes the file.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// MemSource serves chunks from memory. It is used for tests and for data
// read from a pipe.
//
// MemSource is safe for concurrent use.
type MemSource struct {
	mu      sync.RWMutex
	name    string
	content []byte
	failAt  int64
	failErr error
}

// Ensure MemSource implements Source.
var _ Source = (*MemSource)(nil)

// NewMemSource returns a source serving content under name.
func NewMemSource(name string, content []byte) *MemSource {
	return &MemSource{name: name, content: content, failAt: -1}
}

// ReadAt copies from the in-memory content.
func (m *MemSource) ReadAt(p []byte, off int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failErr != nil && m.failAt >= 0 && off <= m.failAt && m.failAt < off+int64(len(p)) {
		return 0, m.failErr
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "read", Path: m.name, Err: fs.ErrInvalid}
	}
	if off >= int64(len(m.content)) {
		return 0, io.EOF
	}
	n := copy(p, m.content[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the content length.
func (m *MemSource) Size() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.content)), nil
}

// Path returns the source name.
func (m *MemSource) Path() string {
	return m.name
}

// SetContent replaces the content, as if the file changed on disk.
func (m *MemSource) SetContent(content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
}

// FailAt makes every read covering offset fail with err. A nil err clears it.
func (m *MemSource) FailAt(offset int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAt, m.failErr = offset, err
}
