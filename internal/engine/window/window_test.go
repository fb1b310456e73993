package window

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"testing/quick"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/rope"
)

func patternBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

// harness applies window changes to a rope the way a pristine buffer does.
type harness struct {
	t         *testing.T
	w         *Window
	r         rope.Rope
	viewStart int
	viewLen   int
	fetches   int
	trims     int
}

func newHarness(t *testing.T, content []byte, chunk int) *harness {
	t.Helper()
	w := New(NewMemSource("mem", content), chunk, 16, nil)
	r, err := w.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return &harness{t: t, w: w, r: r, viewLen: chunk}
}

func (h *harness) scroll(rows int) error {
	dir := Down
	if rows < 0 {
		dir = Up
	}
	h.viewStart = max(0, min(h.viewStart+rows*16, max(h.r.Len()-16, 0)))

	view := delta.Interval{Start: h.viewStart, End: h.viewStart + h.viewLen}
	change, err := h.w.Manage(h.r, view, dir, true)
	if err != nil {
		return err
	}
	if change.IsEmpty() {
		return nil
	}
	h.r = delta.MustApply(h.r, change.Delta)
	h.viewStart = max(0, h.viewStart+change.Shift())
	if change.Appended > 0 || change.Prepended > 0 {
		h.fetches++
	}
	if change.TrimmedTop > 0 || change.TrimmedBottom > 0 {
		h.trims++
	}
	return nil
}

func (h *harness) checkContent(content []byte) {
	h.t.Helper()
	want := content[h.w.Start() : h.w.Start()+h.r.Len()]
	if !bytes.Equal(h.r.Bytes(), want) {
		h.t.Fatalf("window [%d, %d) does not match the file", h.w.Start(), h.w.End())
	}
	if h.w.End() != h.w.Start()+h.r.Len() {
		h.t.Fatalf("End = %d, want %d", h.w.End(), h.w.Start()+h.r.Len())
	}
}

func TestScrollDownFetchesThenTrims(t *testing.T) {
	content := patternBytes(10000)
	h := newHarness(t, content, 368)
	if h.r.Len() != 368 {
		t.Fatalf("initial window = %d bytes, want 368", h.r.Len())
	}

	// The first row of scrolling brings the view within 10% of the bottom.
	if err := h.scroll(1); err != nil {
		t.Fatal(err)
	}
	if h.fetches != 1 || h.trims != 0 || h.r.Len() != 736 {
		t.Fatalf("after first fetch: fetches=%d trims=%d len=%d", h.fetches, h.trims, h.r.Len())
	}
	h.checkContent(content)

	for h.fetches < 2 {
		if err := h.scroll(1); err != nil {
			t.Fatal(err)
		}
	}
	if h.trims != 1 || h.r.Len() != 736 || h.w.Start() != 368 {
		t.Fatalf("after second fetch: trims=%d len=%d start=%d", h.trims, h.r.Len(), h.w.Start())
	}
	h.checkContent(content)
}

func TestScrollUpFetchesAbove(t *testing.T) {
	content := patternBytes(10000)
	h := newHarness(t, content, 368)
	for h.w.Start() < 1000 {
		if err := h.scroll(4); err != nil {
			t.Fatal(err)
		}
	}
	start := h.w.Start()
	fetches := h.fetches

	for h.fetches == fetches {
		if err := h.scroll(-1); err != nil {
			t.Fatal(err)
		}
	}
	if h.w.Start() != start-368 || h.r.Len() != 736 {
		t.Errorf("start=%d len=%d, want start %d len 736", h.w.Start(), h.r.Len(), start-368)
	}
	h.checkContent(content)
}

func TestSmallFileNeverFetches(t *testing.T) {
	content := patternBytes(100)
	h := newHarness(t, content, 368)
	for i := 0; i < 20; i++ {
		if err := h.scroll(1); err != nil {
			t.Fatal(err)
		}
		if err := h.scroll(-1); err != nil {
			t.Fatal(err)
		}
	}
	if h.fetches != 0 || h.r.Len() != 100 {
		t.Errorf("fetches=%d len=%d", h.fetches, h.r.Len())
	}
	if !h.w.atEOF {
		t.Error("zero-byte read should mark the end of file")
	}
}

func TestReadErrorLeavesWindowUnchanged(t *testing.T) {
	content := patternBytes(2000)
	src := NewMemSource("broken.bin", content)
	w := New(src, 368, 16, nil)
	r, err := w.Open()
	if err != nil {
		t.Fatal(err)
	}

	ioErr := errors.New("device unplugged")
	src.FailAt(400, ioErr)
	change, err := w.Manage(r, delta.Interval{Start: 0, End: 368}, Down, true)

	var re *ReadError
	if !errors.As(err, &re) || !errors.Is(err, ioErr) || re.Offset != 368 || re.Path != "broken.bin" {
		t.Fatalf("err = %v", err)
	}
	if !change.IsEmpty() || w.Start() != 0 || w.End() != 368 {
		t.Errorf("window moved on error: start=%d end=%d", w.Start(), w.End())
	}

	src.FailAt(-1, nil)
	change, err = w.Manage(r, delta.Interval{Start: 0, End: 368}, Down, true)
	if err != nil || change.Appended != 368 {
		t.Errorf("retry: change=%+v err=%v", change, err)
	}
}

func TestModifiedBufferIsNotTrimmed(t *testing.T) {
	content := patternBytes(5000)
	w := New(NewMemSource("mem", content), 368, 16, nil)
	r, err := w.Open()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		view := delta.Interval{Start: r.Len() - 100, End: r.Len()}
		change, err := w.Manage(r, view, Down, false)
		if err != nil {
			t.Fatal(err)
		}
		if change.TrimmedTop != 0 {
			t.Fatal("modified buffer was trimmed")
		}
		r = delta.MustApply(r, change.Delta)
	}
	if r.Len() != 5*368 || w.Start() != 0 {
		t.Errorf("len=%d start=%d", r.Len(), w.Start())
	}
}

func TestReload(t *testing.T) {
	content := patternBytes(10000)
	w := New(NewMemSource("mem", content), 368, 16, nil)

	tests := []struct {
		name   string
		target int
		start  int
		length int
	}{
		{"start", 0, 0, 736},
		{"middle", 5000, 4816, 736},
		{"end", 10000, 9632, 368},
		{"past end", 20000, 9632, 368},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := w.Reload(tt.target)
			if err != nil {
				t.Fatal(err)
			}
			if w.Start() != tt.start || r.Len() != tt.length {
				t.Errorf("start=%d len=%d, want %d and %d", w.Start(), r.Len(), tt.start, tt.length)
			}
			if w.Start()%16 != 0 {
				t.Error("reload start is not row aligned")
			}
			if !bytes.Equal(r.Bytes(), content[w.Start():w.End()]) {
				t.Error("content mismatch")
			}
		})
	}
}

func TestNoSource(t *testing.T) {
	w := New(nil, 368, 16, nil)
	if _, err := w.Open(); !errors.Is(err, ErrNoSource) {
		t.Errorf("Open err = %v", err)
	}
	if _, err := w.Reload(10); !errors.Is(err, ErrNoSource) {
		t.Errorf("Reload err = %v", err)
	}
	if change, err := w.Manage(rope.New(), delta.Interval{}, Down, true); err != nil || !change.IsEmpty() {
		t.Errorf("Manage = %+v, %v", change, err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := patternBytes(1000)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	w := New(src, 368, 16, nil)
	r, err := w.Open()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(r.Bytes(), content[:368]) {
		t.Error("first chunk mismatch")
	}
	if size, err := w.FileSize(); err != nil || size != 1000 {
		t.Errorf("FileSize = %d, %v", size, err)
	}

	if _, err := OpenFile(t.TempDir()); err == nil {
		t.Error("opening a directory should fail")
	}
}

func TestShrink(t *testing.T) {
	content := patternBytes(10000)
	tests := []struct {
		name     string
		chunk    int
		view     delta.Interval
		pristine bool
		top      int
		bottom   int
	}{
		{"view at top", 160, delta.Interval{Start: 0, End: 160}, true, 0, 416},
		{"view at bottom", 160, delta.Interval{Start: 576, End: 736}, true, 416, 0},
		{"view in middle", 160, delta.Interval{Start: 288, End: 448}, true, 128, 288},
		{"modified", 160, delta.Interval{Start: 0, End: 160}, false, 0, 0},
		{"chunk grew", 400, delta.Interval{Start: 0, End: 160}, true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(NewMemSource("mem", content), 368, 16, nil)
			r, err := w.Open()
			if err != nil {
				t.Fatal(err)
			}
			change, err := w.Manage(r, delta.Interval{Start: 0, End: 368}, Down, true)
			if err != nil || change.Appended != 368 {
				t.Fatalf("fetch: %+v, %v", change, err)
			}
			r = delta.MustApply(r, change.Delta)
			viewBytes := r.Slice(tt.view.Start, tt.view.End)

			w.SetChunkSize(tt.chunk)
			change = w.Shrink(r, tt.view, tt.pristine)
			if change.TrimmedTop != tt.top || change.TrimmedBottom != tt.bottom {
				t.Fatalf("trimmed %d above and %d below, want %d and %d",
					change.TrimmedTop, change.TrimmedBottom, tt.top, tt.bottom)
			}
			if !change.IsEmpty() {
				r = delta.MustApply(r, change.Delta)
			}
			if w.Start() != tt.top || w.End() != 736-tt.bottom {
				t.Errorf("window [%d, %d)", w.Start(), w.End())
			}
			if !bytes.Equal(r.Bytes(), content[w.Start():w.End()]) {
				t.Error("content mismatch")
			}
			if tt.pristine && tt.chunk < 368 && r.Len() > 2*tt.chunk {
				t.Errorf("len %d exceeds two chunks of %d", r.Len(), tt.chunk)
			}
			shifted := tt.view.Start + change.Shift()
			if got := r.Slice(shifted, shifted+tt.view.Len()); !bytes.Equal(got, viewBytes) {
				t.Error("bytes on screen moved")
			}
		})
	}
}

func TestReloadAfterRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	if err := os.WriteFile(path, bytes.Repeat([]byte("OLD"), 100), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	w := New(src, 368, 16, nil)
	if _, err := w.Open(); err != nil {
		t.Fatal(err)
	}

	// Save the way editors do: write a temp file and rename it over.
	fresh := bytes.Repeat([]byte("NEW!"), 50)
	tmp := filepath.Join(dir, "data.bin.tmp")
	if err := os.WriteFile(tmp, fresh, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	r, err := w.Reload(0)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !bytes.Equal(r.Bytes(), fresh) {
		t.Errorf("Reload read %q, want the replaced file", r.Bytes())
	}
	if size, err := w.FileSize(); err != nil || size != len(fresh) {
		t.Errorf("FileSize = %d, %v; want %d", size, err, len(fresh))
	}

	// Nothing changed on disk since, so the handle is kept.
	if switched, err := src.Reopen(); err != nil || switched {
		t.Errorf("Reopen = %v, %v; want no switch", switched, err)
	}
}

// For file size F and chunk C the window stays within [min(F, C), 2C] and
// inside the file, whatever the scroll sequence.
func TestWindowBoundProperty(t *testing.T) {
	f := func(seed int64) bool {
		rng := rand.New(rand.NewSource(seed))
		size := rng.Intn(6000)
		chunk := 16 * (rng.Intn(30) + 1)
		content := patternBytes(size)

		h := newHarness(t, content, chunk)
		for i := 0; i < 200; i++ {
			rows := rng.Intn(9) - 4
			if rows == 0 {
				continue
			}
			if err := h.scroll(rows); err != nil {
				return false
			}
			n := h.r.Len()
			if n < min(size, chunk) || n > 2*chunk {
				return false
			}
			if h.w.Start() < 0 || h.w.Start()+n > size {
				return false
			}
			if !bytes.Equal(h.r.Bytes(), content[h.w.Start():h.w.Start()+n]) {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 50}); err != nil {
		t.Error(err)
	}
}
