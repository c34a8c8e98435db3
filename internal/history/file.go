package history

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrCorruptTranscript is returned when a transcript line cannot be decoded.
var ErrCorruptTranscript = errors.New("history: corrupt transcript")

// FileTranscript stores messages as JSON lines, oldest first.
type FileTranscript struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewFileTranscript returns a transcript backed by path. The file and its
// directory are created on first Append.
func NewFileTranscript(path string) *FileTranscript {
	return &FileTranscript{path: path, now: time.Now}
}

// Recent implements Transcript.
func (f *FileTranscript) Recent(ctx context.Context, limit int) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", f.path, err)
	}
	defer file.Close()

	var all []Message
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var m Message
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrCorruptTranscript, f.path, line, err)
		}
		all = append(all, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("history: read %s: %w", f.path, err)
	}

	n := max(0, min(limit, len(all)))
	out := make([]Message, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// Append implements Transcript.
func (f *FileTranscript) Append(ctx context.Context, content string) (Message, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}
	msg := Message{
		ID:        uuid.NewString(),
		Timestamp: f.now().UTC(),
		Content:   content,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return Message{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return Message{}, fmt.Errorf("history: mkdir: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Message{}, fmt.Errorf("history: open %s: %w", f.path, err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return Message{}, fmt.Errorf("history: write %s: %w", f.path, err)
	}
	return msg, nil
}

// MemoryTranscript is an in-memory Transcript for tests and dry runs.
type MemoryTranscript struct {
	mu   sync.Mutex
	msgs []Message
	now  func() time.Time
}

// NewMemoryTranscript returns an empty transcript stamping messages with now.
func NewMemoryTranscript(now func() time.Time) *MemoryTranscript {
	if now == nil {
		now = time.Now
	}
	return &MemoryTranscript{now: now}
}

// Recent implements Transcript.
func (m *MemoryTranscript) Recent(_ context.Context, limit int) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, 0, max(0, min(limit, len(m.msgs))))
	for i := len(m.msgs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.msgs[i])
	}
	return out, nil
}

// Append implements Transcript.
func (m *MemoryTranscript) Append(_ context.Context, content string) (Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := Message{ID: uuid.NewString(), Timestamp: m.now(), Content: content}
	m.msgs = append(m.msgs, msg)
	return msg, nil
}
