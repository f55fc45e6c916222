package supervisor

import "sync"

// tailBuffer keeps the last N output lines of a session for crash diagnosis.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	lines []string
}

func newTailBuffer(limit int) *tailBuffer {
	if limit <= 0 {
		limit = DefaultTailLimit
	}

	return &tailBuffer{limit: limit}
}

func (buffer *tailBuffer) Append(line string) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()

	buffer.lines = append(buffer.lines, line)
	if len(buffer.lines) > buffer.limit {
		buffer.lines = buffer.lines[len(buffer.lines)-buffer.limit:]
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (buffer *tailBuffer) Lines() []string {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()

	out := make([]string, len(buffer.lines))
	copy(out, buffer.lines)

	return out
}
