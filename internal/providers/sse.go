package providers

import (
	"bufio"
	"io"
	"strings"
)

// scanSSE reads an SSE response body and invokes onData for every non-empty
// data payload. The "[DONE]" terminator used by OpenAI-compatible APIs is
// swallowed.
func scanSSE(r io.Reader, onData func(data []byte) error) error {
	sc := bufio.NewScanner(r)
	// Single deltas can exceed the 64K scanner default on long sections.
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}
		if err := onData([]byte(data)); err != nil {
			return err
		}
	}
	return sc.Err()
}
