package helpers

import (
	"bytes"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"kaspa-wallet-tui/styles"
)

const defaultLogLimit = 64 << 10

// LogBuffer collects log output for the diagnostics panel. Background tasks
// write to it while the UI reads, so every method locks. Once the buffer
// exceeds its limit the oldest lines are dropped.
type LogBuffer struct {
	mtx   sync.Mutex
	buf   bytes.Buffer
	limit int
}

func NewLogBuffer(limit int) *LogBuffer {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return &LogBuffer{limit: limit}
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	n, err := b.buf.Write(p)
	if over := b.buf.Len() - b.limit; over > 0 {
		data := b.buf.Bytes()
		cut := over
		if i := bytes.IndexByte(data[over:], '\n'); i >= 0 {
			cut = over + i + 1
		}
		b.buf.Next(cut)
	}
	return n, err
}

func (b *LogBuffer) String() string {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.buf.String()
}

func (b *LogBuffer) Len() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.buf.Len()
}

func (b *LogBuffer) Reset() {
	b.mtx.Lock()
	b.buf.Reset()
	b.mtx.Unlock()
}

// NewLogger creates the application logger writing to w
func NewLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(log.InfoLevel)
	logger.SetStyles(styles.LogStyles())
	return logger
}
