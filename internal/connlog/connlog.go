// Package connlog appends one text line per handled connection to a log file:
//
//	[2006-01-02 15:04:05] 10.0.0.7:51234 - Error - ADD_LINE{... | Exception: read: connection reset
package connlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

const timeLayout = "2006-01-02 15:04:05"

// Entry describes the outcome of one connection.
type Entry struct {
	Timestamp      time.Time
	IPAddress      string
	Port           int
	RemoteEndPoint string
	Message        string
	Success        bool
	Exception      string
}

// Logger accepts connection entries. Implementations must be safe for concurrent use.
type Logger interface {
	Log(entry Entry)
}

// Format renders entry as a single line without the trailing newline.
func Format(entry Entry) string {
	status := "Error"
	if entry.Success {
		status = "Success"
	}

	message := strings.NewReplacer("\r", " ", "\n", " ").Replace(entry.Message)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s:%d - %s - %s",
		entry.Timestamp.UTC().Format(timeLayout), entry.IPAddress, entry.Port, status, message)
	if entry.Exception != "" {
		b.WriteString(" | Exception: ")
		b.WriteString(entry.Exception)
	}
	return b.String()
}

// Sink writes formatted entries to w, one per line.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	log    *slog.Logger
}

func New(w io.Writer, log *slog.Logger) *Sink {
	return &Sink{
		w:   w,
		log: log.With("component", "connlog"),
	}
}

// OpenFile opens path for appending, creating it if needed.
func OpenFile(path string, log *slog.Logger) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open connection log: %w", err)
	}
	s := New(f, log)
	s.closer = f
	return s, nil
}

func (s *Sink) Log(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	line := Format(entry) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.w, line); err != nil {
		s.log.Error("failed to write connection log", "error", err)
	}
}

func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Discard drops every entry.
type Discard struct{}

func (Discard) Log(Entry) {}
