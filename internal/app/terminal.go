package app

import (
	"os"
	"sync"
)

// TerminalOutput is the program's terminal, shared by the Bubble Tea
// renderer (through tea.WithOutput) and the OSC 52 clipboard fallback.
// Writes are serialized, so a clipboard escape is never spliced into a
// frame. It keeps Fd so Bubble Tea still detects the TTY and its size.
type TerminalOutput struct {
	mu sync.Mutex
	f  *os.File
}

// NewTerminalOutput wraps f, normally os.Stdout.
func NewTerminalOutput(f *os.File) *TerminalOutput {
	return &TerminalOutput{f: f}
}

func (o *TerminalOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.f.Write(p)
}

func (o *TerminalOutput) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}

func (o *TerminalOutput) Read(p []byte) (int, error) { return o.f.Read(p) }

func (o *TerminalOutput) Close() error { return o.f.Close() }

func (o *TerminalOutput) Fd() uintptr { return o.f.Fd() }
