package ui

import (
	"fmt"
	"io"
	"sync"
)

// Toaster prints success and error notices, one per line.
type Toaster struct {
	mu  sync.Mutex
	out io.Writer
}

// NewToaster returns a Toaster writing to out (typically stderr).
func NewToaster(out io.Writer) *Toaster {
	return &Toaster{out: out}
}

func (t *Toaster) Success(msg string) {
	t.print(RenderSuccess("✓"), msg)
}

func (t *Toaster) Error(msg string) {
	t.print(RenderError("✗"), msg)
}

func (t *Toaster) print(mark, msg string) {
	if msg == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", mark, msg)
}
