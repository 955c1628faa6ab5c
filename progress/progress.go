// Package progress reports how far a long running computation has come.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/miku/collabnet/coauthor"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// DefaultWidth is the number of cells in a bar.
const DefaultWidth = 60

// Bar draws a single line progress bar, redrawn in place with a carriage
// return. A newline is written once current reaches total.
type Bar struct {
	Prefix string
	Width  int

	mu   sync.Mutex
	w    io.Writer
	last int // last filled length, to skip identical redraws
	done bool
}

// NewBar writes a bar to w.
func NewBar(w io.Writer, prefix string) *Bar {
	return &Bar{Prefix: prefix, Width: DefaultWidth, w: w, last: -1}
}

func (b *Bar) Report(current, total int) {
	if total <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return
	}
	width := b.Width
	if width <= 0 {
		width = DefaultWidth
	}
	current = min(max(current, 0), total)
	filled := (width*current + total/2) / total
	if filled == b.last && current != total {
		return
	}
	b.last = filled
	pct := 100 * float64(current) / float64(total)
	bar := strings.Repeat("█", filled) + strings.Repeat("-", width-filled)
	fmt.Fprintf(b.w, "\r%s |%s| %.2f%%", b.Prefix, bar, pct)
	if current == total {
		fmt.Fprintln(b.w)
		b.done = true
	}
}

// Log reports through a logger every Step percent.
type Log struct {
	Logger logrus.FieldLogger
	Step   int

	mu   sync.Mutex
	next int
}

// NewLog logs progress every ten percent.
func NewLog(logger logrus.FieldLogger) *Log {
	return &Log{Logger: logger, Step: 10}
}

func (l *Log) Report(current, total int) {
	if total <= 0 {
		return
	}
	step := l.Step
	if step <= 0 {
		step = 10
	}
	pct := 100 * current / total
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.next == 0 {
		l.next = step
	}
	if pct < l.next {
		return
	}
	l.Logger.WithFields(logrus.Fields{
		"current": current,
		"total":   total,
	}).Infof("progress %d%%", pct)
	l.next = (pct/step + 1) * step
}

// Nop discards all updates.
type Nop struct{}

func (Nop) Report(current, total int) {}

// New returns a bar if f is a terminal and a logging reporter otherwise.
func New(f *os.File, logger logrus.FieldLogger) coauthor.Reporter {
	if term.IsTerminal(int(f.Fd())) {
		return NewBar(f, "authors")
	}
	return NewLog(logger)
}
