package normal

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize    = 10000
	defaultMaxTokenSize = 1 << 24 // 16MB, hard limit for a single line
)

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.numWorkers = n
		}
	}
}

// WithBatchSize sets the number of lines handed to a worker at once.
func WithBatchSize(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithMaxTokenSize sets the maximum line length.
func WithMaxTokenSize(size int) ProcessorOption {
	return func(p *Processor) {
		if size > 0 {
			p.maxTokenSize = size
		}
	}
}

// Processor applies a function to every line of a stream in parallel. Lines
// are written in input order, each followed by a newline.
type Processor struct {
	f            func(string) string
	numWorkers   int
	batchSize    int
	maxTokenSize int
}

// NewProcessor returns a processor applying f to each line.
func NewProcessor(f func(string) string, opts ...ProcessorOption) *Processor {
	p := &Processor{
		f:            f,
		numWorkers:   runtime.NumCPU(),
		batchSize:    defaultBatchSize,
		maxTokenSize: defaultMaxTokenSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type batch struct {
	seq   int
	lines []string
}

// Process reads lines from r and writes the transformed lines to w.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, p.maxTokenSize)), p.maxTokenSize)
	var (
		work    = make(chan batch, p.numWorkers*2)
		results = make(chan batch, p.numWorkers*2)
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(work)
		b := batch{}
		send := func() error {
			select {
			case work <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
			b = batch{seq: b.seq + 1}
			return nil
		}
		for scanner.Scan() {
			b.lines = append(b.lines, scanner.Text())
			if len(b.lines) == p.batchSize {
				if err := send(); err != nil {
					return err
				}
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		if len(b.lines) > 0 {
			return send()
		}
		return nil
	})
	workers, wctx := errgroup.WithContext(ctx)
	for i := 0; i < p.numWorkers; i++ {
		workers.Go(func() error {
			for b := range work {
				for j, line := range b.lines {
					b.lines[j] = p.f(line)
				}
				select {
				case results <- b:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})
	g.Go(func() error {
		var (
			next    int
			pending = make(map[int][]string)
		)
		for b := range results {
			pending[b.seq] = b.lines
			for {
				lines, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				for _, line := range lines {
					if _, err := io.WriteString(bw, line); err != nil {
						return err
					}
					if err := bw.WriteByte('\n'); err != nil {
						return err
					}
				}
			}
		}
		return bw.Flush()
	})
	return g.Wait()
}

// Tokens returns a function that normalizes an author field and joins the
// non-empty tokens with sep.
func Tokens(n Normalizer, split, sep string) func(string) string {
	return func(s string) string {
		var tokens []string
		for _, t := range strings.Split(n.Normalize(ReplaceNewlineAndTab(s)), split) {
			if t != "" {
				tokens = append(tokens, t)
			}
		}
		return strings.Join(tokens, sep)
	}
}
