package coauthor

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Reporter receives progress updates, once per finished author.
type Reporter interface {
	Report(current, total int)
}

// Matrix is a symmetric co-authorship matrix. Rows are sparse and keyed by
// author; a missing entry means weight zero.
type Matrix struct {
	authors []string
	rows    map[string]map[string]int
}

// Edge is a weighted undirected pair of authors.
type Edge struct {
	A, B   string
	Weight int
}

// Authors returns the authors in matrix order.
func (m *Matrix) Authors() []string {
	authors := make([]string, len(m.authors))
	copy(authors, m.authors)
	return authors
}

// Len returns the number of authors.
func (m *Matrix) Len() int { return len(m.authors) }

// Has reports whether author is part of the matrix.
func (m *Matrix) Has(author string) bool {
	_, ok := m.rows[author]
	return ok
}

// Weight returns the number of records shared by a and b.
func (m *Matrix) Weight(a, b string) int {
	return m.rows[a][b]
}

// Row returns a copy of the non-zero entries of an author.
func (m *Matrix) Row(author string) map[string]int {
	row := make(map[string]int, len(m.rows[author]))
	for k, v := range m.rows[author] {
		row[k] = v
	}
	return row
}

// Edges returns each non-zero pair once, ordered by the position of the
// first and then the second author.
func (m *Matrix) Edges() []Edge {
	pos := make(map[string]int, len(m.authors))
	for i, a := range m.authors {
		pos[a] = i
	}
	var edges []Edge
	for _, a := range m.authors {
		for b, w := range m.rows[a] {
			if w > 0 && pos[a] < pos[b] {
				edges = append(edges, Edge{A: a, B: b, Weight: w})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		pi, pj := pos[edges[i].A], pos[edges[j].A]
		if pi != pj {
			return pi < pj
		}
		return pos[edges[i].B] < pos[edges[j].B]
	})
	return edges
}

// Check verifies that the matrix has no self loops and that every entry
// equals its transposed entry.
func (m *Matrix) Check() error {
	for _, a := range m.authors {
		for b, w := range m.rows[a] {
			if a == b {
				return &AsymmetryError{A: a, B: a, AB: w, BA: w}
			}
			if v := m.rows[b][a]; v != w {
				return &AsymmetryError{A: a, B: b, AB: w, BA: v}
			}
		}
	}
	return nil
}

// matrixOptions configure BuildMatrix.
type matrixOptions struct {
	workers  int
	reporter Reporter
}

// MatrixOption configures BuildMatrix.
type MatrixOption func(*matrixOptions)

// WithWorkers sets the number of goroutines computing rows.
func WithWorkers(n int) MatrixOption {
	return func(o *matrixOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithReporter sets a progress reporter.
func WithReporter(r Reporter) MatrixOption {
	return func(o *matrixOptions) {
		if r != nil {
			o.reporter = r
		}
	}
}

// BuildMatrix computes the co-authorship row of every author in the
// universe. For each record of an author, as found by the matcher, every
// other author of that record is counted once. Rows are computed in
// parallel; each worker writes only the rows of the authors it got.
func BuildMatrix(ctx context.Context, c *Corpus, u *Universe, matcher Matcher, opts ...MatrixOption) (*Matrix, error) {
	o := &matrixOptions{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(o)
	}
	var (
		n      = u.Len()
		rows   = make([]map[string]int, n)
		mu     sync.Mutex
		done   int
		workCh = make(chan int, o.workers*2)
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(workCh)
		for i := 0; i < n; i++ {
			select {
			case workCh <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < o.workers; w++ {
		g.Go(func() error {
			for i := range workCh {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				rows[i] = row(c, u.Authors[i], matcher.Records(u.Authors[i]))
				if o.reporter != nil {
					mu.Lock()
					done++
					o.reporter.Report(done, n)
					mu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m := &Matrix{
		authors: make([]string, n),
		rows:    make(map[string]map[string]int, n),
	}
	copy(m.authors, u.Authors)
	for i, a := range u.Authors {
		m.rows[a] = rows[i]
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return m, nil
}

// row tallies co-authors of author over the given records.
func row(c *Corpus, author string, ids []int) map[string]int {
	result := make(map[string]int)
	seen := make(map[string]struct{})
	for _, id := range ids {
		clear(seen)
		for _, t := range c.Tokens[id] {
			if t == author {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			result[t]++
		}
	}
	return result
}
