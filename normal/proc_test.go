package normal

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestProcessorKeepsOrder(t *testing.T) {
	var (
		in   strings.Builder
		want strings.Builder
	)
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&in, "line %d\n", i)
		fmt.Fprintf(&want, "LINE %d\n", i)
	}
	p := NewProcessor(strings.ToUpper, WithWorkers(4), WithBatchSize(7))
	var buf bytes.Buffer
	if err := p.Process(context.Background(), strings.NewReader(in.String()), &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != want.String() {
		t.Fatalf("output differs, got %d bytes, want %d", len(got), want.Len())
	}
}

func TestProcessorEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	if err := NewProcessor(strings.ToUpper).Process(context.Background(), strings.NewReader(""), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("got %q, want empty output", buf.String())
	}
}

func TestProcessorLineTooLong(t *testing.T) {
	p := NewProcessor(strings.ToUpper, WithMaxTokenSize(16))
	err := p.Process(context.Background(), strings.NewReader(strings.Repeat("x", 100)+"\n"), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for overlong line")
	}
}

func TestTokens(t *testing.T) {
	p, err := AuthorPipeline(StyleWoS)
	if err != nil {
		t.Fatal(err)
	}
	f := Tokens(p, ";", "|")
	var cases = []struct {
		in, want string
	}{
		{"Smith, J; Doe, A", "SMITH, J|DOE, A"},
		{"Smith, J;;", "SMITH, J"},
		{"", ""},
	}
	for _, c := range cases {
		if got := f(c.in); got != c.want {
			t.Errorf("Tokens(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
