package profile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miku/collabnet/coauthor"
	"github.com/miku/collabnet/normal"
)

func TestBuiltinsValid(t *testing.T) {
	for _, p := range []Profile{Scopus(), WoS()} {
		if err := p.Validate(); err != nil {
			t.Fatalf("%s: %v", p.Name, err)
		}
		n, err := p.Normalizer()
		if err != nil {
			t.Fatal(err)
		}
		if n == nil {
			t.Errorf("%s: nil normalizer", p.Name)
		}
	}
}

func TestScopusNormalizerUsesSeparator(t *testing.T) {
	p := Scopus()
	n, err := p.Normalizer()
	if err != nil {
		t.Fatal(err)
	}
	got := coauthor.Split(n.Normalize("Smith J., Doe A."), p.Separator)
	if diff := cmp.Diff([]string{"SMITHJ.", "DOEA."}, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestWithPolicy(t *testing.T) {
	p := WoS()
	q := p.WithPolicy(coauthor.PolicyArticles)
	if p.Policy != coauthor.PolicyCitations {
		t.Errorf("original changed: %s", p.Policy)
	}
	if q.Policy != coauthor.PolicyArticles {
		t.Errorf("got %s, want %s", q.Policy, coauthor.PolicyArticles)
	}
}

func TestValidate(t *testing.T) {
	p := Scopus()
	p.AuthorColumn = ""
	p.Format = "pdf"
	p.Style = normal.Style("x")
	err := p.Validate()
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("got %v, want %v", err, ErrInvalidProfile)
	}
	for _, s := range []string{"author column", "pdf", "unknown author style"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not mention %q", err, s)
		}
	}
}

func TestValidateSeparator(t *testing.T) {
	var cases = []struct {
		help      string
		style     normal.Style
		separator string
		ok        bool
	}{
		{"wos semicolon", normal.StyleWoS, ";", true},
		{"wos comma", normal.StyleWoS, ",", false},
		{"wos space", normal.StyleWoS, " ", false},
		{"wos tab", normal.StyleWoS, "\t", false},
		{"wos parenthesis", normal.StyleWoS, "(", false},
		{"scopus semicolon", normal.StyleScopus, ";", true},
		{"scopus pipe", normal.StyleScopus, "|", true},
		{"scopus space", normal.StyleScopus, " ", false},
	}
	for _, c := range cases {
		p := WoS()
		p.Style = c.style
		p.Separator = c.separator
		err := p.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.help, err)
		}
		if !c.ok {
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("%s: got %v, want %v", c.help, err, ErrInvalidProfile)
			} else if !strings.Contains(err.Error(), "separator") {
				t.Errorf("%s: error %q does not mention separator", c.help, err)
			}
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	if diff := cmp.Diff([]string{"scopus", "wos"}, r.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	p, err := r.Lookup(" WoS ")
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != KindWoS {
		t.Errorf("got kind %v, want %v", p.Kind, KindWoS)
	}
	if _, err := r.Lookup("pubmed"); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("got %v, want %v", err, ErrUnknownProfile)
	}
}

const profilesYAML = `
profiles:
  - name: Lens
    style: wos
    format: csv
    author_column: Author/s
    id_column: Lens ID
    citation_column: Citing Works Count
    policy: articles
`

func TestRegistryLoad(t *testing.T) {
	r := NewRegistry()
	if err := r.Load(strings.NewReader(profilesYAML)); err != nil {
		t.Fatal(err)
	}
	p, err := r.Lookup("lens")
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != KindCustom {
		t.Errorf("got kind %v, want %v", p.Kind, KindCustom)
	}
	if p.Separator != ";" {
		t.Errorf("got separator %q, want %q", p.Separator, ";")
	}
	if p.Policy != coauthor.PolicyArticles {
		t.Errorf("got policy %s, want %s", p.Policy, coauthor.PolicyArticles)
	}
	if p.AuthorColumn != "Author/s" {
		t.Errorf("got author column %q", p.AuthorColumn)
	}
	if diff := cmp.Diff([]string{".csv"}, p.Format.Extensions()); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryLoadErrors(t *testing.T) {
	var cases = []struct {
		help string
		doc  string
	}{
		{"unknown field", "profiles:\n  - name: x\n    colour: red\n"},
		{"missing columns", "profiles:\n  - name: x\n    style: wos\n    format: csv\n"},
		{"bad yaml", "profiles: [\n"},
		{"separator rewritten", "profiles:\n  - name: x\n    style: wos\n    format: csv\n    author_column: A\n    id_column: I\n    citation_column: C\n    separator: \",\"\n"},
	}
	for _, c := range cases {
		if err := NewRegistry().Load(strings.NewReader(c.doc)); err == nil {
			t.Errorf("%s: expected error", c.help)
		}
	}
}

func TestRegistryLoadEmpty(t *testing.T) {
	r := NewRegistry()
	if err := r.Load(strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if got := len(r.Names()); got != 2 {
		t.Errorf("got %d profiles, want 2", got)
	}
}

func TestRegistryLoadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(fn, []byte(profilesYAML), 0644); err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	if err := r.LoadFile(fn); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(r.Names(), "lens") {
		t.Errorf("lens not in %v", r.Names())
	}
	if err := r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
