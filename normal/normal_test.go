package normal

import (
	"errors"
	"sync"
	"testing"
)

func TestFoldNormalizer(t *testing.T) {
	var cases = []struct {
		in   string
		want string
	}{
		{"", ""},
		{"MÜLLER", "MULLER"},
		{"ØSTERGÅRD", "OSTERGARD"},
		{"GÓMEZ-PÉREZ", "GOMEZ-PEREZ"},
		{"ŁUKASIEWICZ", "LUKASIEWICZ"},
		{"Straße", "Strasse"},
		{"ÇAĞLAR", "CAGLAR"},
		{"ĦABIB", "HABIB"},
		{"ŦOMA", "TOMA"},
		{"Иванов", "Ivanov"},
		{"SMITH, J.", "SMITH, J."},
	}
	n := &FoldNormalizer{}
	for _, c := range cases {
		if got := n.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParenNormalizer(t *testing.T) {
	var cases = []struct {
		in   string
		want string
	}{
		{"SMITHJ.(JOHN)", "SMITHJ. JOHN"},
		{"((A))", "  A"},
		{"NOPARENS", "NOPARENS"},
	}
	n := &ParenNormalizer{}
	for _, c := range cases {
		if got := n.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRemoveWSNormalizer(t *testing.T) {
	n := &RemoveWSNormalizer{}
	if got := n.Normalize(" a \t b\n c "); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestAuthorPipeline(t *testing.T) {
	var cases = []struct {
		help  string
		style Style
		in    string
		want  string
	}{
		{"scopus list", StyleScopus, "Smith J., Doe A.", "SMITHJ.;DOEA."},
		{"scopus accents", StyleScopus, "Müller K., Gómez P.", "MULLERK.;GOMEZP."},
		{"scopus parens", StyleScopus, "Smith J. (Jr.), Doe A.", "SMITHJ. JR.;DOEA."},
		{"scopus already semicolon", StyleScopus, "SMITH, J.;DOE, A.", "SMITH,J.;DOE,A."},
		{"wos list", StyleWoS, "Smith, J; Doe, AB", "SMITH, J;DOE, AB"},
		{"wos accents", StyleWoS, "Ñúñez, M; Østby, K", "NUNEZ, M;OSTBY, K"},
		{"wos parens", StyleWoS, "Smith, J (John)", "SMITH, J JOHN"},
		{"wos stroke and bar", StyleWoS, "Ħabib, K; Ŧoma, B; Đukić, S", "HABIB, K;TOMA, B;DUKIC, S"},
		{"wos cyrillic", StyleWoS, "Иванов, И", "IVANOV, I"},
		{"wos sharp s", StyleWoS, "Straß, P", "STRASS, P"},
		{"scopus han", StyleScopus, "李 X., Smith J.", "LIX.;SMITHJ."},
		{"empty", StyleWoS, "", ""},
	}
	for _, c := range cases {
		p, err := AuthorPipeline(c.style)
		if err != nil {
			t.Fatalf("%s: %v", c.help, err)
		}
		if got := p.Normalize(c.in); got != c.want {
			t.Errorf("%s: got %q, want %q", c.help, got, c.want)
		}
	}
}

func TestAuthorPipelineUnknownStyle(t *testing.T) {
	_, err := AuthorPipeline(Style("pubmed"))
	if !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("got %v, want %v", err, ErrUnknownStyle)
	}
}

func TestReplaceNewlineAndTab(t *testing.T) {
	if got := ReplaceNewlineAndTab("a\tb\nc\r"); got != "a b c " {
		t.Errorf("got %q", got)
	}
}

func TestAuthorPipelineASCII(t *testing.T) {
	var inputs = []string{"Ħabib, K", "Ŀopez, A", "Ŧoma, B", "Иванов, И", "李, X", "Ægir, Þ"}
	for _, style := range Styles {
		p, err := AuthorPipeline(style)
		if err != nil {
			t.Fatal(err)
		}
		for _, in := range inputs {
			got := p.Normalize(in)
			if !isASCII(got) {
				t.Errorf("%s: Normalize(%q) = %q, not ascii", style, in, got)
			}
		}
	}
}

func TestFoldNormalizerConcurrent(t *testing.T) {
	p, err := AuthorPipeline(StyleWoS)
	if err != nil {
		t.Fatal(err)
	}
	var (
		wg  sync.WaitGroup
		got = make([]string, 16)
	)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got[i] = p.Normalize("Müller, K; Østby, A; Иванов, И")
			}
		}(i)
	}
	wg.Wait()
	for i, v := range got {
		if v != "MULLER, K;OSTBY, A;IVANOV, I" {
			t.Errorf("%d: got %q", i, v)
		}
	}
}
