// Package profile describes the export formats we can read: which columns
// carry authors, identifiers and citation counts, and how author lists are
// written.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/miku/collabnet/coauthor"
	"github.com/miku/collabnet/normal"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrUnknownProfile = errors.New("unknown profile")
)

// Kind distinguishes builtin profiles from user supplied ones.
type Kind string

const (
	KindScopus Kind = "scopus"
	KindWoS    Kind = "wos"
	KindCustom Kind = "custom"
)

// Format is the file format of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// Extensions returns the file name extensions used for a format. WoS
// tab-delimited exports usually come as .txt files.
func (f Format) Extensions() []string {
	switch f {
	case FormatCSV:
		return []string{".csv"}
	case FormatTSV:
		return []string{".txt", ".tsv"}
	case FormatXLSX:
		return []string{".xlsx"}
	default:
		return nil
	}
}

// Profile is the configuration of a single data source.
type Profile struct {
	// Name is used for lookup and in output file names.
	Name string `yaml:"name"`
	// Kind is set for builtin profiles; profiles loaded from a file are
	// always custom.
	Kind Kind `yaml:"-"`
	// Style selects the author name normalization.
	Style normal.Style `yaml:"style"`
	// Format of the input files.
	Format Format `yaml:"format"`
	// AuthorColumn is the header of the author list column.
	AuthorColumn string `yaml:"author_column"`
	// IDColumn is the header of the unique record identifier, e.g. EID or UT.
	IDColumn string `yaml:"id_column"`
	// CitationColumn is the header of the times cited column.
	CitationColumn string `yaml:"citation_column"`
	// Separator between authors, after normalization.
	Separator string `yaml:"separator"`
	// Policy is the default node size policy.
	Policy coauthor.Policy `yaml:"policy"`
}

// Scopus returns the profile for Scopus CSV exports.
func Scopus() Profile {
	return Profile{
		Name:           "scopus",
		Kind:           KindScopus,
		Style:          normal.StyleScopus,
		Format:         FormatCSV,
		AuthorColumn:   "Authors",
		IDColumn:       "EID",
		CitationColumn: "Cited by",
		Separator:      ";",
		Policy:         coauthor.PolicyCitations,
	}
}

// WoS returns the profile for Web of Science tab-delimited exports.
func WoS() Profile {
	return Profile{
		Name:           "wos",
		Kind:           KindWoS,
		Style:          normal.StyleWoS,
		Format:         FormatTSV,
		AuthorColumn:   "AU",
		IDColumn:       "UT",
		CitationColumn: "TC",
		Separator:      ";",
		Policy:         coauthor.PolicyCitations,
	}
}

// WithPolicy returns a copy of the profile using a different size policy.
func (p Profile) WithPolicy(policy coauthor.Policy) Profile {
	p.Policy = policy
	return p
}

// Validate checks that all required fields are set.
func (p Profile) Validate() error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "missing name")
	}
	n, err := normal.AuthorPipeline(p.Style)
	if err != nil {
		problems = append(problems, err.Error())
	}
	if len(p.Format.Extensions()) == 0 {
		problems = append(problems, fmt.Sprintf("unknown format %q", p.Format))
	}
	if p.AuthorColumn == "" {
		problems = append(problems, "missing author column")
	}
	if p.IDColumn == "" {
		problems = append(problems, "missing id column")
	}
	if p.CitationColumn == "" {
		problems = append(problems, "missing citation column")
	}
	switch {
	case p.Separator == "":
		problems = append(problems, "missing separator")
	case n != nil && n.Normalize(p.Separator) != p.Separator:
		problems = append(problems, fmt.Sprintf("separator %q is rewritten by %s style", p.Separator, p.Style))
	}
	if !p.Policy.Valid() {
		problems = append(problems, fmt.Sprintf("unknown policy %q", p.Policy))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidProfile, p.Name, strings.Join(problems, ", "))
	}
	return nil
}

// Normalizer returns the author field normalizer for this profile.
func (p Profile) Normalizer() (normal.Normalizer, error) {
	return normal.AuthorPipeline(p.Style)
}

// Registry holds profiles by name.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry with the builtin profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range []Profile{Scopus(), WoS()} {
		r.profiles[p.Name] = p
	}
	return r
}

// Add validates and registers a profile, replacing any profile of the same
// name.
func (r *Registry) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.profiles[p.Name] = p
	return nil
}

// Lookup returns a profile by name, case insensitive.
func (r *Registry) Lookup(name string) (Profile, error) {
	p, ok := r.profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownProfile, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the sorted profile names.
func (r *Registry) Names() []string {
	var names []string
	for k := range r.profiles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// file is the layout of a profiles YAML file.
type file struct {
	Profiles []Profile `yaml:"profiles"`
}

// Load reads custom profiles from YAML and adds them to the registry, e.g.
//
//	profiles:
//	  - name: lens
//	    style: wos
//	    format: csv
//	    author_column: Author/s
//	    id_column: Lens ID
//	    citation_column: Citing Works Count
//	    separator: ";"
//	    policy: articles
func (r *Registry) Load(rd io.Reader) error {
	var f file
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("profiles: %w", err)
	}
	for _, p := range f.Profiles {
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		p.Kind = KindCustom
		if p.Separator == "" {
			p.Separator = ";"
		}
		if p.Policy == "" {
			p.Policy = coauthor.PolicyCitations
		}
		if err := r.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile is like Load, but reads from a file.
func (r *Registry) LoadFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := r.Load(f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}
